package paginate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/banghang/internal/models"
)

func makeView(n int) []models.Product {
	view := make([]models.Product, n)
	for i := range view {
		view[i] = models.Product{ID: i + 1}
	}
	return view
}

func TestPageScenario25By10(t *testing.T) {
	view := makeView(25)

	res := Page(view, 1, 10)
	require.Len(t, res.Items, 10)
	assert.Equal(t, 1, res.Items[0].ID)
	assert.Equal(t, 10, res.Items[9].ID)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 1, res.Start)
	assert.Equal(t, 10, res.End)
	assert.Equal(t, 25, res.Total)

	last := Page(view, 3, 10)
	require.Len(t, last.Items, 5)
	assert.Equal(t, 21, last.Start)
	assert.Equal(t, 25, last.End)
}

func TestPageLengthsSumToViewLength(t *testing.T) {
	for _, total := range []int{0, 1, 9, 10, 11, 25, 100} {
		for _, size := range []int{1, 3, 10, 50} {
			view := makeView(total)
			pages := TotalPages(total, size)
			assert.Equal(t, (total+size-1)/size, pages)

			sum := 0
			for p := 1; p <= pages; p++ {
				sum += len(Page(view, p, size).Items)
			}
			assert.Equal(t, total, sum, "total=%d size=%d", total, size)
		}
	}
}

func TestPageEmptyView(t *testing.T) {
	res := Page(nil, 1, 10)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.TotalPages)
	assert.Zero(t, res.Start)
	assert.Zero(t, res.End)
}

func TestPageOutOfRangeYieldsNoItems(t *testing.T) {
	view := makeView(25)
	assert.Empty(t, Page(view, 0, 10).Items)
	assert.Empty(t, Page(view, 4, 10).Items)
}

func TestWindowContainsCurrentAndIsMonotonic(t *testing.T) {
	for total := 1; total <= 15; total++ {
		for current := 1; current <= total; current++ {
			window := Window(current, total)
			require.NotEmpty(t, window)

			numbers := 0
			found := false
			prev := 0
			for _, p := range window {
				if p == Ellipsis {
					continue
				}
				numbers++
				assert.Greater(t, p, prev, "window %v must be increasing", window)
				prev = p
				if p == current {
					found = true
				}
			}
			assert.True(t, found, "window %v must contain current page %d", window, current)
			// at most 5 centered numbers plus first and last
			assert.LessOrEqual(t, numbers, 7)
			assert.Equal(t, 1, firstNumber(window))
			assert.Equal(t, total, lastNumber(window))
		}
	}
}

func TestWindowEdges(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, Ellipsis, 12}, Window(1, 12))
	assert.Equal(t, []int{1, Ellipsis, 4, 5, 6, 7, 8, Ellipsis, 12}, Window(6, 12))
	assert.Equal(t, []int{1, Ellipsis, 8, 9, 10, 11, 12}, Window(12, 12))
	assert.Equal(t, []int{1, 2, 3}, Window(2, 3))
	assert.Equal(t, []int{1}, Window(1, 1))
	assert.Nil(t, Window(1, 0))
}

func firstNumber(window []int) int {
	for _, p := range window {
		if p != Ellipsis {
			return p
		}
	}
	return 0
}

func lastNumber(window []int) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] != Ellipsis {
			return window[i]
		}
	}
	return 0
}

func ExampleWindow() {
	fmt.Println(Window(5, 12))
	// Output: [1 -1 3 4 5 6 7 -1 12]
}
