package imgproxy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/banghang/internal/models"
)

const rawURL = "https://example.com/images/p1.png"

func TestStartIndexIsDeterministic(t *testing.T) {
	first := NewResolver(rawURL, ProductImage).AttemptIndex()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, NewResolver(rawURL, ProductImage).AttemptIndex())
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 3)
}

func TestCandidateChainOrder(t *testing.T) {
	chain := candidates(rawURL, ProductImage)
	require.Len(t, chain, 4)
	assert.Equal(t, rawURL, chain[0])
	assert.True(t, strings.HasPrefix(chain[1], "https://images.weserv.nl/?url="))
	assert.True(t, strings.HasPrefix(chain[2], "https://wsrv.nl/?url="))
	assert.True(t, strings.HasPrefix(chain[3], "https://api.allorigins.win/raw?url="))
	// the weserv variant drops the scheme before escaping
	assert.Contains(t, chain[1], "example.com")
	assert.NotContains(t, chain[1], "https%3A%2F%2Fexample.com")
}

func TestCategoryChainHasNoRelay(t *testing.T) {
	chain := candidates(rawURL, CategoryImage)
	require.Len(t, chain, 3)
	for _, c := range chain {
		assert.NotContains(t, c, "allorigins")
	}
}

func TestFailAdvancesAndNeverDecreases(t *testing.T) {
	r := NewResolver(rawURL, ProductImage)
	prev := r.AttemptIndex()
	for {
		next, ok := r.Fail()
		if !ok {
			break
		}
		assert.Greater(t, r.AttemptIndex(), prev)
		assert.Equal(t, next, r.Current())
		prev = r.AttemptIndex()
	}
	assert.True(t, r.Failed())
}

func TestExhaustionIsTerminalAndIdempotent(t *testing.T) {
	r := NewResolver(rawURL, ProductImage)
	for !r.Failed() {
		r.Fail()
	}

	// further failure events are no-ops
	for i := 0; i < 3; i++ {
		next, ok := r.Fail()
		assert.False(t, ok)
		assert.Empty(t, next)
		assert.True(t, r.Failed())
		assert.Empty(t, r.Current())
	}
}

func TestForProductPrefersOwnImage(t *testing.T) {
	withImages := models.Product{
		Images:   []string{rawURL, "https://example.com/second.png"},
		Category: models.Category{Image: "https://example.com/cat.png"},
	}
	r := ForProduct(withImages)
	assert.Equal(t, rawURL, r.Original())
	assert.Equal(t, ProductImage, r.Kind())

	bare := models.Product{Category: models.Category{Image: "https://example.com/cat.png"}}
	r = ForProduct(bare)
	assert.Equal(t, "https://example.com/cat.png", r.Original())
	assert.Equal(t, CategoryImage, r.Kind())
}

func TestAttemptCountFromStartIndex(t *testing.T) {
	// a chain starting at index h yields len(chain)-h attempts before exhaustion
	r := NewResolver(rawURL, ProductImage)
	start := r.AttemptIndex()
	attempts := 1
	for {
		if _, ok := r.Fail(); !ok {
			break
		}
		attempts++
	}
	assert.Equal(t, 4-start, attempts)
}
