package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/banghang/internal/models"
)

func populatedStore(n int) *Store {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{
			ID:    i + 1,
			Title: fmt.Sprintf("Sản phẩm %02d", i+1),
			Price: float64((i*37)%100 + 1),
		}
	}
	store := NewStore(10, models.SortNone)
	store.SetCatalog(products)
	return store
}

func TestStoreDefaults(t *testing.T) {
	store := NewStore(0, models.SortKey("bogus"))
	snap := store.Snapshot()
	assert.Equal(t, 10, snap.State.PageSize)
	assert.Equal(t, models.SortNone, snap.State.SortKey)
	assert.Equal(t, 1, snap.State.Page)
}

func TestStoreScenario25By10(t *testing.T) {
	store := populatedStore(25)
	snap := store.Snapshot()

	require.Len(t, snap.Page.Items, 10)
	assert.Equal(t, 3, snap.Page.TotalPages)
	assert.Equal(t, 1, snap.Page.Start)
	assert.Equal(t, 10, snap.Page.End)
	assert.Equal(t, 25, snap.Page.Total)
}

func TestStoreRejectsOutOfRangePages(t *testing.T) {
	store := populatedStore(25)

	assert.False(t, store.SetPage(0))
	assert.False(t, store.SetPage(4))
	assert.Equal(t, 1, store.Snapshot().State.Page)

	assert.True(t, store.SetPage(3))
	assert.Equal(t, 3, store.Snapshot().State.Page)
	assert.False(t, store.NextPage())
	assert.True(t, store.PrevPage())
	assert.Equal(t, 2, store.Snapshot().State.Page)
}

func TestStoreSearchResetsToPageOne(t *testing.T) {
	store := populatedStore(25)
	require.True(t, store.SetPage(3))

	store.SetSearchTerm("sản phẩm 1")
	snap := store.Snapshot()
	assert.Equal(t, 1, snap.State.Page)
	// zero-padded titles: "sản phẩm 1" matches 10..19 only
	assert.Equal(t, 10, snap.Page.Total)
}

func TestStoreSortResetsToPageOne(t *testing.T) {
	store := populatedStore(25)
	require.True(t, store.SetPage(2))

	store.SetSortKey(models.SortPriceDesc)
	snap := store.Snapshot()
	assert.Equal(t, 1, snap.State.Page)
	assert.Equal(t, models.SortPriceDesc, snap.State.SortKey)
	for i := 1; i < len(snap.Page.Items); i++ {
		assert.GreaterOrEqual(t, snap.Page.Items[i-1].Price, snap.Page.Items[i].Price)
	}
}

func TestStoreIgnoresUnknownSortKey(t *testing.T) {
	store := populatedStore(25)
	store.SetSortKey(models.SortKey("price-sideways"))
	assert.Equal(t, models.SortNone, store.Snapshot().State.SortKey)
}

func TestStoreCycleSortKeyWrapsAround(t *testing.T) {
	store := populatedStore(5)
	seen := []models.SortKey{store.Snapshot().State.SortKey}
	for i := 0; i < len(models.SortKeys); i++ {
		store.CycleSortKey()
		seen = append(seen, store.Snapshot().State.SortKey)
	}
	assert.Equal(t, seen[0], seen[len(seen)-1])
	assert.ElementsMatch(t, models.SortKeys, seen[1:])
}

func TestStorePageSizeChangeResetsToPageOne(t *testing.T) {
	store := populatedStore(25)
	require.True(t, store.SetPage(2))

	assert.True(t, store.SetPageSize(5))
	snap := store.Snapshot()
	assert.Equal(t, 1, snap.State.Page)
	assert.Equal(t, 5, snap.Page.TotalPages)

	assert.False(t, store.SetPageSize(0))
	assert.False(t, store.SetPageSize(-3))
}

func TestStoreEmptySearchResult(t *testing.T) {
	store := populatedStore(25)
	store.SetSearchTerm("shirt")

	snap := store.Snapshot()
	assert.Zero(t, snap.Page.Total)
	assert.Empty(t, snap.Page.Items)
	assert.Zero(t, snap.Page.TotalPages)
	assert.False(t, store.SetPage(2))
}
