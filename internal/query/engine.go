package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tdnguyen/banghang/internal/models"
)

// Apply derives the filtered and sorted view from the full catalog.
// It never mutates its input; callers get a fresh slice on every run.
func Apply(catalog []models.Product, term string, key models.SortKey) []models.Product {
	view := filter(catalog, term)

	switch key {
	case models.SortPriceAsc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Price < view[j].Price
		})
	case models.SortPriceDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Price > view[j].Price
		})
	case models.SortNameAsc:
		c := newCollator()
		sort.SliceStable(view, func(i, j int) bool {
			return c.CompareString(view[i].Title, view[j].Title) < 0
		})
	case models.SortNameDesc:
		c := newCollator()
		sort.SliceStable(view, func(i, j int) bool {
			return c.CompareString(view[i].Title, view[j].Title) > 0
		})
	}

	return view
}

// filter keeps products whose title contains the trimmed term, case-insensitively.
// An empty term keeps the whole catalog in its original order.
func filter(catalog []models.Product, term string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		view := make([]models.Product, len(catalog))
		copy(view, catalog)
		return view
	}

	view := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if strings.Contains(strings.ToLower(p.Title), term) {
			view = append(view, p)
		}
	}
	return view
}

// newCollator builds a case-insensitive Vietnamese collator.
// Collators carry internal buffers, so each Apply call gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Vietnamese, collate.IgnoreCase)
}
