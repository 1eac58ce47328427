package catalog

import (
	"sync"

	"github.com/tdnguyen/banghang/internal/models"
	"github.com/tdnguyen/banghang/internal/paginate"
	"github.com/tdnguyen/banghang/internal/query"
)

// Snapshot represents one consistent read of the table state
type Snapshot struct {
	State models.ViewState
	Page  paginate.Result
}

// Store owns the fetched catalog, the user-controlled view state and the
// derived filtered view. The query engine and paginator stay pure; the store
// is the single place that mutates state.
type Store struct {
	mu      sync.RWMutex
	catalog []models.Product
	state   models.ViewState
	view    []models.Product
}

// NewStore creates an empty store with the given defaults
func NewStore(pageSize int, sortKey models.SortKey) *Store {
	if pageSize <= 0 {
		pageSize = 10
	}
	if !models.IsValidSortKey(string(sortKey)) {
		sortKey = models.SortNone
	}
	return &Store{
		state: models.ViewState{
			SortKey:  sortKey,
			Page:     1,
			PageSize: pageSize,
		},
	}
}

// SetCatalog replaces the full product list and rebuilds the view.
// The current search term and sort key are kept; the page resets to 1.
func (s *Store) SetCatalog(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = products
	s.recompute()
}

// SetSearchTerm updates the filter term, rebuilds the view and resets to page 1
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SearchTerm == term {
		return
	}
	s.state.SearchTerm = term
	s.recompute()
}

// SetSortKey updates the ordering, rebuilds the view and resets to page 1.
// Unknown keys are ignored.
func (s *Store) SetSortKey(key models.SortKey) {
	if !models.IsValidSortKey(string(key)) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SortKey == key {
		return
	}
	s.state.SortKey = key
	s.recompute()
}

// CycleSortKey advances to the next sort key in selector order
func (s *Store) CycleSortKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, key := range models.SortKeys {
		if key == s.state.SortKey {
			s.state.SortKey = models.SortKeys[(i+1)%len(models.SortKeys)]
			break
		}
	}
	s.recompute()
}

// SetPage moves to the requested page. Requests outside [1, totalPages] are
// rejected as a no-op rather than clamped; the return value reports whether
// the move happened.
func (s *Store) SetPage(page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := paginate.TotalPages(len(s.view), s.state.PageSize)
	if page < 1 || page > total {
		return false
	}
	s.state.Page = page
	return true
}

// NextPage moves one page forward if possible
func (s *Store) NextPage() bool {
	s.mu.RLock()
	page := s.state.Page
	s.mu.RUnlock()
	return s.SetPage(page + 1)
}

// PrevPage moves one page back if possible
func (s *Store) PrevPage() bool {
	s.mu.RLock()
	page := s.state.Page
	s.mu.RUnlock()
	return s.SetPage(page - 1)
}

// SetPageSize changes the page size and resets to page 1.
// Non-positive sizes are rejected.
func (s *Store) SetPageSize(size int) bool {
	if size <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.PageSize == size {
		return true
	}
	s.state.PageSize = size
	s.state.Page = 1
	return true
}

// Len returns the size of the full catalog
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.catalog)
}

// Snapshot returns a consistent copy of the view state and the current page
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		State: s.state,
		Page:  paginate.Page(s.view, s.state.Page, s.state.PageSize),
	}
}

// recompute rebuilds the derived view; callers hold the write lock.
// Term and sort changes land back on page 1.
func (s *Store) recompute() {
	s.view = query.Apply(s.catalog, s.state.SearchTerm, s.state.SortKey)
	s.state.Page = 1
}
