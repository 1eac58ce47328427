package models

// Category represents the category a product belongs to
type Category struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Product represents a single catalog entry as returned by the remote API
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Images      []string `json:"images"`
}

// SortKey identifies one of the supported table orderings
type SortKey string

const (
	SortNone      SortKey = "none"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

// SortKeys lists every supported key in selector order
var SortKeys = []SortKey{SortNone, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

// IsValidSortKey reports whether s names a supported sort key
func IsValidSortKey(s string) bool {
	validKeys := map[SortKey]bool{
		SortNone:      true,
		SortPriceAsc:  true,
		SortPriceDesc: true,
		SortNameAsc:   true,
		SortNameDesc:  true,
	}
	return validKeys[SortKey(s)]
}

// ViewState represents the user-controlled table state
type ViewState struct {
	SearchTerm string  `json:"search_term"`
	SortKey    SortKey `json:"sort_key"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
}
