package paginate

import "github.com/tdnguyen/banghang/internal/models"

// Ellipsis marks a gap in the page-number window
const Ellipsis = -1

// windowSpan is the maximum number of page buttons shown around the current page
const windowSpan = 5

// Result represents one page sliced out of the current view
type Result struct {
	Items      []models.Product
	TotalPages int
	Start      int // 1-based index of the first displayed item, 0 when empty
	End        int // 1-based index of the last displayed item, capped at Total
	Total      int
}

// Page slices the view into the requested page.
// pageNumber is expected to be within [1, TotalPages]; out-of-range requests
// are the caller's job to reject, so here they just yield an empty item set.
func Page(view []models.Product, pageNumber, pageSize int) Result {
	total := len(view)
	res := Result{Total: total, TotalPages: TotalPages(total, pageSize)}
	if pageSize <= 0 || pageNumber < 1 || pageNumber > res.TotalPages {
		return res
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	res.Items = view[start:end]
	res.Start = start + 1
	res.End = end
	return res
}

// TotalPages computes ceil(total/pageSize); an empty view has zero pages
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Window returns the page numbers to render as navigation controls: at most
// five numbers centered on current, sliding to stay within [1, total], with
// the first and last page always present and an Ellipsis entry where the
// window does not reach an edge.
func Window(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - windowSpan/2
	end := current + windowSpan/2
	if start < 1 {
		end += 1 - start
		start = 1
	}
	if end > total {
		start -= end - total
		end = total
	}
	if start < 1 {
		start = 1
	}

	var window []int
	if start > 1 {
		window = append(window, 1)
		if start > 2 {
			window = append(window, Ellipsis)
		}
	}
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	if end < total {
		if end < total-1 {
			window = append(window, Ellipsis)
		}
		window = append(window, total)
	}
	return window
}
