package ui

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/tdnguyen/banghang/internal/catalog"
	"github.com/tdnguyen/banghang/internal/imgproxy"
	"github.com/tdnguyen/banghang/internal/models"
	"github.com/tdnguyen/banghang/internal/paginate"
)

// Fixed display literals
const (
	NoResultsText    = "Không tìm thấy sản phẩm phù hợp"
	FetchErrorText   = "Không thể tải danh sách sản phẩm. Vui lòng thử lại sau."
	LoadingText      = "Đang tải danh mục sản phẩm..."
	imagePending     = "đang tải ảnh…"
	imagePlaceholder = "[ảnh lỗi]"
)

var sortLabels = map[models.SortKey]string{
	models.SortNone:      "Mặc định",
	models.SortPriceAsc:  "Giá tăng dần",
	models.SortPriceDesc: "Giá giảm dần",
	models.SortNameAsc:   "Tên A→Z",
	models.SortNameDesc:  "Tên Z→A",
}

// SortLabel returns the display label for a sort key
func SortLabel(key models.SortKey) string {
	if label, ok := sortLabels[key]; ok {
		return label
	}
	return string(key)
}

// Row represents one rendered table line
type Row struct {
	ID          string
	Title       string
	Price       string
	Category    string
	Image       string
	Description string
}

// Model represents everything the terminal renderer needs for one frame.
// It is plain data; nothing in here touches the screen.
type Model struct {
	Rows       []Row
	Term       string
	SortKey    models.SortKey
	Page       int
	TotalPages int
	Window     []int
	Summary    string
	Empty      bool
}

// BuildModel turns a store snapshot into a render model. outcomes, when
// non-nil, carries the settled image resolution per row; nil means probing is
// still pending. noImages switches the image column to the raw first URL.
func BuildModel(snap catalog.Snapshot, outcomes []imgproxy.Outcome, noImages bool) Model {
	m := Model{
		Term:       snap.State.SearchTerm,
		SortKey:    snap.State.SortKey,
		Page:       snap.State.Page,
		TotalPages: snap.Page.TotalPages,
		Window:     paginate.Window(snap.State.Page, snap.Page.TotalPages),
		Empty:      snap.Page.Total == 0,
	}

	if m.Empty {
		m.Summary = NoResultsText
		return m
	}
	m.Summary = fmt.Sprintf("Hiển thị %d–%d trong tổng số %s sản phẩm",
		snap.Page.Start, snap.Page.End, humanize.Comma(int64(snap.Page.Total)))

	for i, p := range snap.Page.Items {
		m.Rows = append(m.Rows, Row{
			ID:          fmt.Sprintf("%d", p.ID),
			Title:       TruncateString(p.Title, 36),
			Price:       FormatPrice(p.Price),
			Category:    p.Category.Name,
			Image:       imageCell(p, i, outcomes, noImages),
			Description: TruncateString(StripHTML(p.Description), 48),
		})
	}
	return m
}

// imageCell picks the image column content. Products without a usable image
// of their own borrow the category image; on exhaustion a product image
// renders a placeholder while a category image is simply hidden.
func imageCell(p models.Product, i int, outcomes []imgproxy.Outcome, noImages bool) string {
	fromCategory := len(p.Images) == 0
	if noImages {
		if fromCategory {
			return p.Category.Image
		}
		return p.Images[0]
	}
	if outcomes == nil || i >= len(outcomes) {
		return imagePending
	}
	if outcomes[i].Failed {
		if fromCategory {
			return ""
		}
		return imagePlaceholder
	}
	return outcomes[i].URL
}

// RenderTable renders the model's rows as a pterm table
func RenderTable(m Model) string {
	if m.Empty {
		return pterm.Yellow(NoResultsText)
	}

	data := pterm.TableData{{"ID", "Tên sản phẩm", "Giá", "Danh mục", "Ảnh", "Mô tả"}}
	for _, row := range m.Rows {
		data = append(data, []string{
			row.ID,
			pterm.Magenta(row.Title),
			ColorizePrice(row.Price),
			row.Category,
			pterm.Gray(row.Image),
			row.Description,
		})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err.Error()
	}
	return rendered
}

// RenderPagination renders the page-number window, e.g. « 1 … 4 [5] 6 … 12 »
func RenderPagination(m Model) string {
	if len(m.Window) == 0 {
		return ""
	}
	parts := []string{"«"}
	for _, p := range m.Window {
		switch {
		case p == paginate.Ellipsis:
			parts = append(parts, "…")
		case p == m.Page:
			parts = append(parts, pterm.Cyan(fmt.Sprintf("[%d]", p)))
		default:
			parts = append(parts, fmt.Sprintf("%d", p))
		}
	}
	parts = append(parts, "»")
	return strings.Join(parts, " ")
}

// ColorizePrice colors a formatted price by magnitude
func ColorizePrice(price string) string {
	var numeric float64
	fmt.Sscanf(strings.ReplaceAll(strings.TrimPrefix(price, "$"), ",", ""), "%f", &numeric)

	switch {
	case numeric >= 500:
		return pterm.Red(price)
	case numeric >= 100:
		return pterm.Yellow(price)
	default:
		return pterm.Green(price)
	}
}

// FormatPrice formats a product price with thousands separators
func FormatPrice(price float64) string {
	return "$" + humanize.Commaf(price)
}

// StripHTML flattens markup-bearing description fields to plain text
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// TruncateString truncates a string to the specified rune length and adds "…" if necessary
func TruncateString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length-1]) + "…"
}
