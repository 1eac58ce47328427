package ui

import (
	"fmt"
	"strings"
	"sync"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/pterm/pterm"

	"github.com/tdnguyen/banghang/internal/catalog"
	"github.com/tdnguyen/banghang/internal/imgproxy"
)

// pageSizes are the sizes the ↑/↓ keys cycle through
var pageSizes = []int{5, 10, 20, 50}

const keyHints = "gõ để tìm · Tab: sắp xếp · ←/→: trang · ↑/↓: cỡ trang · Enter: tìm ngay · Ctrl-C: thoát"

// Session drives the interactive table: a keyboard listener mutates the
// store (search input debounced, everything else immediate) and every state
// change re-renders into a pterm area.
type Session struct {
	store     *catalog.Store
	prober    *imgproxy.Prober
	debouncer *Debouncer
	noImages  bool

	mu         sync.Mutex
	area       *pterm.AreaPrinter
	input      []rune
	generation int
}

// NewSession creates an interactive session over a populated store.
// prober may be nil when noImages is set.
func NewSession(store *catalog.Store, prober *imgproxy.Prober, noImages bool) *Session {
	return &Session{
		store:     store,
		prober:    prober,
		debouncer: NewDebouncer(DebounceDelay),
		noImages:  noImages,
	}
}

// Run renders the initial frame and blocks on the keyboard until Ctrl-C
func (s *Session) Run() error {
	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.area = area
	s.mu.Unlock()
	s.redraw()

	err = keyboard.Listen(s.onKey)

	s.debouncer.Cancel()
	area.Stop()
	return err
}

func (s *Session) onKey(key keys.Key) (bool, error) {
	switch key.Code {
	case keys.CtrlC:
		return true, nil
	case keys.Enter:
		s.debouncer.Flush()
	case keys.Backspace:
		s.mu.Lock()
		if len(s.input) > 0 {
			s.input = s.input[:len(s.input)-1]
		}
		term := string(s.input)
		s.mu.Unlock()
		s.scheduleSearch(term)
	case keys.Tab:
		s.store.CycleSortKey()
		s.redraw()
	case keys.Left:
		if s.store.PrevPage() {
			s.redraw()
		}
	case keys.Right:
		if s.store.NextPage() {
			s.redraw()
		}
	case keys.Up, keys.Down:
		s.cyclePageSize(key.Code == keys.Up)
		s.redraw()
	case keys.Space:
		s.appendInput(' ')
	case keys.RuneKey:
		for _, r := range key.Runes {
			s.appendInput(r)
		}
	}
	return false, nil
}

func (s *Session) appendInput(r rune) {
	s.mu.Lock()
	s.input = append(s.input, r)
	term := string(s.input)
	s.mu.Unlock()
	s.scheduleSearch(term)
}

// scheduleSearch repaints the typed term right away but defers the actual
// recompute until the input has been idle for the debounce delay.
func (s *Session) scheduleSearch(term string) {
	s.repaint()
	s.debouncer.Trigger(func() {
		s.store.SetSearchTerm(term)
		s.redraw()
	})
}

func (s *Session) cyclePageSize(up bool) {
	current := s.store.Snapshot().State.PageSize
	idx := 0
	for i, size := range pageSizes {
		if size == current {
			idx = i
			break
		}
	}
	if up {
		idx = (idx + 1) % len(pageSizes)
	} else {
		idx = (idx - 1 + len(pageSizes)) % len(pageSizes)
	}
	s.store.SetPageSize(pageSizes[idx])
}

// redraw renders a fresh frame and kicks off image probing for the new page
func (s *Session) redraw() {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	input := string(s.input)
	s.mu.Unlock()

	snap := s.store.Snapshot()
	s.update(frame(snap, nil, s.noImages, input))

	if s.noImages || s.prober == nil || len(snap.Page.Items) == 0 {
		return
	}
	go s.probeImages(generation, snap, input)
}

// repaint re-renders the current frame without recomputing the view
func (s *Session) repaint() {
	s.mu.Lock()
	input := string(s.input)
	s.mu.Unlock()
	s.update(frame(s.store.Snapshot(), nil, s.noImages, input))
}

// probeImages settles the page's image chains off the input goroutine and
// repaints, unless the view moved on in the meantime.
func (s *Session) probeImages(generation int, snap catalog.Snapshot, input string) {
	resolvers := make([]*imgproxy.Resolver, len(snap.Page.Items))
	for i, p := range snap.Page.Items {
		resolvers[i] = imgproxy.ForProduct(p)
	}
	outcomes := s.prober.ResolveAll(resolvers, nil)

	s.mu.Lock()
	stale := generation != s.generation
	s.mu.Unlock()
	if stale {
		return
	}
	s.update(frame(snap, outcomes, false, input))
}

func (s *Session) update(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.area != nil {
		s.area.Update(content)
	}
}

// frame assembles one full screen: search line, sort line, table, summary,
// pagination and key hints.
func frame(snap catalog.Snapshot, outcomes []imgproxy.Outcome, noImages bool, input string) string {
	m := BuildModel(snap, outcomes, noImages)

	var b strings.Builder
	fmt.Fprintf(&b, "Tìm kiếm: %s▏\n", input)
	fmt.Fprintf(&b, "Sắp xếp: %s\n\n", pterm.Cyan(SortLabel(m.SortKey)))
	b.WriteString(RenderTable(m))
	b.WriteString("\n")
	if !m.Empty {
		b.WriteString(m.Summary)
		b.WriteString("\n")
		fmt.Fprintf(&b, "Trang %d/%d  %s\n", m.Page, m.TotalPages, RenderPagination(m))
	}
	b.WriteString("\n")
	b.WriteString(pterm.Gray(keyHints))
	return b.String()
}
