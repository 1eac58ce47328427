package imgproxy

import (
	"hash/fnv"
	"net/url"
	"strings"

	"github.com/tdnguyen/banghang/internal/models"
)

// Kind selects the candidate chain for an image
type Kind int

const (
	// ProductImage gets the full chain including the generic CORS relay
	ProductImage Kind = iota
	// CategoryImage gets the shorter chain and hides on exhaustion
	CategoryImage
)

// rewriteWeserv routes the image through the images.weserv.nl resizing proxy
func rewriteWeserv(raw string) string {
	stripped := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	return "https://images.weserv.nl/?url=" + url.QueryEscape(stripped)
}

// rewriteWsrv routes the image through the wsrv.nl mirror
func rewriteWsrv(raw string) string {
	return "https://wsrv.nl/?url=" + url.QueryEscape(raw)
}

// rewriteAllOrigins relays the image through the allorigins CORS proxy
func rewriteAllOrigins(raw string) string {
	return "https://api.allorigins.win/raw?url=" + url.QueryEscape(raw)
}

// candidates builds the ordered fallback chain for a raw image URL
func candidates(raw string, kind Kind) []string {
	chain := []string{raw, rewriteWeserv(raw), rewriteWsrv(raw)}
	if kind == ProductImage {
		chain = append(chain, rewriteAllOrigins(raw))
	}
	return chain
}

// startIndex picks the initial strategy among the first three candidates.
// The FNV-1a hash makes the choice deterministic per URL so repeated loads of
// the same image consistently hit the same proxy, spreading load without
// per-call randomness.
func startIndex(raw string) int {
	h := fnv.New32a()
	h.Write([]byte(raw))
	return int(h.Sum32() % 3)
}

// Resolver tracks the fallback state for one displayed image
type Resolver struct {
	original   string
	kind       Kind
	candidates []string
	index      int
	failed     bool
}

// NewResolver creates a resolver for a raw image URL of the given kind
func NewResolver(raw string, kind Kind) *Resolver {
	return &Resolver{
		original:   raw,
		kind:       kind,
		candidates: candidates(raw, kind),
		index:      startIndex(raw),
	}
}

// ForProduct builds the resolver for a product's display image: the first
// product image when one survived cleaning, otherwise the category image on
// its shorter chain.
func ForProduct(p models.Product) *Resolver {
	if len(p.Images) > 0 {
		return NewResolver(p.Images[0], ProductImage)
	}
	return NewResolver(p.Category.Image, CategoryImage)
}

// Original returns the unmodified source URL
func (r *Resolver) Original() string { return r.original }

// Kind returns which candidate chain the resolver is walking
func (r *Resolver) Kind() Kind { return r.kind }

// AttemptIndex returns the current position in the candidate chain
func (r *Resolver) AttemptIndex() int { return r.index }

// Current returns the candidate URL to attempt, or "" once the chain is exhausted
func (r *Resolver) Current() string {
	if r.failed {
		return ""
	}
	return r.candidates[r.index]
}

// Fail records a load failure for the current candidate and advances the
// chain. It returns the next candidate to attempt and whether one exists.
// Once the chain is exhausted the resolver is terminally failed and further
// Fail calls are no-ops.
func (r *Resolver) Fail() (next string, ok bool) {
	if r.failed {
		return "", false
	}
	if r.index+1 < len(r.candidates) {
		r.index++
		return r.candidates[r.index], true
	}
	r.failed = true
	return "", false
}

// Failed reports whether every candidate has been exhausted
func (r *Resolver) Failed() bool { return r.failed }
