package imgproxy

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/tdnguyen/banghang/internal/client"
)

const maxWorkers = 10

// Outcome represents the settled display state for one original image URL
type Outcome struct {
	// URL is the candidate that loaded, or "" when the chain was exhausted
	URL string
	// Failed marks terminal exhaustion; product images render a placeholder,
	// category images are hidden
	Failed bool
}

// Prober turns the browser's image-error signal into HTTP probes and walks
// each resolver's fallback chain until a candidate loads or the chain ends.
// Outcomes are cached per original URL.
type Prober struct {
	httpClient *http.Client
	debug      bool

	cacheMux sync.RWMutex
	cache    map[string]Outcome
}

// NewProber creates a prober; proxyURL is forwarded to the HTTP client
func NewProber(proxyURL string, debug bool) *Prober {
	return &Prober{
		httpClient: client.CreateProbeClient(proxyURL),
		debug:      debug,
		cache:      make(map[string]Outcome),
	}
}

// Resolve walks the resolver's chain and returns the settled outcome.
// A previously settled original URL short-circuits to the cached outcome.
func (p *Prober) Resolve(r *Resolver) Outcome {
	if r.Original() == "" {
		return Outcome{Failed: true}
	}

	p.cacheMux.RLock()
	cached, hit := p.cache[r.Original()]
	p.cacheMux.RUnlock()
	if hit {
		return cached
	}

	outcome := Outcome{Failed: true}
	for {
		candidate := r.Current()
		if candidate == "" {
			break
		}
		if p.loads(candidate) {
			outcome = Outcome{URL: candidate}
			break
		}
		if p.debug {
			log.Printf("image candidate %d failed for %s", r.AttemptIndex(), r.Original())
		}
		if _, ok := r.Fail(); !ok {
			break
		}
	}

	p.cacheMux.Lock()
	p.cache[r.Original()] = outcome
	p.cacheMux.Unlock()
	return outcome
}

// ResolveAll settles a batch of resolvers with a bounded worker pool.
// done, when non-nil, is called once per settled resolver.
func (p *Prober) ResolveAll(resolvers []*Resolver, done func()) []Outcome {
	outcomes := make([]Outcome, len(resolvers))
	semaphore := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i := range resolvers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() {
				<-semaphore
				if done != nil {
					done()
				}
			}()
			outcomes[i] = p.Resolve(resolvers[i])
		}(i)
	}

	wg.Wait()
	return outcomes
}

// loads reports whether the candidate URL answers with an image.
// HEAD first; hosts that reject HEAD get one ranged GET.
func (p *Prober) loads(candidate string) bool {
	if ok, conclusive := p.probe(http.MethodHead, candidate); conclusive {
		return ok
	}
	ok, _ := p.probe(http.MethodGet, candidate)
	return ok
}

func (p *Prober) probe(method, candidate string) (ok, conclusive bool) {
	req, err := http.NewRequest(method, candidate, nil)
	if err != nil {
		return false, true
	}
	req.Header = client.ImageHeaders()
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false, true
	}
	defer resp.Body.Close()

	if method == http.MethodHead && (resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented) {
		return false, false
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, true
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "application/octet-stream") {
		return false, true
	}
	return true, true
}
