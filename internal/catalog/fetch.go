package catalog

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tdnguyen/banghang/internal/client"
	"github.com/tdnguyen/banghang/internal/models"
)

// DefaultEndpoint is the public catalog API queried when no -url flag is given
const DefaultEndpoint = "https://api.escuelajs.co/api/v1/products"

// FetchError represents a failed catalog request: a transport failure or a
// non-2xx status. It is surfaced once at the top level; there is no retry.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("catalog fetch %s: status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetch performs the single catalog GET and decodes the product list.
// The remote returns the full list in one response; there is no request-level
// pagination and no automatic retry.
func Fetch(endpoint, proxyURL string, debug bool) ([]models.Product, error) {
	httpClient := client.CreateHTTPClient(proxyURL)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{URL: endpoint, Err: err}
	}
	req.Header = client.JSONHeaders()

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: endpoint, Status: resp.StatusCode}
	}

	body, err := client.ReadResponseBody(resp)
	if err != nil {
		return nil, &FetchError{URL: endpoint, Err: err}
	}

	products, err := decodeProducts(body)
	if err != nil {
		return nil, &FetchError{URL: endpoint, Err: err}
	}

	if debug {
		log.Printf("fetched %d products from %s", len(products), endpoint)
	}
	return products, nil
}

// decodeProducts walks the JSON array path-tolerantly: malformed entries are
// softened rather than rejected, so one bad product never sinks the catalog.
func decodeProducts(body []byte) ([]models.Product, error) {
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("expected a JSON array of products")
	}

	var products []models.Product
	parsed.ForEach(func(_, entry gjson.Result) bool {
		p := models.Product{
			ID:          int(entry.Get("id").Int()),
			Title:       entry.Get("title").String(),
			Price:       entry.Get("price").Float(),
			Description: entry.Get("description").String(),
			Category: models.Category{
				Name:  entry.Get("category.name").String(),
				Image: CleanImageURL(entry.Get("category.image").String()),
			},
		}
		if p.Category.Name == "" {
			p.Category.Name = "N/A"
		}
		entry.Get("images").ForEach(func(_, img gjson.Result) bool {
			if cleaned := CleanImageURL(img.String()); cleaned != "" {
				p.Images = append(p.Images, cleaned)
			}
			return true
		})
		products = append(products, p)
		return true
	})

	return products, nil
}

// CleanImageURL strips the stray bracket/quote/backslash artifacts the API is
// known to embed in image entries and validates the result. Entries that do
// not survive as absolute http(s) URLs are dropped by returning "".
func CleanImageURL(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, `[]"\`)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return ""
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return ""
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ""
	}
	return cleaned
}
