package client

import (
	"compress/gzip"
	"crypto/tls"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"
)

const (
	timeout      = 30 * time.Second
	probeTimeout = 10 * time.Second
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
}

func newTransport(proxy *url.URL) *http.Transport {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
			MinVersion:         tls.VersionTLS12,
		},
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   true,
	}
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}
	return transport
}

// CreateHTTPClient creates the client used for catalog requests.
// An empty proxyURL yields a direct client; a malformed one falls back to direct.
func CreateHTTPClient(proxyURL string) *http.Client {
	var proxy *url.URL
	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			proxy = parsed
		}
	}
	return &http.Client{
		Transport: newTransport(proxy),
		Timeout:   timeout,
	}
}

// CreateProbeClient creates the short-timeout client used for image probing.
// Redirects are followed; image hosts and rewrite proxies redirect freely.
func CreateProbeClient(proxyURL string) *http.Client {
	c := CreateHTTPClient(proxyURL)
	c.Timeout = probeTimeout
	return c
}

// RandomUserAgent returns one of a small pool of browser user agents
func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// JSONHeaders returns the headers sent with catalog API requests
func JSONHeaders() http.Header {
	headers := http.Header{}
	headers.Set("User-Agent", RandomUserAgent())
	headers.Set("Accept", "application/json")
	headers.Set("Accept-Encoding", "gzip")
	headers.Set("Connection", "keep-alive")
	return headers
}

// ImageHeaders returns the headers sent with image probe requests
func ImageHeaders() http.Header {
	headers := http.Header{}
	headers.Set("User-Agent", RandomUserAgent())
	headers.Set("Accept", "image/avif,image/webp,image/png,image/jpeg,*/*;q=0.8")
	return headers
}

// ReadResponseBody reads the response body, handling gzip compression if necessary
func ReadResponseBody(resp *http.Response) ([]byte, error) {
	var reader io.ReadCloser
	var err error

	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
	default:
		reader = resp.Body
	}

	return io.ReadAll(reader)
}
