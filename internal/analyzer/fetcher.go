package analyzer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxRedirects caps the redirect chain length on a page fetch
const maxRedirects = 5

// Fetcher retrieves raw HTML for a validated URL. Injected into the
// Analyzer so tests and alternative transports can substitute it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (body io.ReadCloser, statusCode int, err error)
}

// HTTPFetcher implements Fetcher with a hardened http.Client: dial-time
// rejection of private address ranges, redirect validation, and a body
// size cap.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// limitedReadCloser reads from a LimitReader but closes the original body
type limitedReadCloser struct {
	io.Reader
	io.Closer
}

// NewHTTPFetcher builds an HTTPFetcher with the given fetch timeout, body
// size cap, and outbound User-Agent.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		userAgent: userAgent,
		maxBytes:  maxBytes,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext:         safeDialer().DialContext,
				MaxConnsPerHost:     10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: restrictRedirects,
		},
	}
}

// restrictRedirects limits the redirect chain and blocks redirects onto
// non-http(s) schemes, which would otherwise sidestep URL validation.
func restrictRedirects(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, maxRedirects)
	}

	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", ErrBlockedRedirect, req.URL.Scheme)
	}

	return nil
}

// Fetch retrieves the page at the given URL. The returned body is capped
// at the configured byte limit.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req) //nolint:bodyclose // body is returned to the caller via limitedReadCloser
	if err != nil {
		return nil, 0, err
	}

	limited := &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, f.maxBytes),
		Closer: resp.Body,
	}

	return limited, resp.StatusCode, nil
}
