package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when URL validation rejects the input;
	// no network access has happened when this is returned
	ErrInvalidURL = errors.New("invalid url")
	// ErrFetchFailed is returned when the target page cannot be retrieved
	ErrFetchFailed = errors.New("failed to fetch page")
	// ErrFetchTimeout is returned when the page fetch exceeds its deadline
	ErrFetchTimeout = errors.New("page fetch timed out")
	// ErrTooManyRedirects is returned when the redirect chain is too long
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrBlockedRedirect is returned on a redirect to a non-http(s) scheme
	ErrBlockedRedirect = errors.New("redirect to non-http(s) scheme blocked")
)

// UpstreamStatusError reports a non-2xx response from the target page.
// It unwraps to ErrFetchFailed so callers can match the category while
// still surfacing the upstream status.
type UpstreamStatusError struct {
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%v: upstream status %d", ErrFetchFailed, e.StatusCode)
}

func (e *UpstreamStatusError) Unwrap() error {
	return ErrFetchFailed
}
