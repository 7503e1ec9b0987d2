package analyzer

import (
	"time"
)

// Options configures the analyzer behavior
type Options struct {
	// FetchTimeout bounds the outbound page fetch
	FetchTimeout time.Duration
	// MaxResponseBytes caps the fetched body size
	MaxResponseBytes int64
	// UserAgent is sent on outbound fetches
	UserAgent string
	// CheckConcurrency is the number of checks evaluated in parallel
	CheckConcurrency int
	// Fetcher overrides the default hardened HTTP fetcher
	Fetcher Fetcher
}

// Option is a functional option for configuring the analyzer
type Option func(*Options)

// DefaultOptions returns default analyzer options
func DefaultOptions() *Options {
	return &Options{
		FetchTimeout:     30 * time.Second,
		MaxResponseBytes: 10 << 20,
		UserAgent:        "SEOCopilotBot/1.0",
		CheckConcurrency: 8,
	}
}

// WithFetchTimeout sets the outbound fetch timeout
func WithFetchTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.FetchTimeout = timeout
	}
}

// WithMaxResponseBytes caps the fetched body size
func WithMaxResponseBytes(maxBytes int64) Option {
	return func(o *Options) {
		o.MaxResponseBytes = maxBytes
	}
}

// WithUserAgent sets the outbound User-Agent header
func WithUserAgent(userAgent string) Option {
	return func(o *Options) {
		o.UserAgent = userAgent
	}
}

// WithCheckConcurrency sets how many checks run in parallel
func WithCheckConcurrency(n int) Option {
	return func(o *Options) {
		o.CheckConcurrency = n
	}
}

// WithFetcher injects a custom page fetcher
func WithFetcher(f Fetcher) Option {
	return func(o *Options) {
		o.Fetcher = f
	}
}
