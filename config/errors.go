package config

import "errors"

var (
	// ErrConfigLoad is returned when a configuration source cannot be read
	ErrConfigLoad = errors.New("failed to load configuration")
	// ErrConfigUnmarshal is returned when config unmarshalling fails
	ErrConfigUnmarshal = errors.New("failed to unmarshal configuration")
	// ErrListenRequired is returned when no listen address is configured
	ErrListenRequired = errors.New("server listen address is required")
	// ErrInvalidMaxBodySize is returned when the request body cap is not positive
	ErrInvalidMaxBodySize = errors.New("server max body size must be positive")
	// ErrInvalidFetchTimeout is returned when the fetch timeout is not positive
	ErrInvalidFetchTimeout = errors.New("analyzer fetch timeout must be positive")
	// ErrInvalidMaxResponseBytes is returned when the fetch body cap is not positive
	ErrInvalidMaxResponseBytes = errors.New("analyzer max response bytes must be positive")
	// ErrInvalidCheckConcurrency is returned when check concurrency is below one
	ErrInvalidCheckConcurrency = errors.New("analyzer check concurrency must be at least 1")
	// ErrInvalidRateLimit is returned when the rate limit settings are out of range
	ErrInvalidRateLimit = errors.New("rate limit rps and burst must be positive")
)
