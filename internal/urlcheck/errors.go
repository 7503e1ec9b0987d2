package urlcheck

import "errors"

var (
	// ErrEmptyInput is returned for empty or whitespace-only input
	ErrEmptyInput = errors.New("url is empty")
	// ErrDangerousScheme is returned when the input begins with a scheme that can execute code
	ErrDangerousScheme = errors.New("dangerous url scheme")
	// ErrPathTraversal is returned when the input contains a path-traversal sequence
	ErrPathTraversal = errors.New("url contains path traversal sequence")
	// ErrUnparseable is returned when the input cannot be parsed as a URL
	ErrUnparseable = errors.New("url cannot be parsed")
	// ErrUnsupportedScheme is returned when the parsed protocol is not https
	ErrUnsupportedScheme = errors.New("only https urls are supported")
	// ErrMissingHost is returned when the parsed URL has no host
	ErrMissingHost = errors.New("url has no host")
)
