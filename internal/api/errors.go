package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
	// ErrURLRequired is returned when the analyze request carries no URL
	ErrURLRequired = errors.New("url is required")
	// ErrOriginNotAllowed is returned when the request Origin is missing or not allowlisted
	ErrOriginNotAllowed = errors.New("origin not allowed")
	// ErrTooManyRequests is returned when the rate limiter rejects a request
	ErrTooManyRequests = errors.New("too many requests")
)
