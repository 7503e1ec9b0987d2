package origin

import "errors"

var (
	// ErrEmptyPattern is returned when the allow-list contains an empty entry
	ErrEmptyPattern = errors.New("origin pattern is empty")
	// ErrInvalidPattern is returned when an allow-list entry cannot be compiled
	ErrInvalidPattern = errors.New("invalid origin pattern")
)
