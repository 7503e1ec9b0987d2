package htmldoc

import "errors"

// ErrUnparseable is returned when the payload cannot be parsed as HTML at all
var ErrUnparseable = errors.New("content is not parseable html")
