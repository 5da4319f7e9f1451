package output

import "errors"

// Sentinel kinds for output errors.
var (
	ErrUnknownFormat = errors.New("unknown output format")
)
