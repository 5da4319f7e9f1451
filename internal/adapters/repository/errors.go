package repository

import "errors"

// Sentinel kinds for result store errors.
var (
	ErrNotFound     = errors.New("job result not found")
	ErrInvalidLimit = errors.New("invalid result limit")
	ErrMissingJobID = errors.New("record has no job id")
)
