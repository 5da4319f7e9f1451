package service

import "errors"

// Sentinel errors returned by the Service.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrDuplicateJob = errors.New("duplicate generation job")
	ErrJobIDInUse   = errors.New("job id already used by a different job")
)
