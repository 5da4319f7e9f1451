package random

import "errors"

// Sentinel errors for this package.
var (
	ErrNoOutcomes = errors.New("no selectable outcomes")
)
