package league

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrSquadBelowFloor = errors.New("squad below minimum fieldable size")
	ErrNoGoalkeeper    = errors.New("squad has no goalkeeper")
	ErrInvalidRange    = errors.New("invalid reputation range")
	ErrInvalidPolicy   = errors.New("invalid generation policy")
)

// DataError reports a value that violates a hard domain floor for one team.
// It aborts that team only; siblings in the same league are unaffected.
type DataError struct {
	Index  int
	TeamID string
	Value  int
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("team %d (%s): %v (value %d)", e.Index, e.TeamID, e.Err, e.Value)
}

func (e *DataError) Unwrap() error { return e.Err }
