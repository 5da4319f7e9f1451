// Package validation audits a generated league after the fact. It never
// fails on data anomalies; everything it finds is returned as an Issue.
package validation

import "fmt"

// Kind enumerates every anomaly the validator can report.
type Kind uint8

const (
	// KindNoVariation: every derived squad size in the league is equal.
	KindNoVariation Kind = iota + 1
	// KindMissingGoalkeeper: a squad has no goalkeeper.
	KindMissingGoalkeeper
	// KindExpectationDeviation: a metric strays too far from its
	// reputation-implied expectation.
	KindExpectationDeviation
	// KindSquadBelowFloor: a squad is smaller than the fieldable minimum.
	KindSquadBelowFloor
)

// Kinds lists every Kind in declaration order.
var Kinds = [...]Kind{KindNoVariation, KindMissingGoalkeeper, KindExpectationDeviation, KindSquadBelowFloor}

func (k Kind) String() string {
	switch k {
	case KindNoVariation:
		return "no_variation"
	case KindMissingGoalkeeper:
		return "missing_goalkeeper"
	case KindExpectationDeviation:
		return "expectation_deviation"
	case KindSquadBelowFloor:
		return "squad_below_floor"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Severity grades an Issue.
type Severity uint8

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

// MarshalText renders the severity by name.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Issue is one finding. Component names the league or team it concerns.
type Issue struct {
	Kind      Kind     `json:"kind" yaml:"kind"`
	Severity  Severity `json:"severity" yaml:"severity"`
	Message   string   `json:"message" yaml:"message"`
	Component string   `json:"component" yaml:"component"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Component, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns how many issues carry severity s.
func Count(issues []Issue, s Severity) int {
	n := 0
	for _, i := range issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}
