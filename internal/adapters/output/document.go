// Package output renders generated leagues for people and for other programs.
package output

import (
	"github.com/okian/leaguegen/internal/domain/league"
	"github.com/okian/leaguegen/internal/domain/model"
	"github.com/okian/leaguegen/internal/domain/validation"
)

// Failure is a dropped team in serializable form.
type Failure struct {
	Index  int    `json:"index" yaml:"index"`
	TeamID string `json:"team_id" yaml:"team_id"`
	Value  int    `json:"value" yaml:"value"`
	Reason string `json:"reason" yaml:"reason"`
}

// Document is everything one generation pass hands to its collaborators.
type Document struct {
	League         model.League       `json:"league" yaml:"league"`
	Reputations    []int              `json:"reputations" yaml:"reputations"`
	SquadReport    league.Report      `json:"squad_report" yaml:"squad_report"`
	CapacityReport league.Report      `json:"capacity_report" yaml:"capacity_report"`
	Failures       []Failure          `json:"failures,omitempty" yaml:"failures,omitempty"`
	Issues         []validation.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// NewDocument bundles a result with its validation issues.
func NewDocument(res league.Result, issues []validation.Issue) Document {
	doc := Document{
		League:         res.League,
		Reputations:    res.Reputations,
		SquadReport:    res.SquadReport,
		CapacityReport: res.CapacityReport,
		Issues:         issues,
	}
	for _, f := range res.Failures {
		doc.Failures = append(doc.Failures, Failure{
			Index:  f.Index,
			TeamID: f.TeamID,
			Value:  f.Value,
			Reason: f.Err.Error(),
		})
	}
	return doc
}
