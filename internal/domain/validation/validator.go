package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/leaguegen/internal/domain/league"
	"github.com/okian/leaguegen/internal/domain/mapper"
	"github.com/okian/leaguegen/internal/domain/model"
)

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithPolicy sets the deviation threshold and squad floor.
func WithPolicy(p league.Policy) Option {
	return func(v *Validator) { v.policy = p }
}

// Validator is stateless apart from its configuration and safe to share.
type Validator struct {
	squad  mapper.GenerationConfig
	policy league.Policy
}

// New returns a validator judging squad sizes against squad.
func New(squad mapper.GenerationConfig, opts ...Option) *Validator {
	v := &Validator{squad: squad, policy: league.DefaultPolicy()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate audits res. League-level issues come first, then team issues in
// team index order; teams dropped during generation are reported at their
// original index.
func (v *Validator) Validate(res league.Result) []Issue {
	var issues []Issue
	if i, ok := v.checkVariation(res.SquadReport); ok {
		issues = append(issues, i)
	}

	failed := make(map[int]*league.DataError, len(res.Failures))
	for _, f := range res.Failures {
		failed[f.Index] = f
	}
	built := make(map[int]model.Team, len(res.League.Teams))
	for _, t := range res.League.Teams {
		built[t.Index] = t
	}

	for idx := range res.Reputations {
		if f, ok := failed[idx]; ok {
			issues = append(issues, failureIssue(f))
			continue
		}
		if t, ok := built[idx]; ok {
			issues = append(issues, v.ValidateTeam(t)...)
		}
	}
	return issues
}

// ValidateTeam audits one built team.
func (v *Validator) ValidateTeam(t model.Team) []Issue {
	var issues []Issue
	component := teamComponent(t.Index)
	if t.SquadSize < v.policy.MinSquadSize {
		issues = append(issues, Issue{
			Kind:      KindSquadBelowFloor,
			Severity:  SeverityError,
			Message:   fmt.Sprintf("squad of %d is below the minimum of %d", t.SquadSize, v.policy.MinSquadSize),
			Component: component,
		})
	}
	if t.Positions.Goalkeepers < 1 {
		issues = append(issues, Issue{
			Kind:      KindMissingGoalkeeper,
			Severity:  SeverityError,
			Message:   fmt.Sprintf("squad of %d has no goalkeeper", t.SquadSize),
			Component: component,
		})
	}
	expected := mapper.Expected(t.Reputation, v.squad)
	if d := float64(t.SquadSize) - expected; math.Abs(d) > v.policy.DeviationThreshold {
		msg := fmt.Sprintf("%s %d deviates %+.1f from expected %.1f for reputation %d",
			v.squad.Name(), t.SquadSize, d, expected, t.Reputation)
		issues = append(issues, Issue{
			Kind:      KindExpectationDeviation,
			Severity:  SeverityWarning,
			Message:   msg,
			Component: component,
		})
	}
	return issues
}

func (v *Validator) checkVariation(r league.Report) (Issue, bool) {
	if len(r.Values) < 2 || r.Spread != 0 {
		return Issue{}, false
	}
	return Issue{
		Kind:      KindNoVariation,
		Severity:  SeverityWarning,
		Message:   fmt.Sprintf("all %d %s values equal %d", len(r.Values), r.Metric, r.Min),
		Component: "league",
	}, true
}

func failureIssue(f *league.DataError) Issue {
	kind := KindSquadBelowFloor
	if errors.Is(f, league.ErrNoGoalkeeper) {
		kind = KindMissingGoalkeeper
	}
	return Issue{
		Kind:      kind,
		Severity:  SeverityError,
		Message:   f.Error(),
		Component: teamComponent(f.Index),
	}
}

func teamComponent(index int) string { return fmt.Sprintf("team/%d", index) }
