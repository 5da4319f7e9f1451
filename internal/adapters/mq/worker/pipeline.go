package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/leaguegen/internal/adapters/repository"
	"github.com/okian/leaguegen/internal/domain/league"
	"github.com/okian/leaguegen/internal/domain/random"
	"github.com/okian/leaguegen/internal/domain/validation"
	"github.com/okian/leaguegen/pkg/metrics"
)

// Generator builds a league from a request and a private random source.
type Generator interface {
	Generate(req league.Request, src *random.Source) (league.Result, error)
}

// Validator audits a generated league.
type Validator interface {
	Validate(res league.Result) []validation.Issue
}

// Pipeline runs one job end to end: generate, validate, record metrics.
// Template supplies the league-wide request fields a job does not carry.
type Pipeline struct {
	Generator Generator
	Validator Validator
	Template  league.Request
}

// Request merges j over the template.
func (p Pipeline) Request(j Job) league.Request { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	req := p.Template
	if j.Name != "" {
		req.Name = j.Name
	}
	req.Seed = j.Seed
	if j.TeamCount > 0 {
		req.TeamCount = j.TeamCount
	}
	req.Reputations = j.Reputations
	return req
}

// Run generates j with a source seeded from j.Seed, so the outcome does not
// depend on which worker picks the job up or when.
func (p Pipeline) Run(ctx context.Context, j Job) repository.Record { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	rec := repository.Record{JobID: j.ID, Job: j}
	if err := ctx.Err(); err != nil {
		rec.Err = err
		return rec
	}

	start := time.Now()
	res, err := p.Generator.Generate(p.Request(j), random.New(j.Seed))
	rec.Duration = time.Since(start)
	rec.CompletedAt = time.Now()
	metrics.RecordGenerationDuration(float64(rec.Duration.Microseconds()) / 1000)
	if err != nil {
		rec.Err = fmt.Errorf("generate %s: %w", j.ID, err)
		return rec
	}

	rec.Result = res
	rec.Issues = p.Validator.Validate(res)
	recordOutcome(res, rec.Issues)
	return rec
}

func recordOutcome(res league.Result, issues []validation.Issue) {
	players := 0
	for _, t := range res.League.Teams {
		players += len(t.Players)
	}
	metrics.RecordLeagueGenerated(len(res.League.Teams), players)

	for _, f := range res.Failures {
		kind := validation.KindSquadBelowFloor
		if errors.Is(f, league.ErrNoGoalkeeper) {
			kind = validation.KindMissingGoalkeeper
		}
		metrics.RecordEntityFailure(kind.String())
	}
	for _, i := range issues {
		metrics.RecordValidationIssue(i.Kind.String(), i.Severity.String())
	}
}
