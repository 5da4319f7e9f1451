// Package repository keeps generation results for the life of the process.
package repository

import (
	"context"
	"time"

	"github.com/okian/leaguegen/internal/domain/league"
	"github.com/okian/leaguegen/internal/domain/model"
	"github.com/okian/leaguegen/internal/domain/validation"
)

// Record is the outcome of one generation job. Err is set when the job failed
// as a whole; per-team failures live in Result.Failures.
type Record struct {
	JobID       string              `json:"job_id" yaml:"job_id"`
	Job         model.GenerationJob `json:"job" yaml:"job"`
	Result      league.Result       `json:"result" yaml:"result"`
	Issues      []validation.Issue  `json:"issues" yaml:"issues"`
	Err         error               `json:"-" yaml:"-"`
	Duration    time.Duration       `json:"duration" yaml:"duration"`
	CompletedAt time.Time           `json:"completed_at" yaml:"completed_at"`
}

// Store provides read/write access to job results.
type Store interface {
	// Put stores rec under rec.JobID, replacing any earlier record.
	Put(ctx context.Context, rec Record) error

	// Get returns the record for jobID or ErrNotFound.
	Get(ctx context.Context, jobID string) (Record, error)

	// List returns up to limit records in the order they were first stored.
	List(ctx context.Context, limit int) ([]Record, error)

	Count(ctx context.Context) int
}
