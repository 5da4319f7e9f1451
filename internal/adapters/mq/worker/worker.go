// Package worker drains generation jobs from a queue and stores the results.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/leaguegen/internal/adapters/repository"
	"github.com/okian/leaguegen/internal/domain/model"
	"github.com/okian/leaguegen/pkg/logger"
	"github.com/okian/leaguegen/pkg/metrics"
)

// Job is what workers read off the queue.
type Job = model.GenerationJob

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Store receives finished records.
type Store interface {
	Put(ctx context.Context, rec repository.Record) error
}

// Worker processes jobs until its queue is drained.
type Worker interface {
	// Run processes jobs until the queue channel closes or ctx is canceled.
	Run(ctx context.Context)

	// Wait blocks until Run has returned or ctx is done.
	Wait(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	pipeline Pipeline
	store    Store
	name     string
	done     chan struct{}
	logger   logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, pipeline Pipeline, store Store, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		pipeline: pipeline,
		store:    store,
		name:     "worker",
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				w.logger.Error(ctx, "job failed", logger.String("job_id", j.ID), logger.Error(err))
			}
		}
	}
}

// Wait blocks until the worker loop exits.
func (w *InMemoryWorker) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker %s: %w", w.name, ctx.Err())
	}
}

// process runs one job and stores its record, failed or not.
func (w *InMemoryWorker) process(ctx context.Context, j Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	start := time.Now()
	defer func() {
		metrics.RecordJobLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	rec := w.pipeline.Run(ctx, j)
	if err := w.store.Put(ctx, rec); err != nil {
		metrics.RecordJobError()
		metrics.RecordErrorByComponent("worker", "store")
		return fmt.Errorf("store result of %s: %w", j.ID, err)
	}
	if rec.Err != nil {
		metrics.RecordJobError()
		metrics.RecordErrorByComponent("worker", "generate")
		return rec.Err
	}

	metrics.RecordJobProcessed()
	w.logger.Debug(ctx, "league generated",
		logger.String("job_id", j.ID),
		logger.Int64("seed", j.Seed),
		logger.Int("teams", len(rec.Result.League.Teams)),
		logger.Int("failures", len(rec.Result.Failures)),
		logger.Int("issues", len(rec.Issues)),
	)
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a pool. A workerCount below one uses one worker per CPU;
// generation is CPU-bound.
func NewPool(workerCount int, queue Queue, pipeline Pipeline, store Store) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(queue, pipeline, store, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue, lets workers drain what is left, and waits for
// them until ctx is done.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	for i, w := range p.workers {
		if err := w.Wait(ctx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return err
		}
	}
	metrics.UpdateWorkerCount(0)
	return nil
}
