// Package service ties the generator, the job queue, the worker pool and the
// result store together.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/leaguegen/internal/adapters/mq/queue"
	"github.com/okian/leaguegen/internal/adapters/mq/worker"
	"github.com/okian/leaguegen/internal/adapters/repository"
	"github.com/okian/leaguegen/internal/config"
	"github.com/okian/leaguegen/internal/domain/dedupe"
	"github.com/okian/leaguegen/internal/domain/league"
	"github.com/okian/leaguegen/internal/domain/model"
	"github.com/okian/leaguegen/internal/domain/validation"
	"github.com/okian/leaguegen/pkg/logger"
	"github.com/okian/leaguegen/pkg/metrics"
)

// jobNamespace roots ids assigned to jobs submitted without one.
var jobNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/okian/leaguegen/jobs"))

// Service runs generation jobs synchronously or through the worker pool.
type Service struct {
	mu sync.RWMutex

	// Core components
	pipeline worker.Pipeline
	store    repository.Store
	deduper  dedupe.Deduper
	queue    queue.Queue
	pool     *worker.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	maxResults  int

	// State
	started bool
	pending map[string]pendingJob

	logger logger.Logger
}

// Stats is a point-in-time view of the service.
type Stats struct {
	Started      bool  `json:"started"`
	Workers      int   `json:"workers"`
	QueueLength  int   `json:"queue_length"`
	Pending      int   `json:"pending"`
	Results      int   `json:"results"`
	Fingerprints int64 `json:"fingerprints"`
}

// New constructs a Service around pipeline.
func New(pipeline worker.Pipeline, opts ...Option) *Service {
	s := &Service{
		pipeline:    pipeline,
		workerCount: runtime.NumCPU(),
		queueSize:   1024,
		dedupeSize:  10_000,
		pending:     make(map[string]pendingJob),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.store = repository.NewMemoryStore(repository.WithMaxRecords(s.maxResults))
	return s
}

// NewFromConfig builds the generator and validator described by cfg. opts are
// applied after the config-derived options.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Service, error) {
	squad, stadium, err := cfg.GenerationConfigs()
	if err != nil {
		metrics.RecordConfigError()
		return nil, err
	}
	gen, err := league.NewGenerator(squad, stadium, cfg.GeneratorOptions()...)
	if err != nil {
		metrics.RecordConfigError()
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	pipeline := worker.Pipeline{
		Generator: gen,
		Validator: validation.New(squad, validation.WithPolicy(cfg.Policy)),
		Template:  cfg.Request(),
	}

	base := []Option{
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.QueueSize),
		WithDedupeSize(cfg.DedupeSize),
		WithMaxResults(cfg.MaxResults),
	}
	return New(pipeline, append(base, opts...)...), nil
}

// Start creates the queue and starts the worker pool. Workers stop when ctx
// is done or after Stop drains the queue.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s.pipeline, notifyingStore{Store: s.store, done: s.markDone})
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "league service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop closes the queue and waits for workers to finish what was queued.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	pool := s.pool
	s.mu.Unlock()

	s.logger.Info(ctx, "stopping league service...")
	if err := pool.Shutdown(ctx); err != nil {
		return fmt.Errorf("stop workers: %w", err)
	}
	s.logger.Info(ctx, "league service stopped")
	return nil
}

// Generate runs j on the calling goroutine. The record is stored like a
// queued job's; a failed job returns the record together with its error.
func (s *Service) Generate(ctx context.Context, j model.GenerationJob) (repository.Record, error) { //nolint:gocritic // hugeParam: jobs are values
	j.ID = jobID(j)
	rec := s.pipeline.Run(ctx, j)
	if err := s.store.Put(ctx, rec); err != nil {
		return rec, fmt.Errorf("store result of %s: %w", j.ID, err)
	}
	if rec.Err != nil {
		metrics.RecordJobError()
		return rec, rec.Err
	}
	metrics.RecordJobProcessed()
	return rec, nil
}

// Submit queues j and returns its id. A job whose fingerprint was already
// accepted returns the id of the job that owns it together with
// ErrDuplicateJob: it would produce an identical league. An id already held by
// a job with a different fingerprint returns ErrJobIDInUse.
func (s *Service) Submit(ctx context.Context, j model.GenerationJob) (string, error) { //nolint:gocritic // hugeParam: jobs are values
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return "", ErrNotStarted
	}

	j.ID = jobID(j)
	fp := j.Fingerprint()
	if owner, seen := s.deduper.Claim(ctx, fp, j.ID); seen {
		metrics.RecordJobDuplicate()
		s.logger.Debug(ctx, "duplicate job skipped",
			logger.String("job_id", j.ID),
			logger.String("owner", owner),
			logger.String("fingerprint", fp),
		)
		return owner, fmt.Errorf("%w: %s", ErrDuplicateJob, fp)
	}
	if owner, taken := s.idOwner(ctx, j.ID); taken && owner != fp {
		s.deduper.Unrecord(ctx, fp)
		return "", fmt.Errorf("%w: %s", ErrJobIDInUse, j.ID)
	}

	s.pending[j.ID] = pendingJob{done: make(chan struct{}), fingerprint: fp}
	if err := s.queue.Enqueue(ctx, j); err != nil {
		// Let the caller retry the same job.
		s.deduper.Unrecord(ctx, fp)
		delete(s.pending, j.ID)
		return "", fmt.Errorf("enqueue %s: %w", j.ID, err)
	}
	return j.ID, nil
}

// Await blocks until the job with id has a stored record or ctx is done.
// Unknown ids fail immediately with repository.ErrNotFound.
func (s *Service) Await(ctx context.Context, id string) (repository.Record, error) {
	s.mu.RLock()
	p, ok := s.pending[id]
	s.mu.RUnlock()

	if ok {
		select {
		case <-p.done:
		case <-ctx.Done():
			return repository.Record{}, ctx.Err()
		}
	}
	return s.store.Get(ctx, id)
}

// Result returns the stored record for id.
func (s *Service) Result(ctx context.Context, id string) (repository.Record, error) {
	return s.store.Get(ctx, id)
}

// Results lists up to limit stored records in completion order.
func (s *Service) Results(ctx context.Context, limit int) ([]repository.Record, error) {
	return s.store.List(ctx, limit)
}

// GenerateBatch submits jobs to the pool and collects their records in job
// order. A job repeating the fingerprint of an earlier job in the same batch
// is dropped, so the first occurrence keeps its position. A job already
// generated by an earlier submission resolves to that submission's record.
// The first submit or wait error cancels the rest of the batch; a job that
// failed to generate is returned as a record with Err set.
func (s *Service) GenerateBatch(ctx context.Context, jobs []model.GenerationJob) ([]repository.Record, error) {
	unique := make([]model.GenerationJob, 0, len(jobs))
	seen := make(map[string]struct{}, len(jobs))
	for _, j := range jobs {
		fp := j.Fingerprint()
		if _, ok := seen[fp]; ok {
			metrics.RecordJobDuplicate()
			continue
		}
		seen[fp] = struct{}{}
		unique = append(unique, j)
	}

	records := make([]repository.Record, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	// Each goroutine holds at most one queue slot.
	g.SetLimit(s.queueSize)
	for i, j := range unique {
		g.Go(func() error {
			rec, err := s.submitAndAwait(gctx, j)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) submitAndAwait(ctx context.Context, j model.GenerationJob) (repository.Record, error) { //nolint:gocritic // hugeParam: jobs are values
	id, err := s.Submit(ctx, j)
	dup := errors.Is(err, ErrDuplicateJob)
	if err != nil && !dup {
		return repository.Record{}, err
	}

	rec, err := s.Await(ctx, id)
	if dup && errors.Is(err, repository.ErrNotFound) {
		// The earlier record was evicted from the store; rebuild it in place.
		j.ID = id
		rec = s.pipeline.Run(ctx, j)
		err = s.store.Put(ctx, rec)
	}
	if err != nil {
		return repository.Record{}, fmt.Errorf("await %s: %w", id, err)
	}
	return rec, nil
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Started: s.started,
		Workers: s.workerCount,
		Pending: len(s.pending),
		Results: s.store.Count(ctx),
	}
	if s.pool != nil {
		st.Workers = s.pool.Size()
	}
	if s.queue != nil {
		st.QueueLength = s.queue.Len(ctx)
	}
	if s.deduper != nil {
		st.Fingerprints = s.deduper.Size()
	}
	return st
}

func (s *Service) markDone(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[id]; ok {
		close(p.done)
		delete(s.pending, id)
	}
}

// idOwner returns the fingerprint of the job currently holding id, queued or
// stored.
func (s *Service) idOwner(ctx context.Context, id string) (string, bool) {
	if p, ok := s.pending[id]; ok {
		return p.fingerprint, true
	}
	if rec, err := s.store.Get(ctx, id); err == nil {
		return rec.Job.Fingerprint(), true
	}
	return "", false
}

type pendingJob struct {
	done        chan struct{}
	fingerprint string
}

// notifyingStore signals waiters once a record is stored.
type notifyingStore struct {
	repository.Store
	done func(id string)
}

func (n notifyingStore) Put(ctx context.Context, rec repository.Record) error { //nolint:gocritic // hugeParam: records are stored by value
	err := n.Store.Put(ctx, rec)
	n.done(rec.JobID)
	return err
}

// jobID keeps a caller-supplied id, otherwise derives one from the fingerprint
// so resubmitting the same job yields the same id.
func jobID(j model.GenerationJob) string { //nolint:gocritic // hugeParam: jobs are values
	if j.ID != "" {
		return j.ID
	}
	return uuid.NewSHA1(jobNamespace, []byte(j.Fingerprint())).String()
}
