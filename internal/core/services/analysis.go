package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driven"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driving"
	"github.com/custodia-labs/dupecheck/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// jobEntry is one registry slot. done closes once the job is terminal or deleted.
type jobEntry struct {
	job      *domain.AnalysisJob
	seq      uint64
	done     chan struct{}
	doneOnce sync.Once
}

func (e *jobEntry) finish() {
	e.doneOnce.Do(func() { close(e.done) })
}

// AnalysisService runs similarity jobs asynchronously on a bounded worker pool.
// Create and Submit return immediately; callers poll Get or block in Wait.
type AnalysisService struct {
	engine   driven.AnalysisEngine
	docs     driving.DocumentService
	settings domain.AnalysisSettings
	now      func() time.Time
	newID    func() string

	mu   sync.Mutex
	jobs map[string]*jobEntry
	seq  uint64

	poolMu  sync.Mutex
	queue   *jobQueue
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewAnalysisService creates a job orchestrator. Workers start with Start.
func NewAnalysisService(
	engine driven.AnalysisEngine,
	docs driving.DocumentService,
	settings domain.AnalysisSettings,
) *AnalysisService {
	if settings.Workers < 1 {
		settings.Workers = domain.DefaultAppSettings().Analysis.Workers
	}
	return &AnalysisService{
		engine:   engine,
		docs:     docs,
		settings: settings,
		now:      time.Now,
		newID:    newJobID,
		jobs:     make(map[string]*jobEntry),
		queue:    newJobQueue(),
	}
}

// newJobID returns "job_" followed by 12 hex characters.
func newJobID() string {
	return "job_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Start launches the worker pool. It returns immediately.
// Cancelling ctx stops the pool as if Stop had been called.
func (s *AnalysisService) Start(ctx context.Context) error {
	s.poolMu.Lock()
	if s.running {
		s.poolMu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	if s.queue.isClosed() {
		s.queue = newJobQueue()
	}
	queue, stopCh := s.queue, s.stopCh
	s.poolMu.Unlock()

	for i := 0; i < s.settings.Workers; i++ {
		s.wg.Add(1)
		go s.worker(i, queue)
	}
	logger.Debug("analysis: started %d workers", s.settings.Workers)

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-stopCh:
		}
	}()
	return nil
}

// Stop closes the queue and waits for in-flight jobs to finish.
// Jobs still queued are failed with domain.ErrServiceStopped.
func (s *AnalysisService) Stop() {
	s.poolMu.Lock()
	if !s.running {
		s.poolMu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	pending := s.queue.Close()
	s.poolMu.Unlock()

	for _, id := range pending {
		s.fail(id, domain.ErrServiceStopped)
	}

	// Wait for running jobs to complete
	s.wg.Wait()
	logger.Debug("analysis: stopped (%d queued jobs failed)", len(pending))
}

// Running reports whether the worker pool is active.
func (s *AnalysisService) Running() bool {
	s.poolMu.Lock()
	defer s.poolMu.Unlock()
	return s.running
}

// QueueLength returns the number of submitted jobs waiting for a worker.
func (s *AnalysisService) QueueLength() int {
	s.poolMu.Lock()
	q := s.queue
	s.poolMu.Unlock()
	return q.Len()
}

// DefaultConfig returns the job configuration used when the caller supplies none.
func (s *AnalysisService) DefaultConfig() domain.AnalysisConfig {
	return s.settings.DefaultConfig()
}

// Create validates the request and allocates a pending job.
func (s *AnalysisService) Create(ctx context.Context, documentIDs []string, cfg domain.AnalysisConfig) (string, error) {
	if !s.settings.ThresholdInRange(cfg.Threshold) {
		return "", fmt.Errorf("%w: %v is outside [%v, %v]",
			domain.ErrInvalidThreshold, cfg.Threshold, s.settings.MinThreshold, s.settings.MaxThreshold)
	}

	resolved, err := s.docs.ResolveIDs(ctx, documentIDs)
	if err != nil {
		return "", err
	}
	if len(resolved) < 2 {
		return "", fmt.Errorf("%w: got %d", domain.ErrInsufficientDocuments, len(resolved))
	}

	job := &domain.AnalysisJob{
		ID:          s.newID(),
		Status:      domain.JobPending,
		Config:      cfg,
		DocumentIDs: resolved,
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	s.seq++
	s.jobs[job.ID] = &jobEntry{job: job, seq: s.seq, done: make(chan struct{})}
	s.mu.Unlock()

	logger.Debug("analysis: created %s (%d documents, threshold %.2f)", job.ID, len(resolved), cfg.Threshold)
	return job.ID, nil
}

// Submit moves a pending job to processing and queues it for a worker.
func (s *AnalysisService) Submit(_ context.Context, jobID string) error {
	_, err := s.update(jobID, func(job *domain.AnalysisJob) error {
		if job.Status != domain.JobPending {
			return fmt.Errorf("%w: job %s is %s", domain.ErrInvalidJobState, jobID, job.Status)
		}
		job.Status = domain.JobProcessing
		return nil
	})
	if err != nil {
		return err
	}

	s.poolMu.Lock()
	queue := s.queue
	s.poolMu.Unlock()

	if !queue.Push(jobID) {
		s.fail(jobID, domain.ErrServiceStopped)
		return fmt.Errorf("submit %s: %w", jobID, domain.ErrServiceStopped)
	}
	logger.Debug("analysis: queued %s", jobID)
	return nil
}

// Analyze creates and submits a job in one call.
func (s *AnalysisService) Analyze(ctx context.Context, documentIDs []string, cfg domain.AnalysisConfig) (string, error) {
	jobID, err := s.Create(ctx, documentIDs, cfg)
	if err != nil {
		return "", err
	}
	if err := s.Submit(ctx, jobID); err != nil {
		return jobID, err
	}
	return jobID, nil
}

// Get returns a snapshot of a job.
func (s *AnalysisService) Get(_ context.Context, jobID string) (*domain.AnalysisJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	return entry.job.Clone(), nil
}

// List returns snapshots of every job, newest first.
func (s *AnalysisService) List(_ context.Context) ([]domain.AnalysisJob, error) {
	s.mu.Lock()
	entries := make([]*jobEntry, 0, len(s.jobs))
	for _, e := range s.jobs {
		entries = append(entries, e)
	}
	jobs := make([]domain.AnalysisJob, len(entries))
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.job.CreatedAt.Equal(b.job.CreatedAt) {
			return a.job.CreatedAt.After(b.job.CreatedAt)
		}
		return a.seq > b.seq
	})
	for i, e := range entries {
		jobs[i] = *e.job.Clone()
	}
	s.mu.Unlock()

	return jobs, nil
}

// Delete removes a job. A job still running finishes but its result is discarded.
func (s *AnalysisService) Delete(_ context.Context, jobID string) error {
	s.mu.Lock()
	entry, ok := s.jobs[jobID]
	if ok {
		delete(s.jobs, jobID)
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	entry.finish()
	logger.Debug("analysis: deleted %s", jobID)
	return nil
}

// Wait blocks until the job is completed or failed, or ctx ends.
func (s *AnalysisService) Wait(ctx context.Context, jobID string) (*domain.AnalysisJob, error) {
	s.mu.Lock()
	entry, ok := s.jobs[jobID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}

	select {
	case <-entry.done:
		return s.Get(ctx, jobID)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// update is the single path through which job state changes. fn mutates a
// copy; the copy replaces the stored job only if fn succeeds and any status
// change is an allowed transition.
func (s *AnalysisService) update(jobID string, fn func(job *domain.AnalysisJob) error) (*domain.AnalysisJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}

	next := entry.job.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if next.Status != entry.job.Status && !entry.job.Status.CanTransitionTo(next.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidJobState, entry.job.Status, next.Status)
	}

	entry.job = next
	if next.Status.IsTerminal() {
		entry.finish()
	}
	return next.Clone(), nil
}

// worker executes queued jobs until the queue closes.
func (s *AnalysisService) worker(n int, queue *jobQueue) {
	defer s.wg.Done()
	for {
		jobID, ok := queue.Pop()
		if !ok {
			return
		}
		logger.Debug("analysis: worker %d picked up %s", n, jobID)
		s.execute(jobID)
	}
}

// execute runs the pipeline for one job and records the outcome.
func (s *AnalysisService) execute(jobID string) {
	job, err := s.update(jobID, func(job *domain.AnalysisJob) error {
		started := s.now()
		job.StartedAt = &started
		return nil
	})
	if err != nil {
		logger.Debug("analysis: skipping %s: %v", jobID, err)
		return
	}

	result, err := s.runPipeline(job)
	if err != nil {
		logger.Error("analysis: job %s failed: %v", jobID, err)
		s.fail(jobID, err)
		return
	}

	_, err = s.update(jobID, func(job *domain.AnalysisJob) error {
		completed := s.now()
		job.Status = domain.JobCompleted
		job.Result = result
		job.CompletedAt = &completed
		return nil
	})
	if err != nil {
		logger.Debug("analysis: discarding result of %s: %v", jobID, err)
		return
	}
	logger.Info("analysis: job %s completed (%d pairs, %d flagged)",
		jobID, len(result.Pairs), result.Statistics.FlaggedPairs)
}

// runPipeline fetches the job's documents and analyses them. A panic in the
// pipeline becomes an error so the worker survives.
func (s *AnalysisService) runPipeline(job *domain.AnalysisJob) (result *domain.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	// Jobs run to completion; no caller context reaches the pipeline.
	ctx := context.Background()

	sources, err := s.docs.Sources(ctx, job.DocumentIDs)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	return s.engine.Analyze(ctx, sources, job.Config)
}

// fail moves a processing job to failed with cause as its message.
func (s *AnalysisService) fail(jobID string, cause error) {
	_, err := s.update(jobID, func(job *domain.AnalysisJob) error {
		completed := s.now()
		job.Status = domain.JobFailed
		job.Error = cause.Error()
		job.ErrorKind = domain.ErrorKind(cause)
		job.CompletedAt = &completed
		return nil
	})
	if err != nil {
		logger.Debug("analysis: could not fail %s: %v", jobID, err)
	}
}
