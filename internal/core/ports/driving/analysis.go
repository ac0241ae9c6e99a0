package driving

import (
	"context"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// AnalysisService orchestrates asynchronous similarity jobs.
type AnalysisService interface {
	// Create validates the request and allocates a pending job.
	// Empty documentIDs selects every stored document.
	Create(ctx context.Context, documentIDs []string, cfg domain.AnalysisConfig) (string, error)

	// Submit moves a pending job to processing and queues it on the worker pool.
	Submit(ctx context.Context, jobID string) error

	// Analyze creates and submits a job in one call.
	Analyze(ctx context.Context, documentIDs []string, cfg domain.AnalysisConfig) (string, error)

	// Get returns a snapshot of a job.
	Get(ctx context.Context, jobID string) (*domain.AnalysisJob, error)

	// List returns snapshots of every job, newest first.
	List(ctx context.Context) ([]domain.AnalysisJob, error)

	// Delete removes a job from the registry.
	Delete(ctx context.Context, jobID string) error

	// Wait blocks until the job is completed or failed, or ctx ends.
	Wait(ctx context.Context, jobID string) (*domain.AnalysisJob, error)

	// DefaultConfig returns the job configuration used when the caller supplies none.
	DefaultConfig() domain.AnalysisConfig
}
