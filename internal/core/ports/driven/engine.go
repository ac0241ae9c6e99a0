package driven

import (
	"context"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// AnalysisEngine runs the similarity pipeline over one document set.
// An engine is created once, shared by every worker and torn down with Close.
type AnalysisEngine interface {
	// Analyze normalises, vectorises and compares docs in order.
	// Processing failures wrap domain.ErrEmptyDocument, domain.ErrEmptyCorpus
	// or domain.ErrDimensionMismatch.
	Analyze(ctx context.Context, docs []domain.SourceDocument, cfg domain.AnalysisConfig) (*domain.AnalysisResult, error)

	// Close releases the engine. Analyze fails with domain.ErrEngineClosed afterwards.
	Close() error
}
