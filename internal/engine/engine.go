package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driven"
	"github.com/custodia-labs/dupecheck/internal/features"
	"github.com/custodia-labs/dupecheck/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.AnalysisEngine = (*Engine)(nil)

// Options configures the feature stages.
type Options struct {
	MaxVocabSize     int
	MinDocFreq       int
	StopwordLanguage string
	ExtraStopwords   []string
}

// OptionsFromSettings maps analysis settings to engine options.
func OptionsFromSettings(s domain.AnalysisSettings) Options {
	return Options{
		MaxVocabSize:     s.MaxVocabSize,
		MinDocFreq:       s.MinDocFreq,
		StopwordLanguage: s.StopwordLanguage,
		ExtraStopwords:   s.ExtraStopwords,
	}
}

// Engine runs the analysis pipeline. It is safe for concurrent use.
type Engine struct {
	pipeline *Pipeline
	now      func() time.Time

	mu     sync.RWMutex
	closed bool
}

// New loads the stopword list and assembles the pipeline.
func New(opts Options) (*Engine, error) {
	if opts.MaxVocabSize < 1 {
		return nil, fmt.Errorf("%w: max vocabulary size must be positive", domain.ErrInvalidInput)
	}
	if opts.StopwordLanguage == "" {
		opts.StopwordLanguage = "en"
	}

	stop, err := features.LoadStopwords(opts.StopwordLanguage, opts.ExtraStopwords...)
	if err != nil {
		return nil, fmt.Errorf("load stopwords: %w", err)
	}

	e := &Engine{now: time.Now}
	e.pipeline = NewPipeline(
		normaliseStage{},
		tokenizeStage{tokenizer: features.NewTokenizer(stop)},
		vocabularyStage{maxVocabSize: opts.MaxVocabSize, minDocFreq: opts.MinDocFreq},
		vectorizeStage{},
		compareStage{},
		statisticsStage{now: func() time.Time { return e.now() }},
	)

	logger.Debug("engine: ready (stages=%s, stopwords=%s, max_vocab=%d, min_df=%d)",
		strings.Join(e.Stages(), ","), opts.StopwordLanguage, opts.MaxVocabSize, opts.MinDocFreq)
	return e, nil
}

// Analyze runs every stage over docs in order and returns the result.
func (e *Engine) Analyze(ctx context.Context, docs []domain.SourceDocument, cfg domain.AnalysisConfig) (*domain.AnalysisResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, domain.ErrEngineClosed
	}
	if len(docs) < 2 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInsufficientDocuments, len(docs))
	}

	r := &run{
		started: e.now(),
		config:  cfg,
		sources: docs,
	}
	if err := e.pipeline.Execute(ctx, r); err != nil {
		return nil, err
	}

	logger.Debug("engine: %d documents, vocabulary %d, %d pairs",
		len(docs), r.vocabulary.Size(), len(r.pairs))
	return r.result(), nil
}

// Stages returns the pipeline stage names in order.
func (e *Engine) Stages() []string {
	return e.pipeline.Names()
}

// Close tears the engine down. In-flight Analyze calls finish first.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}
