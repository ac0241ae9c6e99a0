package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/features"
	"github.com/custodia-labs/dupecheck/internal/similarity"
)

// run is the private state of one Analyze call.
type run struct {
	started time.Time
	config  domain.AnalysisConfig
	sources []domain.SourceDocument

	normalized []string
	tokenized  []features.TokenizedDocument
	vocabulary *features.Vocabulary
	items      []similarity.Item

	pairs  []domain.SimilarityPair
	matrix [][]float64
	names  []string
	stats  domain.Statistics
}

func (r *run) result() *domain.AnalysisResult {
	vocabSize := 0
	if r.vocabulary != nil {
		vocabSize = r.vocabulary.Size()
	}
	return &domain.AnalysisResult{
		Pairs:          r.pairs,
		Matrix:         r.matrix,
		DocumentNames:  r.names,
		VocabularySize: vocabSize,
		Statistics:     r.stats,
	}
}

type normaliseStage struct{}

func (normaliseStage) Name() string { return "normalise" }

func (normaliseStage) Run(_ context.Context, r *run) error {
	r.normalized = make([]string, len(r.sources))
	for i, src := range r.sources {
		text, err := features.Normalize(src.Text)
		if err != nil {
			return fmt.Errorf("document %q (%s): %w", src.Filename, src.ID, err)
		}
		r.normalized[i] = text
	}
	return nil
}

type tokenizeStage struct {
	tokenizer *features.Tokenizer
}

func (tokenizeStage) Name() string { return "tokenize" }

func (s tokenizeStage) Run(_ context.Context, r *run) error {
	r.tokenized = make([]features.TokenizedDocument, len(r.normalized))
	for i, text := range r.normalized {
		r.tokenized[i] = features.TokenizedDocument{
			ID:     r.sources[i].ID,
			Tokens: s.tokenizer.Tokenize(text),
		}
	}
	return nil
}

type vocabularyStage struct {
	maxVocabSize int
	minDocFreq   int
}

func (vocabularyStage) Name() string { return "vocabulary" }

func (s vocabularyStage) Run(_ context.Context, r *run) error {
	vocab, err := features.FitVocabulary(r.tokenized, s.maxVocabSize, s.minDocFreq)
	if err != nil {
		return err
	}
	r.vocabulary = vocab
	return nil
}

type vectorizeStage struct{}

func (vectorizeStage) Name() string { return "vectorize" }

func (vectorizeStage) Run(_ context.Context, r *run) error {
	vectors := features.NewVectorizer(r.vocabulary).TransformAll(r.tokenized)
	r.items = make([]similarity.Item, len(vectors))
	for i, vec := range vectors {
		r.items[i] = similarity.Item{
			ID:     r.sources[i].ID,
			Name:   r.sources[i].Filename,
			Vector: vec,
		}
	}
	return nil
}

type compareStage struct{}

func (compareStage) Name() string { return "compare" }

func (compareStage) Run(_ context.Context, r *run) error {
	pairs, err := similarity.ComputePairs(r.items, r.config.Threshold, r.config.IncludeAllPairs)
	if err != nil {
		return err
	}
	matrix, names, err := similarity.BuildMatrix(r.items)
	if err != nil {
		return err
	}
	r.pairs, r.matrix, r.names = pairs, matrix, names
	return nil
}

type statisticsStage struct {
	now func() time.Time
}

func (statisticsStage) Name() string { return "statistics" }

func (s statisticsStage) Run(_ context.Context, r *run) error {
	elapsed := s.now().Sub(r.started)
	r.stats = similarity.ComputeStatistics(r.pairs, len(r.sources), elapsed, r.config.Threshold)
	return nil
}
