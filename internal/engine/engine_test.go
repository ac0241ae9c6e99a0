package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(Options{MaxVocabSize: 10000, MinDocFreq: 1, StopwordLanguage: "en"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func sources(texts ...string) []domain.SourceDocument {
	out := make([]domain.SourceDocument, len(texts))
	for i, text := range texts {
		id := string(rune('a' + i))
		out[i] = domain.SourceDocument{ID: id, Filename: id + ".txt", Text: text}
	}
	return out
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(Options{MaxVocabSize: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEngine_Stages(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t,
		[]string{"normalise", "tokenize", "vocabulary", "vectorize", "compare", "statistics"},
		e.Stages())
}

func TestEngine_IdenticalDocuments(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.Analyze(context.Background(),
		sources("The quick fox", "the quick fox"),
		domain.AnalysisConfig{Threshold: 0.7, IncludeAllPairs: true})
	require.NoError(t, err)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, 1.0, result.Pairs[0].Similarity)
	assert.True(t, result.Pairs[0].Flagged)
	assert.Equal(t, 1, result.Statistics.FlaggedPairs)
	assert.Equal(t, 2, result.Statistics.TotalDocuments)
	assert.Equal(t, []string{"a.txt", "b.txt"}, result.DocumentNames)
	assert.Greater(t, result.VocabularySize, 0)
}

func TestEngine_TwoIdenticalOneDisjoint(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.Analyze(context.Background(),
		sources("the quick brown fox", "the quick brown fox", "lazy dogs sleeping soundly"),
		domain.AnalysisConfig{Threshold: 0.5, IncludeAllPairs: false})
	require.NoError(t, err)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "a", result.Pairs[0].Doc1ID)
	assert.Equal(t, "b", result.Pairs[0].Doc2ID)
	assert.Equal(t, 1, result.Statistics.FlaggedPairs)

	require.Len(t, result.Matrix, 3)
	for i := range result.Matrix {
		require.Len(t, result.Matrix[i], 3)
		assert.Equal(t, 1.0, result.Matrix[i][i])
	}
	assert.Equal(t, 0.0, result.Matrix[0][2])
}

func TestEngine_IncludeAllPairs(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.Analyze(context.Background(),
		sources("apples oranges", "oranges pears", "pears plums", "plums grapes"),
		domain.AnalysisConfig{Threshold: 0.9, IncludeAllPairs: true})
	require.NoError(t, err)
	assert.Len(t, result.Pairs, 6)
	assert.Equal(t, 6, result.Statistics.TotalComparisons)
}

func TestEngine_EmptyDocument(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Analyze(context.Background(),
		sources("real words here", "?!?!"),
		domain.AnalysisConfig{Threshold: 0.7})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	assert.Contains(t, err.Error(), "stage normalise")
	assert.Contains(t, err.Error(), "b.txt")
}

func TestEngine_EmptyCorpus(t *testing.T) {
	e := newTestEngine(t)

	// every token is an English stopword
	_, err := e.Analyze(context.Background(),
		sources("the and is", "and the"),
		domain.AnalysisConfig{Threshold: 0.7})
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestEngine_ExtraStopwords(t *testing.T) {
	e, err := New(Options{MaxVocabSize: 100, MinDocFreq: 1, StopwordLanguage: "none", ExtraStopwords: []string{"boiler", "plate"}})
	require.NoError(t, err)
	defer e.Close()

	result, err := e.Analyze(context.Background(),
		sources("boiler plate alpha", "boiler plate beta"),
		domain.AnalysisConfig{Threshold: 0.5, IncludeAllPairs: true})
	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)
	assert.Equal(t, 0.0, result.Pairs[0].Similarity)
}

func TestEngine_InsufficientDocuments(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Analyze(context.Background(), sources("only one"), domain.AnalysisConfig{Threshold: 0.7})
	assert.ErrorIs(t, err, domain.ErrInsufficientDocuments)
}

func TestEngine_Closed(t *testing.T) {
	e, err := New(Options{MaxVocabSize: 10})
	require.NoError(t, err)
	require.NoError(t, e.Close())

	_, err = e.Analyze(context.Background(), sources("a b", "c d"), domain.AnalysisConfig{Threshold: 0.7})
	assert.ErrorIs(t, err, domain.ErrEngineClosed)
}

func TestEngine_ConcurrentAnalyze(t *testing.T) {
	e := newTestEngine(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := e.Analyze(context.Background(),
				sources("shared words appear", "shared words appear", "different content entirely"),
				domain.AnalysisConfig{Threshold: 0.7, IncludeAllPairs: true})
			if err == nil && result.Pairs[0].Similarity != 1.0 {
				err = assert.AnError
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
