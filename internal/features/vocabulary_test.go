package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

func docs(tokens ...[]string) []TokenizedDocument {
	out := make([]TokenizedDocument, len(tokens))
	for i, t := range tokens {
		out[i] = TokenizedDocument{ID: string(rune('a' + i)), Tokens: t}
	}
	return out
}

func TestFitVocabulary_Ordering(t *testing.T) {
	corpus := docs(
		[]string{"fox", "dog", "cat", "cat"},
		[]string{"fox", "dog", "bird"},
		[]string{"fox", "ant"},
	)

	vocab, err := FitVocabulary(corpus, 100, 1)
	require.NoError(t, err)

	// fox=3, dog=2, then df=1 terms lexicographically
	assert.Equal(t, []string{"fox", "dog", "ant", "bird", "cat"}, vocab.terms)
	assert.Equal(t, 5, vocab.Size())
	assert.Equal(t, 3, vocab.NumDocs())

	for i, term := range vocab.terms {
		idx, ok := vocab.Index(term)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}
}

func TestFitVocabulary_DocumentFrequencyCountsDocumentsNotTokens(t *testing.T) {
	vocab, err := FitVocabulary(docs([]string{"cat", "cat", "cat"}, []string{"dog"}), 10, 1)
	require.NoError(t, err)

	cat, _ := vocab.Index("cat")
	dog, _ := vocab.Index("dog")
	assert.Equal(t, 1, vocab.docFreq[cat])
	assert.Equal(t, 1, vocab.docFreq[dog])
	_, ok := vocab.Index("missing")
	assert.False(t, ok)
}

func TestFitVocabulary_CapBreaksTiesLexicographically(t *testing.T) {
	corpus := docs(
		[]string{"zeta", "alpha", "mid", "common"},
		[]string{"beta", "common"},
	)

	vocab, err := FitVocabulary(corpus, 3, 1)
	require.NoError(t, err)

	// common has df=2; the remaining slots go to the smallest df=1 terms
	assert.Equal(t, []string{"common", "alpha", "beta"}, vocab.terms)
	_, ok := vocab.Index("zeta")
	assert.False(t, ok)
}

func TestFitVocabulary_MinDocFreq(t *testing.T) {
	corpus := docs(
		[]string{"shared", "only1"},
		[]string{"shared", "only2"},
	)

	vocab, err := FitVocabulary(corpus, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, vocab.terms)
}

func TestFitVocabulary_MinDocFreqFiltersEverything(t *testing.T) {
	vocab, err := FitVocabulary(docs([]string{"a"}, []string{"b"}), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, vocab.Size())
}

func TestFitVocabulary_EmptyCorpus(t *testing.T) {
	_, err := FitVocabulary(docs([]string{}, nil), 10, 1)
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)

	_, err = FitVocabulary(nil, 10, 1)
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestFitVocabulary_InvalidCap(t *testing.T) {
	_, err := FitVocabulary(docs([]string{"a"}), 0, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFitVocabulary_Deterministic(t *testing.T) {
	corpus := docs(
		[]string{"q", "w", "e", "r", "t", "y"},
		[]string{"y", "t", "r", "e", "w", "q"},
		[]string{"u", "i", "o", "p"},
	)

	first, err := FitVocabulary(corpus, 5, 1)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := FitVocabulary(corpus, 5, 1)
		require.NoError(t, err)
		assert.Equal(t, first.terms, again.terms)
	}
}
