package similarity

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/features"
)

// buildItems runs the feature stages over raw texts, mirroring the engine.
func buildItems(t *testing.T, texts ...string) []Item {
	t.Helper()
	tok := features.NewTokenizer(features.NewWordSet("the", "a", "and"))

	corpus := make([]features.TokenizedDocument, len(texts))
	for i, text := range texts {
		norm, err := features.Normalize(text)
		require.NoError(t, err)
		corpus[i] = features.TokenizedDocument{ID: string(rune('a' + i)), Tokens: tok.Tokenize(norm)}
	}
	vocab, err := features.FitVocabulary(corpus, 10000, 1)
	require.NoError(t, err)

	vectors := features.NewVectorizer(vocab).TransformAll(corpus)
	items := make([]Item, len(texts))
	for i, v := range vectors {
		items[i] = Item{ID: corpus[i].ID, Name: corpus[i].ID + ".txt", Vector: v}
	}
	return items
}

func randomVector(r *rand.Rand, dim int) features.Vector {
	v := features.Vector{Dim: dim}
	for i := 0; i < dim; i++ {
		if r.Intn(2) == 0 {
			continue
		}
		v.Indices = append(v.Indices, i)
		v.Values = append(v.Values, r.Float64()*5)
	}
	return v
}

// ==================== Cosine Tests ====================

func TestCosine_SymmetricAndBounded(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		a := randomVector(r, 30)
		b := randomVector(r, 30)

		ab := Cosine(a, b)
		ba := Cosine(b, a)

		assert.Equal(t, ab, ba)
		assert.GreaterOrEqual(t, ab, 0.0)
		assert.LessOrEqual(t, ab, 1.0)
	}
}

func TestCosine_SelfSimilarity(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		v := randomVector(r, 50)
		if v.Len() == 0 {
			continue
		}
		assert.Equal(t, 1.0, Cosine(v, v))
	}
}

func TestCosine_Disjoint(t *testing.T) {
	a := features.Vector{Dim: 4, Indices: []int{0, 1}, Values: []float64{1, 2}}
	b := features.Vector{Dim: 4, Indices: []int{2, 3}, Values: []float64{3, 4}}
	assert.Equal(t, 0.0, Cosine(a, b))
}

func TestCosine_ZeroNorm(t *testing.T) {
	zero := features.Vector{Dim: 3}
	v := features.Vector{Dim: 3, Indices: []int{1}, Values: []float64{2}}

	assert.Equal(t, 0.0, Cosine(zero, v))
	assert.Equal(t, 0.0, Cosine(v, zero))
	assert.Equal(t, 0.0, Cosine(zero, zero))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.1235, Round(0.123456))
	assert.Equal(t, 1.0, Round(0.99999999))
	assert.Equal(t, 0.0, Round(0.00001))
}

// ==================== ComputePairs Tests ====================

func TestComputePairs_IdenticalDocuments(t *testing.T) {
	items := buildItems(t, "the quick fox", "the quick fox")

	pairs, err := ComputePairs(items, 0.7, true)
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	assert.Equal(t, 1.0, pairs[0].Similarity)
	assert.True(t, pairs[0].Flagged)
	assert.Equal(t, "a", pairs[0].Doc1ID)
	assert.Equal(t, "b", pairs[0].Doc2ID)
	assert.Equal(t, "a.txt", pairs[0].Doc1Name)
}

func TestComputePairs_ThresholdFilter(t *testing.T) {
	items := buildItems(t,
		"the quick brown fox",
		"the quick brown fox",
		"lazy dog sleeps",
	)

	pairs, err := ComputePairs(items, 0.5, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "a", pairs[0].Doc1ID)
	assert.Equal(t, "b", pairs[0].Doc2ID)
	for _, p := range pairs {
		assert.GreaterOrEqual(t, p.Similarity, 0.5)
	}
}

func TestComputePairs_FlagsOnUnroundedSimilarity(t *testing.T) {
	// cos = 0.69996, which reports as 0.7 after rounding.
	const c = 0.69996
	items := []Item{
		{ID: "a", Name: "a.txt", Vector: features.Vector{Dim: 2, Indices: []int{0}, Values: []float64{1}}},
		{ID: "b", Name: "b.txt", Vector: features.Vector{Dim: 2, Indices: []int{0, 1}, Values: []float64{c, math.Sqrt(1 - c*c)}}},
	}

	pairs, err := ComputePairs(items, 0.7, true)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, 0.7, pairs[0].Similarity)
	assert.False(t, pairs[0].Flagged)

	pairs, err = ComputePairs(items, 0.7, false)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	pairs, err = ComputePairs(items, 0.6999, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.True(t, pairs[0].Flagged)
}

func TestComputePairs_IncludeAllReturnsEveryPair(t *testing.T) {
	items := buildItems(t,
		"alpha beta gamma",
		"beta gamma delta",
		"gamma delta epsilon",
		"zeta eta theta",
		"alpha zeta",
	)

	pairs, err := ComputePairs(items, 0.9, true)
	require.NoError(t, err)
	assert.Len(t, pairs, 5*4/2)
}

func TestComputePairs_SortedDescendingAndStable(t *testing.T) {
	items := buildItems(t,
		"one two",
		"three four",
		"five six",
		"one two",
	)

	pairs, err := ComputePairs(items, 0.5, true)
	require.NoError(t, err)
	require.Len(t, pairs, 6)

	assert.Equal(t, 1.0, pairs[0].Similarity)
	assert.Equal(t, "a", pairs[0].Doc1ID)
	assert.Equal(t, "d", pairs[0].Doc2ID)

	// the remaining disjoint pairs tie at 0 and keep generation order
	expected := [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}, {"b", "d"}, {"c", "d"}}
	for i, want := range expected {
		assert.Equal(t, 0.0, pairs[i+1].Similarity)
		assert.Equal(t, want[0], pairs[i+1].Doc1ID)
		assert.Equal(t, want[1], pairs[i+1].Doc2ID)
	}
}

func TestComputePairs_InsufficientDocuments(t *testing.T) {
	items := buildItems(t, "lonely document")

	_, err := ComputePairs(items, 0.7, true)
	assert.ErrorIs(t, err, domain.ErrInsufficientDocuments)

	_, err = ComputePairs(nil, 0.7, true)
	assert.ErrorIs(t, err, domain.ErrInsufficientDocuments)
}

func TestComputePairs_DimensionMismatch(t *testing.T) {
	items := []Item{
		{ID: "a", Vector: features.Vector{Dim: 3}},
		{ID: "b", Vector: features.Vector{Dim: 4}},
	}

	_, err := ComputePairs(items, 0.7, true)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

// ==================== BuildMatrix Tests ====================

func TestBuildMatrix(t *testing.T) {
	items := buildItems(t,
		"the quick brown fox",
		"the quick brown fox",
		"lazy dog sleeps",
	)

	matrix, names, err := BuildMatrix(items)
	require.NoError(t, err)

	require.Len(t, matrix, 3)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, names)
	for i := range matrix {
		require.Len(t, matrix[i], 3)
		assert.Equal(t, 1.0, matrix[i][i])
		for j := range matrix {
			assert.Equal(t, matrix[i][j], matrix[j][i])
		}
	}
	assert.Equal(t, 1.0, matrix[0][1])
	assert.Equal(t, 0.0, matrix[0][2])
}

func TestBuildMatrix_DiagonalForZeroVectors(t *testing.T) {
	items := []Item{
		{ID: "a", Name: "a", Vector: features.Vector{Dim: 2}},
		{ID: "b", Name: "b", Vector: features.Vector{Dim: 2}},
	}

	matrix, _, err := BuildMatrix(items)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, matrix)
}

func TestBuildMatrix_DimensionMismatch(t *testing.T) {
	items := []Item{
		{ID: "a", Vector: features.Vector{Dim: 1}},
		{ID: "b", Vector: features.Vector{Dim: 2}},
	}

	_, _, err := BuildMatrix(items)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

// ==================== ComputeStatistics Tests ====================

func TestComputeStatistics(t *testing.T) {
	pairs := []domain.SimilarityPair{
		{Similarity: 0.9, Flagged: true},
		{Similarity: 0.6, Flagged: false},
		{Similarity: 0.3, Flagged: false},
	}

	stats := ComputeStatistics(pairs, 3, 1500*time.Millisecond, 0.7)

	assert.Equal(t, 3, stats.TotalDocuments)
	assert.Equal(t, 3, stats.TotalComparisons)
	assert.Equal(t, 1, stats.FlaggedPairs)
	assert.Equal(t, 0.9, stats.MaxSimilarity)
	assert.Equal(t, 0.3, stats.MinSimilarity)
	assert.Equal(t, 0.6, stats.AvgSimilarity)
	assert.Equal(t, 0.7, stats.Threshold)
	assert.Equal(t, 1500*time.Millisecond, stats.ProcessingTime)
}

func TestComputeStatistics_Empty(t *testing.T) {
	stats := ComputeStatistics(nil, 4, time.Second, 0.7)

	assert.Equal(t, 4, stats.TotalDocuments)
	assert.Equal(t, 0, stats.TotalComparisons)
	assert.Equal(t, 0, stats.FlaggedPairs)
	assert.Equal(t, 0.0, stats.AvgSimilarity)
	assert.Equal(t, 0.0, stats.MaxSimilarity)
	assert.Equal(t, 0.0, stats.MinSimilarity)
}

func TestComputeStatistics_Invariants(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	items := make([]Item, 8)
	for i := range items {
		items[i] = Item{ID: string(rune('a' + i)), Vector: randomVector(r, 20)}
	}

	for _, includeAll := range []bool{true, false} {
		pairs, err := ComputePairs(items, 0.5, includeAll)
		require.NoError(t, err)
		stats := ComputeStatistics(pairs, len(items), 0, 0.5)

		flagged := 0
		for _, p := range pairs {
			if p.Flagged {
				flagged++
			}
		}
		assert.Equal(t, flagged, stats.FlaggedPairs)
		if len(pairs) > 0 {
			assert.LessOrEqual(t, stats.MinSimilarity, stats.AvgSimilarity)
			assert.LessOrEqual(t, stats.AvgSimilarity, stats.MaxSimilarity)
		}
	}
}
