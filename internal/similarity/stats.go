package similarity

import (
	"time"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// ComputeStatistics summarises the pairs a job returned. Averages and
// extremes cover only those pairs; all numeric fields are zero when
// there are none.
func ComputeStatistics(pairs []domain.SimilarityPair, totalDocuments int, elapsed time.Duration, threshold float64) domain.Statistics {
	stats := domain.Statistics{
		TotalDocuments:   totalDocuments,
		TotalComparisons: len(pairs),
		Threshold:        threshold,
		ProcessingTime:   elapsed,
	}
	if len(pairs) == 0 {
		return stats
	}

	sum := 0.0
	stats.MinSimilarity = pairs[0].Similarity
	stats.MaxSimilarity = pairs[0].Similarity
	for _, p := range pairs {
		sum += p.Similarity
		if p.Similarity < stats.MinSimilarity {
			stats.MinSimilarity = p.Similarity
		}
		if p.Similarity > stats.MaxSimilarity {
			stats.MaxSimilarity = p.Similarity
		}
		if p.Flagged {
			stats.FlaggedPairs++
		}
	}
	stats.AvgSimilarity = Round(sum / float64(len(pairs)))
	return stats
}
