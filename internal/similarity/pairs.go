package similarity

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// ComputePairs compares every unordered pair (i, j), i < j, in item order.
// A pair is flagged when its unrounded similarity is at least threshold and
// is kept when includeAll is set or it is flagged. Reported similarities are
// rounded to four decimals. The result is sorted by
// similarity descending; equal similarities keep generation order.
func ComputePairs(items []Item, threshold float64, includeAll bool) ([]domain.SimilarityPair, error) {
	if len(items) < 2 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInsufficientDocuments, len(items))
	}
	if err := checkDimensions(items); err != nil {
		return nil, err
	}

	capacity := 0
	if includeAll {
		capacity = len(items) * (len(items) - 1) / 2
	}
	pairs := make([]domain.SimilarityPair, 0, capacity)

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			raw := Cosine(items[i].Vector, items[j].Vector)
			flagged := raw >= threshold
			if !includeAll && !flagged {
				continue
			}
			pairs = append(pairs, domain.SimilarityPair{
				Doc1ID:     items[i].ID,
				Doc2ID:     items[j].ID,
				Doc1Name:   items[i].Name,
				Doc2Name:   items[j].Name,
				Similarity: Round(raw),
				Flagged:    flagged,
			})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Similarity > pairs[b].Similarity
	})
	return pairs, nil
}
