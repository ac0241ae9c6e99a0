package similarity

import (
	"fmt"
	"math"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/features"
)

// Precision is the number of decimal places similarities are reported with.
const Precision = 4

// Item is one document entering pairwise comparison.
type Item struct {
	ID     string
	Name   string
	Vector features.Vector
}

// Cosine returns the cosine similarity of a and b clamped to [0, 1].
// It is 0 when either vector has zero norm.
func Cosine(a, b features.Vector) float64 {
	na := a.SquaredNorm()
	nb := b.SquaredNorm()
	if na == 0 || nb == 0 {
		return 0
	}
	// sqrt(na*nb) rather than sqrt(na)*sqrt(nb) keeps cos(v, v) exactly 1.
	sim := a.Dot(b) / math.Sqrt(na*nb)
	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	default:
		return sim
	}
}

// Round rounds v to Precision decimal places.
func Round(v float64) float64 {
	scale := math.Pow(10, Precision)
	return math.Round(v*scale) / scale
}

func checkDimensions(items []Item) error {
	if len(items) == 0 {
		return nil
	}
	dim := items[0].Vector.Dim
	for _, it := range items[1:] {
		if it.Vector.Dim != dim {
			return fmt.Errorf("%w: %q has %d dimensions, %q has %d",
				domain.ErrDimensionMismatch, items[0].ID, dim, it.ID, it.Vector.Dim)
		}
	}
	return nil
}
