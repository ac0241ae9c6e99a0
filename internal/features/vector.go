package features

import "math"

// Vector is a sparse feature vector. Indices are strictly increasing and
// Values holds the weight at the matching position. Dim is the vocabulary
// size the vector was built against.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v Vector) Len() int {
	return len(v.Indices)
}

// SquaredNorm returns the sum of squared weights.
func (v Vector) SquaredNorm() float64 {
	sum := 0.0
	for _, w := range v.Values {
		sum += w * w
	}
	return sum
}

// Norm returns the L2 norm.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.SquaredNorm())
}

// Dot returns the dot product over indices present in both vectors.
func (v Vector) Dot(other Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v.Indices) && j < len(other.Indices) {
		switch {
		case v.Indices[i] == other.Indices[j]:
			sum += v.Values[i] * other.Values[j]
			i++
			j++
		case v.Indices[i] < other.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}
