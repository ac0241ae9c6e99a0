package similarity

// BuildMatrix returns the n x n similarity matrix in item order and the
// matching document names. The diagonal is exactly 1 and the lower
// triangle mirrors the upper one.
func BuildMatrix(items []Item) ([][]float64, []string, error) {
	if err := checkDimensions(items); err != nil {
		return nil, nil, err
	}

	n := len(items)
	names := make([]string, n)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1.0
		names[i] = items[i].Name
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := Round(Cosine(items[i].Vector, items[j].Vector))
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}
	return matrix, names, nil
}
