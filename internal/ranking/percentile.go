package ranking

import (
	"sort"
)

// BuildPercentileMap converts raw scores into rank-based percentiles in
// [0, 1]. The percentile of a score is the index of its first occurrence
// in ascending order divided by N−1, so the minimum maps to 0 and the
// maximum to 1; ties share the percentile of their first occurrence. A
// single-element input maps to 0.
//
// The map must be built once from every feasible pair across the whole
// dataset, never per target: only then does a percentile of 0.9 mean
// "better than 90% of all candidate pairs considered".
func BuildPercentileMap(scores []float64) map[float64]float64 {
	if len(scores) == 0 {
		return map[float64]float64{}
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	denominator := float64(len(sorted) - 1)
	if denominator < 1 {
		denominator = 1
	}

	percentiles := make(map[float64]float64, len(sorted))
	for i, score := range sorted {
		if _, seen := percentiles[score]; !seen {
			percentiles[score] = float64(i) / denominator
		}
	}
	return percentiles
}
