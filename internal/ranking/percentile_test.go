package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPercentileMap(t *testing.T) {
	percentiles := BuildPercentileMap([]float64{0.4, 0.9, 0.1, 0.7})

	assert.InDelta(t, 0.0, percentiles[0.1], 1e-9)
	assert.InDelta(t, 1.0/3.0, percentiles[0.4], 1e-9)
	assert.InDelta(t, 2.0/3.0, percentiles[0.7], 1e-9)
	assert.InDelta(t, 1.0, percentiles[0.9], 1e-9)
}

func TestBuildPercentileMapBounds(t *testing.T) {
	scores := []float64{0.83, 0.12, 0.55, 0.91, 0.34, 0.67}
	percentiles := BuildPercentileMap(scores)

	for _, s := range scores {
		p := percentiles[s]
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
	assert.InDelta(t, 0.0, percentiles[0.12], 1e-9)
	assert.InDelta(t, 1.0, percentiles[0.91], 1e-9)
}

func TestBuildPercentileMapSingleScore(t *testing.T) {
	percentiles := BuildPercentileMap([]float64{0.5})
	assert.InDelta(t, 0.0, percentiles[0.5], 1e-9)
}

func TestBuildPercentileMapTiesShareFirstOccurrence(t *testing.T) {
	// Sorted: 0.2, 0.5, 0.5, 0.8. Both 0.5s take index 1.
	percentiles := BuildPercentileMap([]float64{0.5, 0.2, 0.8, 0.5})

	assert.InDelta(t, 0.0, percentiles[0.2], 1e-9)
	assert.InDelta(t, 1.0/3.0, percentiles[0.5], 1e-9)
	assert.InDelta(t, 1.0, percentiles[0.8], 1e-9)
	assert.Len(t, percentiles, 3)
}

func TestBuildPercentileMapEmpty(t *testing.T) {
	assert.Empty(t, BuildPercentileMap(nil))
}
