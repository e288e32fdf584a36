package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-polyline"

	"munroaccess.org/internal/models"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		lat1     float64
		lon1     float64
		lat2     float64
		lon2     float64
		expected float64
		delta    float64
	}{
		{
			name: "same point",
			lat1: 55.8623, lon1: -4.2512,
			lat2: 55.8623, lon2: -4.2512,
			expected: 0, delta: 0.001,
		},
		{
			name: "glasgow to edinburgh",
			lat1: 55.8642, lon1: -4.2518,
			lat2: 55.9533, lon2: -3.1883,
			expected: 67000, delta: 1500,
		},
		{
			name: "one degree of latitude",
			lat1: 55.0, lon1: -4.0,
			lat2: 56.0, lon2: -4.0,
			expected: 111195, delta: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, got, tt.delta)
		})
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	d1 := Distance(55.86, -4.25, 56.39, -4.62)
	d2 := Distance(56.39, -4.62, 55.86, -4.25)
	assert.InDelta(t, d1, d2, 1e-6)
}

func TestLegPathDistanceFallsBackToEndpoints(t *testing.T) {
	leg := models.Leg{
		From: models.Place{LngLat: models.LngLat{Lng: -4.0, Lat: 55.0}},
		To:   models.Place{LngLat: models.LngLat{Lng: -4.0, Lat: 56.0}},
	}

	got := LegPathDistance(leg)
	assert.InDelta(t, 111195, got, 200)
}

func TestLegPathDistanceUsesGeometry(t *testing.T) {
	// A dog-legged path is longer than the straight line between endpoints.
	coords := [][]float64{
		{55.0, -4.0},
		{55.5, -3.5},
		{56.0, -4.0},
	}
	encoded := string(polyline.EncodeCoords(coords))

	leg := models.Leg{
		From:     models.Place{LngLat: models.LngLat{Lng: -4.0, Lat: 55.0}},
		To:       models.Place{LngLat: models.LngLat{Lng: -4.0, Lat: 56.0}},
		Geometry: encoded,
	}

	straight := Distance(55.0, -4.0, 56.0, -4.0)
	got := LegPathDistance(leg)
	assert.Greater(t, got, straight)
}

func TestLegPathDistanceBadGeometry(t *testing.T) {
	leg := models.Leg{
		From:     models.Place{LngLat: models.LngLat{Lng: -4.0, Lat: 55.0}},
		To:       models.Place{LngLat: models.LngLat{Lng: -4.0, Lat: 56.0}},
		Geometry: "not a polyline \xff",
	}

	got := LegPathDistance(leg)
	assert.InDelta(t, 111195, got, 200)
}

func TestItineraryPathDistance(t *testing.T) {
	it := models.Itinerary{
		Legs: []models.Leg{
			{
				From: models.Place{LngLat: models.LngLat{Lng: -4.0, Lat: 55.0}},
				To:   models.Place{LngLat: models.LngLat{Lng: -4.0, Lat: 55.5}},
			},
			{
				From: models.Place{LngLat: models.LngLat{Lng: -4.0, Lat: 55.5}},
				To:   models.Place{LngLat: models.LngLat{Lng: -4.0, Lat: 56.0}},
			},
		},
	}

	got := ItineraryPathDistance(it)
	assert.InDelta(t, 111195, got, 300)
}
