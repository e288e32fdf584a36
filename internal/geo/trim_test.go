package geo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munroaccess.org/internal/models"
)

var anchor = models.LngLat{Lng: -4.2512, Lat: 55.8623}

// pointAt returns a point approximately meters north of the anchor.
func pointAt(meters float64) models.LngLat {
	const metersPerDegreeLat = 111194.9
	return models.LngLat{Lng: anchor.Lng, Lat: anchor.Lat + meters/metersPerDegreeLat}
}

func legBetween(from, to models.LngLat, mode models.Mode) models.Leg {
	return models.Leg{
		From: models.Place{LngLat: from},
		To:   models.Place{LngLat: to},
		Mode: mode,
	}
}

func TestTrimFromStart(t *testing.T) {
	// Leg arrival points at 50m, 90m and 400m from the anchor: the first
	// two are inside a 100m radius and must go, the third stays.
	it := models.Itinerary{
		Date: models.NewDate(2025, time.June, 7),
		Legs: []models.Leg{
			legBetween(anchor, pointAt(50), models.ModeWalk),
			legBetween(pointAt(50), pointAt(90), models.ModeBus),
			legBetween(pointAt(90), pointAt(400), models.ModeRail),
		},
	}

	trimmed := TrimFromStart(it, anchor, 100)

	require.Len(t, trimmed.Legs, 1)
	assert.Equal(t, models.ModeRail, trimmed.Legs[0].Mode)
	assert.Equal(t, it.Date, trimmed.Date)
}

func TestTrimFromStartStopsAtFirstOutsideLeg(t *testing.T) {
	// Once a leg ends outside the radius, later legs are kept even if they
	// dip back inside.
	it := models.Itinerary{
		Legs: []models.Leg{
			legBetween(anchor, pointAt(50), models.ModeWalk),
			legBetween(pointAt(50), pointAt(400), models.ModeBus),
			legBetween(pointAt(400), pointAt(80), models.ModeWalk),
		},
	}

	trimmed := TrimFromStart(it, anchor, 100)

	require.Len(t, trimmed.Legs, 2)
	assert.Equal(t, models.ModeBus, trimmed.Legs[0].Mode)
	assert.Equal(t, models.ModeWalk, trimmed.Legs[1].Mode)
}

func TestTrimFromStartNoLegsInsideRadius(t *testing.T) {
	it := models.Itinerary{
		Legs: []models.Leg{
			legBetween(pointAt(500), pointAt(900), models.ModeBus),
		},
	}

	trimmed := TrimFromStart(it, anchor, 100)
	assert.Len(t, trimmed.Legs, 1)
}

func TestTrimToEnd(t *testing.T) {
	// Return journey: legs departing at 400m, 90m and 50m from the home
	// anchor. The suffix inside the 100m radius is removed.
	it := models.Itinerary{
		Date: models.NewDate(2025, time.June, 7),
		Legs: []models.Leg{
			legBetween(pointAt(400), pointAt(90), models.ModeRail),
			legBetween(pointAt(90), pointAt(50), models.ModeBus),
			legBetween(pointAt(50), anchor, models.ModeWalk),
		},
	}

	trimmed, err := TrimToEnd(it, anchor, 100)
	require.NoError(t, err)

	require.Len(t, trimmed.Legs, 1)
	assert.Equal(t, models.ModeRail, trimmed.Legs[0].Mode)
}

func TestTrimToEndAllLegsInsideRadiusIsError(t *testing.T) {
	it := models.Itinerary{
		Date: models.NewDate(2025, time.June, 7),
		Legs: []models.Leg{
			legBetween(pointAt(50), pointAt(20), models.ModeBus),
			legBetween(pointAt(20), anchor, models.ModeWalk),
		},
	}

	_, err := TrimToEnd(it, anchor, 100)
	assert.Error(t, err)
}

func TestTrimContainment(t *testing.T) {
	// After trimming, no remaining leg's relevant endpoint is inside the
	// radius boundary that caused removal to stop.
	it := models.Itinerary{
		Legs: []models.Leg{
			legBetween(anchor, pointAt(50), models.ModeWalk),
			legBetween(pointAt(50), pointAt(90), models.ModeBus),
			legBetween(pointAt(90), pointAt(400), models.ModeRail),
			legBetween(pointAt(400), pointAt(1200), models.ModeRail),
		},
	}

	trimmed := TrimFromStart(it, anchor, 100)

	require.NotEmpty(t, trimmed.Legs)
	first := trimmed.Legs[0]
	dist := Distance(anchor.Lat, anchor.Lng, first.To.LngLat.Lat, first.To.LngLat.Lng)
	assert.GreaterOrEqual(t, dist, 100.0)
}
