package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLeg(mode Mode, start, end float64) Leg {
	return Leg{
		From:      Place{Name: "A"},
		To:        Place{Name: "B"},
		StartTime: TimeOfDay(start),
		EndTime:   TimeOfDay(end),
		Mode:      mode,
	}
}

func TestItineraryStartAndEndTimes(t *testing.T) {
	it := Itinerary{
		Date: NewDate(2025, time.June, 7),
		Legs: []Leg{
			makeLeg(ModeWalk, 8.0, 8.25),
			makeLeg(ModeRail, 8.5, 10.0),
		},
	}

	assert.InDelta(t, 8.0, it.StartTime().Hours(), 1e-9)
	assert.InDelta(t, 10.0, it.EndTime().Hours(), 1e-9)
	assert.False(t, it.IsOvernight())
}

func TestItineraryOvernight(t *testing.T) {
	it := Itinerary{
		Date: NewDate(2025, time.June, 7),
		Legs: []Leg{
			makeLeg(ModeRail, 23.0, 0.5),
		},
	}

	assert.True(t, it.IsOvernight())
}

func TestItineraryModesDeduplicated(t *testing.T) {
	it := Itinerary{
		Legs: []Leg{
			makeLeg(ModeWalk, 8.0, 8.25),
			makeLeg(ModeBus, 8.25, 9.0),
			makeLeg(ModeWalk, 9.0, 9.1),
			makeLeg(ModeRail, 9.25, 10.5),
		},
	}

	assert.Equal(t, []Mode{ModeWalk, ModeBus, ModeRail}, it.Modes())
	assert.True(t, it.HasMode(ModeBus))
	assert.False(t, it.HasMode(ModeBicycle))
}

func TestItineraryTransitLegCount(t *testing.T) {
	tests := []struct {
		name     string
		legs     []Leg
		expected int
	}{
		{
			name:     "pure walk",
			legs:     []Leg{makeLeg(ModeWalk, 8, 9)},
			expected: 0,
		},
		{
			name:     "walk and cycle only",
			legs:     []Leg{makeLeg(ModeWalk, 8, 8.5), makeLeg(ModeBicycle, 8.5, 9.5)},
			expected: 0,
		},
		{
			name: "mixed",
			legs: []Leg{
				makeLeg(ModeWalk, 8, 8.5),
				makeLeg(ModeBus, 8.5, 9),
				makeLeg(ModeFerry, 9, 10),
			},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Itinerary{Legs: tt.legs}
			assert.Equal(t, tt.expected, it.TransitLegCount())
		})
	}
}

func TestItineraryJSONRoundTrip(t *testing.T) {
	it := Itinerary{
		Date: NewDate(2025, time.June, 7),
		Legs: []Leg{
			{
				From:      Place{Name: "Glasgow Queen Street", LngLat: LngLat{Lng: -4.2512, Lat: 55.8623}},
				To:        Place{Name: "Crianlarich", LngLat: LngLat{Lng: -4.6187, Lat: 56.3905}},
				StartTime: TimeOfDay(8.35),
				EndTime:   TimeOfDay(10.2),
				Mode:      ModeRail,
				RouteName: "West Highland Line",
			},
		},
	}

	data, err := json.Marshal(it)
	require.NoError(t, err)

	var decoded Itinerary
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, it.Date, decoded.Date)
	require.Len(t, decoded.Legs, 1)
	assert.Equal(t, it.Legs[0].Mode, decoded.Legs[0].Mode)
	assert.InDelta(t, it.Legs[0].From.LngLat.Lng, decoded.Legs[0].From.LngLat.Lng, 1e-9)
	assert.InDelta(t, it.Legs[0].From.LngLat.Lat, decoded.Legs[0].From.LngLat.Lat, 1e-9)
}

func TestLngLatJSONOrder(t *testing.T) {
	c := LngLat{Lng: -4.25, Lat: 55.86}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `[-4.25,55.86]`, string(data))
}

func TestDefaultPreferencesIsDefault(t *testing.T) {
	prefs := DefaultPreferences()
	assert.True(t, prefs.IsDefault())

	prefs.ReturnBuffer = 1.0
	assert.False(t, prefs.IsDefault())
}

func TestWeightsSum(t *testing.T) {
	w := Weights{DepartureTime: 1, HikeDuration: 2, ReturnOptions: 1, TotalDuration: 1, FinishTime: 1}
	assert.InDelta(t, 6.0, w.Sum(), 1e-9)
}
