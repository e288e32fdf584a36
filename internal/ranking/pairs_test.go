package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munroaccess.org/internal/models"
)

func TestSelectPairsRedundancyBoost(t *testing.T) {
	prefs := models.DefaultPreferences()
	route := sixHourRoute()
	outbounds := []models.Itinerary{journey(testDate, models.ModeRail, 8, 10)}

	// Three returns within two hours of each other, all after the
	// buffer-adjusted hike end of 16:30. Each has two alternatives, so
	// every feasible pair gets the full returnOptions score.
	returns := []models.Itinerary{
		journey(testDate, models.ModeRail, 17, 19),
		journey(testDate, models.ModeBus, 17.5, 19.5),
		journey(testDate, models.ModeRail, 18, 20),
	}

	pairs, rejections := SelectPairs(outbounds, returns, route, prefs)
	require.Len(t, pairs, 3)
	assert.Empty(t, rejections)
	for _, p := range pairs {
		assert.InDelta(t, 1.0, p.Score.Components.ReturnOptions, 1e-9)
	}
}

func TestSelectPairsNoBoostWithoutAlternatives(t *testing.T) {
	prefs := models.DefaultPreferences()
	route := sixHourRoute()
	outbounds := []models.Itinerary{journey(testDate, models.ModeRail, 8, 10)}

	// The second return departs 3.5h after the first, outside the
	// redundancy window, so neither pair has more than one fallback.
	returns := []models.Itinerary{
		journey(testDate, models.ModeRail, 17, 19),
		journey(testDate, models.ModeRail, 20.5, 22.5),
	}

	pairs, _ := SelectPairs(outbounds, returns, route, prefs)
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		assert.InDelta(t, baselineReturnOptions, p.Score.Components.ReturnOptions, 1e-9)
	}
}

func TestSelectPairsAlternativeMustFollowHikeEnd(t *testing.T) {
	prefs := models.DefaultPreferences()
	route := sixHourRoute()
	outbounds := []models.Itinerary{journey(testDate, models.ModeRail, 8, 10)}

	// The 16:15 return is infeasible on its own and departs before the
	// buffer-adjusted hike end, so it cannot serve as a fallback for the
	// 17:00 return either.
	returns := []models.Itinerary{
		journey(testDate, models.ModeRail, 16.25, 18),
		journey(testDate, models.ModeRail, 17, 19),
	}

	pairs, rejections := SelectPairs(outbounds, returns, route, prefs)
	require.Len(t, pairs, 1)
	assert.InDelta(t, baselineReturnOptions, pairs[0].Score.Components.ReturnOptions, 1e-9)

	require.Len(t, rejections, 1)
	assert.Equal(t, 0, rejections[0].ReturnIndex)
	assert.Equal(t, RejectInsufficientBuffer, rejections[0].Reason)
}

func TestSelectPairsSortedByRawDescending(t *testing.T) {
	prefs := models.DefaultPreferences()
	route := sixHourRoute()

	// A late, slow outbound scores worse than the early one.
	outbounds := []models.Itinerary{
		journey(testDate, models.ModeBus, 10, 14),
		journey(testDate, models.ModeRail, 8, 10),
	}
	returns := []models.Itinerary{journey(testDate, models.ModeRail, 21, 23)}

	pairs, _ := SelectPairs(outbounds, returns, route, prefs)
	require.Len(t, pairs, 2)
	for i := 1; i < len(pairs); i++ {
		assert.GreaterOrEqual(t, pairs[i-1].Score.Raw, pairs[i].Score.Raw)
	}
	assert.Equal(t, 1, pairs[0].OutboundIndex)
}

func TestSelectPairsStableOnTies(t *testing.T) {
	prefs := models.DefaultPreferences()
	route := sixHourRoute()

	// Two identical outbounds produce identical scores; input order must
	// be preserved.
	outbounds := []models.Itinerary{
		journey(testDate, models.ModeRail, 8, 10),
		journey(testDate, models.ModeRail, 8, 10),
	}
	returns := []models.Itinerary{journey(testDate, models.ModeRail, 17, 19)}

	pairs, _ := SelectPairs(outbounds, returns, route, prefs)
	require.Len(t, pairs, 2)
	assert.Equal(t, 0, pairs[0].OutboundIndex)
	assert.Equal(t, 1, pairs[1].OutboundIndex)
}

func TestSelectPairsEmptyReturns(t *testing.T) {
	prefs := models.DefaultPreferences()
	outbounds := []models.Itinerary{journey(testDate, models.ModeRail, 8, 10)}

	pairs, rejections := SelectPairs(outbounds, nil, sixHourRoute(), prefs)
	assert.Empty(t, pairs)
	require.Len(t, rejections, 1)
	assert.Equal(t, -1, rejections[0].ReturnIndex)
	assert.Equal(t, RejectNoReturn, rejections[0].Reason)
}
