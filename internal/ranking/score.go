// Package ranking turns raw itinerary candidates into scored, normalized,
// display-ready options: per-pair feasibility gates and component scoring,
// cross-product pair selection, global percentile normalization and
// diverse-subset selection.
package ranking

import (
	"munroaccess.org/internal/models"
)

// RejectReason explains why an (outbound, return) pair is infeasible. A
// pair failing several gates always reports the first gate in order.
type RejectReason string

const (
	RejectDepartureTooEarly  RejectReason = "departure too early"
	RejectCyclingNotAllowed  RejectReason = "cycling not allowed"
	RejectArrivalTooEarly    RejectReason = "arrival too early"
	RejectFinishesTooLate    RejectReason = "hike would finish too late"
	RejectNoReturn           RejectReason = "no return journey"
	RejectBikeMismatch       RejectReason = "return cycles but outbound took no bicycle"
	RejectInsufficientBuffer RejectReason = "insufficient buffer before return"
)

// Outcome is the tagged result of scoring one pair: either a score or a
// rejection reason, never both.
type Outcome struct {
	Score  models.ItineraryScore
	Reason RejectReason
}

// Feasible reports whether the pair passed every hard gate.
func (o Outcome) Feasible() bool {
	return o.Reason == ""
}

func rejected(reason RejectReason) Outcome {
	return Outcome{Reason: reason}
}

// baselineReturnOptions is the returnOptions component for a pair
// evaluated in isolation; pair selection raises it to 1.0 when redundant
// nearby returns exist.
const baselineReturnOptions = 0.5

// Score evaluates one (outbound, return) pair against the preferences.
// ret may be nil when no return journey exists. The gates run in a fixed
// order so a pair failing several always reports the same reason.
func Score(outbound models.Itinerary, ret *models.Itinerary, route models.Route, prefs models.RankingPreferences) Outcome {
	return scoreWithReturnOptions(outbound, ret, route, prefs, baselineReturnOptions)
}

func scoreWithReturnOptions(outbound models.Itinerary, ret *models.Itinerary, route models.Route, prefs models.RankingPreferences, returnOptions float64) Outcome {
	depart := outbound.StartTime().Hours()
	if depart < prefs.EarliestDeparture {
		return rejected(RejectDepartureTooEarly)
	}

	if !prefs.AllowCycling {
		if outbound.HasMode(models.ModeBicycle) || (ret != nil && ret.HasMode(models.ModeBicycle)) {
			return rejected(RejectCyclingNotAllowed)
		}
	}

	// An outbound that ran past midnight arrives at an unreasonable hour.
	arriveClock := outbound.EndTime().Hours()
	if arriveClock < prefs.EarliestDeparture {
		return rejected(RejectArrivalTooEarly)
	}

	hikeEnd := hikeEndHours(outbound, route, prefs)
	if hikeEnd > prefs.HardLatestEnd {
		return rejected(RejectFinishesTooLate)
	}

	if ret == nil {
		return rejected(RejectNoReturn)
	}

	// You cannot retrieve a bike you never took out.
	if ret.HasMode(models.ModeBicycle) && !outbound.HasMode(models.ModeBicycle) {
		return rejected(RejectBikeMismatch)
	}

	returnDepart := returnDepartureHours(outbound, *ret)
	if returnDepart-hikeEnd < prefs.ReturnBuffer {
		return rejected(RejectInsufficientBuffer)
	}

	arrive := arrivalHours(outbound)
	dayOffset := outbound.Date.DaysUntil(ret.Date)

	retEnd := ret.EndTime().Hours()
	if ret.IsOvernight() {
		retEnd += 24
	}
	totalTripHours := retEnd + 24*float64(dayOffset) - depart

	components := models.ComponentScores{
		DepartureTime: departureTimeScore(depart, prefs.EarliestDeparture),
		HikeDuration:  hikeDurationScore(arrive, returnDepart, route, prefs),
		ReturnOptions: returnOptions,
		TotalDuration: totalDurationScore(totalTripHours),
		FinishTime:    finishTimeScore(hikeEnd, prefs),
	}

	raw := weightedMean(components, prefs.Weights)
	if dayOffset != 0 {
		raw *= 1 - prefs.OvernightPenalty
	}

	return Outcome{Score: models.ItineraryScore{Raw: raw, Components: components}}
}

// arrivalHours is the outbound arrival in fractional hours from midnight
// on the outbound date, adjusted past 24 when the journey crosses
// midnight.
func arrivalHours(outbound models.Itinerary) float64 {
	arrive := outbound.EndTime().Hours()
	if outbound.IsOvernight() {
		arrive += 24
	}
	return arrive
}

// hikeEndHours projects when the hike finishes, in the outbound date's
// frame of reference.
func hikeEndHours(outbound models.Itinerary, route models.Route, prefs models.RankingPreferences) float64 {
	return arrivalHours(outbound) + route.MaxHours()/prefs.WalkingSpeed
}

// returnDepartureHours is the return departure in the outbound date's
// frame, accounting for the calendar-day offset between the two
// itineraries.
func returnDepartureHours(outbound, ret models.Itinerary) float64 {
	dayOffset := outbound.Date.DaysUntil(ret.Date)
	return ret.StartTime().Hours() + 24*float64(dayOffset)
}

// departureTimeScore is 1.0 at or after 08:00, ramps 0.9 to 1.0 between
// 07:00 and 08:00, and ramps 0 to 0.9 between the earliest allowed
// departure and 07:00.
func departureTimeScore(depart, earliest float64) float64 {
	switch {
	case depart >= 8:
		return 1
	case depart >= 7:
		return 0.9 + 0.1*(depart-7)
	default:
		span := 7 - earliest
		if span <= 0 {
			return 0.9
		}
		return clamp01(0.9 * (depart - earliest) / span)
	}
}

// hikeDurationScore is the ratio of available hike time to an ideal hike
// time, 20% longer than the route's upper estimate.
func hikeDurationScore(arrive, returnDepart float64, route models.Route, prefs models.RankingPreferences) float64 {
	available := returnDepart - prefs.ReturnBuffer - arrive
	ideal := route.MaxHours() * 1.2 / prefs.WalkingSpeed
	if ideal <= 0 {
		return 1
	}
	return clamp01(available / ideal)
}

// totalDurationScore penalizes door-to-door spans beyond 10 hours,
// reaching zero at 20 hours.
func totalDurationScore(totalTripHours float64) float64 {
	return clamp01(1 - (totalTripHours-10)/10)
}

// finishTimeScore is 1.0 when the hike ends by the preferred latest end,
// decaying linearly to zero at the hard latest end.
func finishTimeScore(hikeEnd float64, prefs models.RankingPreferences) float64 {
	if hikeEnd <= prefs.PreferredLatestEnd {
		return 1
	}
	span := prefs.HardLatestEnd - prefs.PreferredLatestEnd
	if span <= 0 {
		return 0
	}
	return clamp01((prefs.HardLatestEnd - hikeEnd) / span)
}

func weightedMean(c models.ComponentScores, w models.Weights) float64 {
	sum := w.Sum()
	if sum <= 0 {
		return 0
	}
	total := c.DepartureTime*w.DepartureTime +
		c.HikeDuration*w.HikeDuration +
		c.ReturnOptions*w.ReturnOptions +
		c.TotalDuration*w.TotalDuration +
		c.FinishTime*w.FinishTime
	return total / sum
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
