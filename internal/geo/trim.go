package geo

import (
	"fmt"

	"munroaccess.org/internal/models"
)

// TrimFromStart returns a copy of it with the contiguous prefix of legs
// whose arrival point lies within radiusMeters of anchor removed. Removal
// stops at the first leg whose arrival falls outside the radius. Legs
// inside the starting radius are local travel the hiker handles without a
// timetable.
func TrimFromStart(it models.Itinerary, anchor models.LngLat, radiusMeters float64) models.Itinerary {
	legs := make([]models.Leg, 0, len(it.Legs))
	started := false
	for _, leg := range it.Legs {
		if !started {
			dist := Distance(anchor.Lat, anchor.Lng, leg.To.LngLat.Lat, leg.To.LngLat.Lng)
			if dist < radiusMeters {
				continue
			}
			started = true
		}
		legs = append(legs, leg)
	}
	return models.Itinerary{Date: it.Date, Legs: legs}
}

// TrimToEnd returns a copy of it with the contiguous suffix of legs whose
// departure point lies within radiusMeters of anchor removed. A return
// journey that is trimmed to zero legs was entirely inside the home radius;
// that is an ill-formed input for ranking, so it is an error rather than an
// empty itinerary.
func TrimToEnd(it models.Itinerary, anchor models.LngLat, radiusMeters float64) (models.Itinerary, error) {
	legs := make([]models.Leg, 0, len(it.Legs))
	for _, leg := range it.Legs {
		dist := Distance(anchor.Lat, anchor.Lng, leg.From.LngLat.Lat, leg.From.LngLat.Lng)
		if dist < radiusMeters {
			break
		}
		legs = append(legs, leg)
	}

	if len(legs) == 0 {
		return models.Itinerary{}, fmt.Errorf("trimming itinerary on %s to ending radius %0.fm left no legs", it.Date, radiusMeters)
	}

	return models.Itinerary{Date: it.Date, Legs: legs}, nil
}
