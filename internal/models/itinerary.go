package models

// Leg is one uninterrupted segment of travel by a single transport mode.
// StartTime and EndTime are wall-clock times on the itinerary's calendar
// date unless the itinerary is flagged overnight.
type Leg struct {
	From                     Place     `json:"from"`
	To                       Place     `json:"to"`
	InterlineWithPreviousLeg bool      `json:"interlineWithPreviousLeg"`
	StartTime                TimeOfDay `json:"startTime"`
	EndTime                  TimeOfDay `json:"endTime"`
	Mode                     Mode      `json:"mode"`
	AgencyName               string    `json:"agencyName,omitempty"`
	RouteName                string    `json:"routeName,omitempty"`
	// Geometry is the leg path as an encoded polyline, when the trip
	// planner supplied one.
	Geometry string `json:"geometry,omitempty"`
}

// Itinerary is a complete one-direction journey: an ordered sequence of
// legs on a calendar date. Itineraries are immutable once produced by
// acquisition; legs are in temporal order.
type Itinerary struct {
	Date Date  `json:"date"`
	Legs []Leg `json:"legs"`
}

// StartTime returns the departure time of the first leg.
func (it Itinerary) StartTime() TimeOfDay {
	if len(it.Legs) == 0 {
		return 0
	}
	return it.Legs[0].StartTime
}

// EndTime returns the arrival time of the last leg. When the journey
// crosses midnight this is numerically less than StartTime.
func (it Itinerary) EndTime() TimeOfDay {
	if len(it.Legs) == 0 {
		return 0
	}
	return it.Legs[len(it.Legs)-1].EndTime
}

// IsOvernight reports whether the itinerary crosses midnight.
func (it Itinerary) IsOvernight() bool {
	return it.EndTime() < it.StartTime()
}

// Modes returns the de-duplicated set of modes used, in leg order.
func (it Itinerary) Modes() []Mode {
	seen := make(map[Mode]bool, len(it.Legs))
	var modes []Mode
	for _, leg := range it.Legs {
		if !seen[leg.Mode] {
			seen[leg.Mode] = true
			modes = append(modes, leg.Mode)
		}
	}
	return modes
}

// HasMode reports whether any leg uses the given mode.
func (it Itinerary) HasMode(m Mode) bool {
	for _, leg := range it.Legs {
		if leg.Mode == m {
			return true
		}
	}
	return false
}

// TransitLegCount returns the number of scheduled public-transport legs.
func (it Itinerary) TransitLegCount() int {
	n := 0
	for _, leg := range it.Legs {
		if leg.Mode.IsTransit() {
			n++
		}
	}
	return n
}

// DateKey returns the itinerary date as a sortable integer.
func (it Itinerary) DateKey() int {
	return it.Date.Key()
}

// DayItineraries holds the outbound and return candidates found for one
// search day.
type DayItineraries struct {
	Outbounds []Itinerary `json:"outbounds"`
	Returns   []Itinerary `json:"returns"`
}
