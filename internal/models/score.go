package models

// ComponentScores are the named scoring components, each in [0, 1] with
// higher being better.
type ComponentScores struct {
	DepartureTime float64 `json:"departureTime"`
	HikeDuration  float64 `json:"hikeDuration"`
	ReturnOptions float64 `json:"returnOptions"`
	TotalDuration float64 `json:"totalDuration"`
	FinishTime    float64 `json:"finishTime"`
}

// ItineraryScore is the outcome of scoring one feasible (outbound, return)
// pair. Percentile is attached after global normalization and lies in
// [0, 1].
type ItineraryScore struct {
	Raw        float64         `json:"raw"`
	Components ComponentScores `json:"components"`
	Percentile float64         `json:"percentile"`
}

// RankedOption is one display-ready (outbound, return) pairing with its
// score, as served to the presentation layer.
type RankedOption struct {
	Start    string         `json:"start"`
	Day      Day            `json:"day"`
	Outbound Itinerary      `json:"outbound"`
	Return   Itinerary      `json:"return"`
	Score    ItineraryScore `json:"score"`
	// TravelDistanceMeters is the door-to-door ground distance of the
	// round trip, summed over the leg geometries of both itineraries.
	TravelDistanceMeters float64 `json:"travelDistanceMeters"`
}
