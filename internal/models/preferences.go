package models

// Weights control the relative influence of each scoring component.
// They are normalized by their own sum, so they need not add up to 1.
type Weights struct {
	DepartureTime float64 `json:"departureTime"`
	HikeDuration  float64 `json:"hikeDuration"`
	ReturnOptions float64 `json:"returnOptions"`
	TotalDuration float64 `json:"totalDuration"`
	FinishTime    float64 `json:"finishTime"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.DepartureTime + w.HikeDuration + w.ReturnOptions + w.TotalDuration + w.FinishTime
}

// RankingPreferences configures one scoring run. The scoring engine never
// mutates it. Times are fractional hours from midnight; walkingSpeed is a
// multiplier over the route's standard pace.
type RankingPreferences struct {
	EarliestDeparture  float64 `json:"earliestDeparture"`
	WalkingSpeed       float64 `json:"walkingSpeed"`
	ReturnBuffer       float64 `json:"returnBuffer"`
	PreferredLatestEnd float64 `json:"preferredLatestEnd"`
	HardLatestEnd      float64 `json:"hardLatestEnd"`
	AllowCycling       bool    `json:"allowCycling"`
	OvernightPenalty   float64 `json:"overnightPenalty"`
	Weights            Weights `json:"weights"`
}

// DefaultPreferences returns the preference set used for the precomputed
// ranking snapshot.
func DefaultPreferences() RankingPreferences {
	return RankingPreferences{
		EarliestDeparture:  6.0,
		WalkingSpeed:       1.0,
		ReturnBuffer:       0.5,
		PreferredLatestEnd: 18.0,
		HardLatestEnd:      22.0,
		AllowCycling:       true,
		OvernightPenalty:   0.2,
		Weights: Weights{
			DepartureTime: 1,
			HikeDuration:  2,
			ReturnOptions: 1,
			TotalDuration: 1,
			FinishTime:    1,
		},
	}
}

// IsDefault reports whether p equals the default preference set. The
// precomputed snapshot is only valid for default preferences.
func (p RankingPreferences) IsDefault() bool {
	return p == DefaultPreferences()
}
