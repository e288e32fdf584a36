package models

// Route is one hike reachable from a target. Time holds the estimated
// [min, max] duration range in hours at a standard walking speed.
type Route struct {
	Name       string     `json:"name"`
	Page       string     `json:"page,omitempty"`
	DistanceKM float64    `json:"distance"`
	AscentM    float64    `json:"ascent"`
	Time       [2]float64 `json:"time"`
	Munros     []int      `json:"munros"`
}

// MinHours returns the lower bound of the estimated hike duration.
func (r Route) MinHours() float64 {
	return r.Time[0]
}

// MaxHours returns the upper bound of the estimated hike duration.
func (r Route) MaxHours() float64 {
	return r.Time[1]
}

// Munro is one summit from the munro index, keyed by its running number.
type Munro struct {
	Number  int     `json:"number"`
	Name    string  `json:"name"`
	HeightM float64 `json:"height"`
}
