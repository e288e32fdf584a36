package models

import (
	"encoding/json"
	"fmt"
)

// LngLat is a WGS84 coordinate. It serializes as a two-element
// [longitude, latitude] array, matching GeoJSON ordering.
type LngLat struct {
	Lng float64
	Lat float64
}

func (c LngLat) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lng, c.Lat})
}

func (c *LngLat) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return err
	}
	if len(coords) != 2 {
		return fmt.Errorf("expected [lng, lat] pair, got %d elements", len(coords))
	}
	c.Lng = coords[0]
	c.Lat = coords[1]
	return nil
}

// Place is a named point produced by the trip planner.
type Place struct {
	Name   string `json:"name"`
	LngLat LngLat `json:"lngLat"`
}

// Start is a starting city for journeys to trailheads. Radius is the
// walking distance in meters around the center within which the hiker is
// assumed to handle travel without a timetable.
type Start struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	LngLat LngLat `json:"lngLat"`
	Radius int    `json:"radius"`
}

// Target is a trailhead giving access to one or more hiking routes.
type Target struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Routes      []Route `json:"routes"`
	LngLat      LngLat  `json:"lngLat"`
}
