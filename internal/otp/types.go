package otp

import (
	"time"

	"munroaccess.org/internal/models"
)

// RequestMode is a mode constraint on a trip-plan request.
type RequestMode string

const (
	RequestModeTransit RequestMode = "TRANSIT"
	RequestModeWalk    RequestMode = "WALK"
	RequestModeBicycle RequestMode = "BICYCLE"
)

// SearchDirection anchors the search window to a departure or an arrival.
type SearchDirection string

const (
	DepartAt SearchDirection = "DEPART_AT"
	ArriveBy SearchDirection = "ARRIVE_BY"
)

// Coordinate is a named point in a trip-plan request.
type Coordinate struct {
	Name string
	Lat  float64
	Lng  float64
}

// PlanRequest describes one trip-plan query. PageCursor, when set,
// requests the next page of an earlier search.
type PlanRequest struct {
	From           Coordinate
	To             Coordinate
	Modes          []RequestMode
	Direction      SearchDirection
	DateTime       time.Time
	SearchWindow   time.Duration
	WalkReluctance float64
	OptimizeQuick  bool
	NumItineraries int
	PageCursor     string
}

// PlanResponse is one page of trip-plan results. NextPageCursor is empty
// when the search is exhausted.
type PlanResponse struct {
	Itineraries    []models.Itinerary
	NextPageCursor string
}

// Wire format for the trip planner's GraphQL API.

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type planEnvelope struct {
	Data struct {
		Plan planPayload `json:"plan"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type planPayload struct {
	NextPageCursor string          `json:"nextPageCursor"`
	Itineraries    []wireItinerary `json:"itineraries"`
}

type wireItinerary struct {
	Legs []wireLeg `json:"legs"`
}

type wireLeg struct {
	Mode                     string    `json:"mode"`
	StartTime                int64     `json:"startTime"`
	EndTime                  int64     `json:"endTime"`
	InterlineWithPreviousLeg bool      `json:"interlineWithPreviousLeg"`
	From                     wirePlace `json:"from"`
	To                       wirePlace `json:"to"`
	Route                    *struct {
		ShortName string `json:"shortName"`
	} `json:"route"`
	Agency *struct {
		Name string `json:"name"`
	} `json:"agency"`
	LegGeometry *struct {
		Points string `json:"points"`
	} `json:"legGeometry"`
}

type wirePlace struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
