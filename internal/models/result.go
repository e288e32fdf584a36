package models

import (
	"fmt"
	"time"
)

// Day names a day of the week in the analyzer's result format.
type Day string

const (
	DayMonday    Day = "MONDAY"
	DayTuesday   Day = "TUESDAY"
	DayWednesday Day = "WEDNESDAY"
	DayThursday  Day = "THURSDAY"
	DayFriday    Day = "FRIDAY"
	DaySaturday  Day = "SATURDAY"
	DaySunday    Day = "SUNDAY"
)

// SearchDays are the days of the week candidate journeys are searched on.
var SearchDays = []Day{DayWednesday, DayFriday, DaySaturday, DaySunday}

// HeadlineDayPriority orders days for the compact per-target display,
// weekends first.
var HeadlineDayPriority = []Day{DaySaturday, DaySunday, DayWednesday, DayFriday}

// DayFromWeekday converts a time.Weekday to a Day.
func DayFromWeekday(w time.Weekday) Day {
	switch w {
	case time.Monday:
		return DayMonday
	case time.Tuesday:
		return DayTuesday
	case time.Wednesday:
		return DayWednesday
	case time.Thursday:
		return DayThursday
	case time.Friday:
		return DayFriday
	case time.Saturday:
		return DaySaturday
	default:
		return DaySunday
	}
}

// Weekday converts d back to a time.Weekday.
func (d Day) Weekday() (time.Weekday, error) {
	switch d {
	case DayMonday:
		return time.Monday, nil
	case DayTuesday:
		return time.Tuesday, nil
	case DayWednesday:
		return time.Wednesday, nil
	case DayThursday:
		return time.Thursday, nil
	case DayFriday:
		return time.Friday, nil
	case DaySaturday:
		return time.Saturday, nil
	case DaySunday:
		return time.Sunday, nil
	}
	return 0, fmt.Errorf("unknown day %q", string(d))
}

// Result holds every candidate itinerary found for one start and target
// across all search days.
type Result struct {
	Start       string                 `json:"start"`
	Target      string                 `json:"target"`
	Itineraries map[Day]DayItineraries `json:"itineraries"`
}

// ID returns the (start, target) identity of the result.
func (r Result) ID() ResultID {
	return ResultID{Start: r.Start, Target: r.Target}
}

// ResultID identifies one analyzed (start, target) unit.
type ResultID struct {
	Start  string `json:"start"`
	Target string `json:"target"`
}

func (id ResultID) String() string {
	return id.Start + "->" + id.Target
}
