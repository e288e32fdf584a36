// Package transitweek selects the base timetable week for itinerary
// analysis: every searched day is taken from one Monday-to-Sunday window
// that all GTFS services cover, so results are not skewed by services
// starting or ending mid-analysis.
package transitweek

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/OneBusAway/go-gtfs"

	"munroaccess.org/internal/models"
)

// ErrNoServices is returned when a feed defines no service calendars.
var ErrNoServices = errors.New("feed has no services")

// Parse decodes a GTFS static zip.
func Parse(data []byte) (*gtfs.Static, error) {
	feed, err := gtfs.ParseStatic(data, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse GTFS feed: %w", err)
	}
	return feed, nil
}

// Select returns the Monday of the first full Monday-to-Sunday week that
// lies inside every service's date range.
func Select(feed *gtfs.Static) (models.Date, error) {
	if len(feed.Services) == 0 {
		return models.Date{}, ErrNoServices
	}

	latestStart := feed.Services[0].StartDate
	earliestEnd := feed.Services[0].EndDate
	for _, service := range feed.Services[1:] {
		if service.StartDate.After(latestStart) {
			latestStart = service.StartDate
		}
		if service.EndDate.Before(earliestEnd) {
			earliestEnd = service.EndDate
		}
	}

	monday := nextMonday(latestStart)
	sunday := monday.AddDate(0, 0, 6)
	if sunday.After(earliestEnd) {
		return models.Date{}, fmt.Errorf(
			"no full week covered by all services: coverage %s to %s",
			latestStart.Format("2006-01-02"), earliestEnd.Format("2006-01-02"))
	}
	return models.DateOf(monday), nil
}

// nextMonday returns t if it is a Monday, otherwise the Monday after it.
func nextMonday(t time.Time) time.Time {
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}

// Write stores the week start as a single YYYY-MM-DD line.
func Write(path string, week models.Date) error {
	if err := os.WriteFile(path, []byte(week.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write transit week file: %w", err)
	}
	return nil
}

// Read loads a week start written by Write. The date must be a Monday.
func Read(path string) (models.Date, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Date{}, fmt.Errorf("failed to read transit week file: %w", err)
	}
	week, err := models.ParseDate(strings.TrimSpace(string(data)))
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid transit week file %q: %w", path, err)
	}
	if week.Weekday() != time.Monday {
		return models.Date{}, fmt.Errorf("transit week start %s is a %s, want Monday", week, week.Weekday())
	}
	return week, nil
}
