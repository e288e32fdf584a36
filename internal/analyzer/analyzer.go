// Package analyzer discovers public-transport itineraries between starting
// cities and hiking trailheads by querying an OpenTripPlanner instance,
// one search day at a time over a fixed timetable week.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"munroaccess.org/internal/geo"
	"munroaccess.org/internal/models"
	"munroaccess.org/internal/otp"
)

const (
	searchWindow          = 24 * time.Hour
	walkReluctance        = 1.1
	numItinerariesPerPage = 5
)

// Planner plans trips. *otp.Client satisfies it; tests substitute fakes.
type Planner interface {
	Plan(ctx context.Context, req otp.PlanRequest) (otp.PlanResponse, error)
}

// Analyzer finds outbound and return itineraries for (start, target) pairs
// on each configured search day of the base week.
type Analyzer struct {
	planner  Planner
	baseWeek models.Date
	tz       *time.Location
	logger   *slog.Logger
	verbose  bool
}

// New creates an Analyzer. baseWeek must be the Monday of the timetable
// week the searches are anchored to.
func New(planner Planner, baseWeek models.Date, tz *time.Location, logger *slog.Logger, verbose bool) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		planner:  planner,
		baseWeek: baseWeek,
		tz:       tz,
		logger:   logger.With(slog.String("component", "analyzer")),
		verbose:  verbose,
	}
}

// Analyze finds all itineraries between one start and one target for each
// search day. Any planner or trim failure aborts the whole unit: a partial
// result would silently hide feasible options downstream.
func (a *Analyzer) Analyze(ctx context.Context, start models.Start, target models.Target) (models.Result, error) {
	itineraries := make(map[models.Day]models.DayItineraries, len(models.SearchDays))

	for _, day := range models.SearchDays {
		weekday, err := day.Weekday()
		if err != nil {
			return models.Result{}, err
		}
		date := a.nextOccurrence(weekday)

		var outbounds, returns []models.Itinerary
		for _, withCycle := range []bool{false, true} {
			found, err := a.findOutbounds(ctx, start, target, date, withCycle)
			if err != nil {
				return models.Result{}, fmt.Errorf("outbound search %s to %s on %s: %w", start.ID, target.ID, date, err)
			}
			outbounds = append(outbounds, found...)
		}
		for _, withCycle := range []bool{false, true} {
			found, err := a.findReturns(ctx, start, target, date, withCycle)
			if err != nil {
				return models.Result{}, fmt.Errorf("return search %s to %s on %s: %w", target.ID, start.ID, date, err)
			}
			returns = append(returns, found...)
		}

		itineraries[day] = models.DayItineraries{
			Outbounds: sortByDeparture(dedupe(outbounds)),
			Returns:   sortByDeparture(dedupe(returns)),
		}
	}

	result := models.Result{Start: start.ID, Target: target.ID, Itineraries: itineraries}
	if a.verbose {
		a.logger.Debug("analyzed", slog.String("result", spew.Sdump(result)))
	}
	return result, nil
}

// nextOccurrence returns the first date strictly after the base Monday
// that falls on the given weekday.
func (a *Analyzer) nextOccurrence(weekday time.Weekday) models.Date {
	offset := (int(weekday) - int(a.baseWeek.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return a.baseWeek.AddDays(offset)
}

func (a *Analyzer) findOutbounds(ctx context.Context, start models.Start, target models.Target, date models.Date, withCycle bool) ([]models.Itinerary, error) {
	found, err := a.search(ctx, coordinate(start.Name, start.LngLat), coordinate(target.Name, target.LngLat), date, withCycle)
	if err != nil {
		return nil, err
	}

	trimmed := make([]models.Itinerary, 0, len(found))
	for _, it := range found {
		trimmed = append(trimmed, geo.TrimFromStart(it, start.LngLat, float64(start.Radius)))
	}
	return trimmed, nil
}

func (a *Analyzer) findReturns(ctx context.Context, start models.Start, target models.Target, date models.Date, withCycle bool) ([]models.Itinerary, error) {
	found, err := a.search(ctx, coordinate(target.Name, target.LngLat), coordinate(start.Name, start.LngLat), date, withCycle)
	if err != nil {
		return nil, err
	}

	trimmed := make([]models.Itinerary, 0, len(found))
	for _, it := range found {
		cut, err := geo.TrimToEnd(it, start.LngLat, float64(start.Radius))
		if err != nil {
			return nil, err
		}
		trimmed = append(trimmed, cut)
	}
	return trimmed, nil
}

// search runs one paginated trip-plan query and applies the transit and
// cycling filters.
func (a *Analyzer) search(ctx context.Context, from, to otp.Coordinate, date models.Date, withCycle bool) ([]models.Itinerary, error) {
	modes := []otp.RequestMode{otp.RequestModeTransit, otp.RequestModeWalk}
	if withCycle {
		modes = append(modes, otp.RequestModeBicycle)
	}

	req := otp.PlanRequest{
		From:           from,
		To:             to,
		Modes:          modes,
		Direction:      otp.DepartAt,
		DateTime:       date.Time(a.tz),
		SearchWindow:   searchWindow,
		WalkReluctance: walkReluctance,
		OptimizeQuick:  true,
		NumItineraries: numItinerariesPerPage,
	}

	var itineraries []models.Itinerary
	for {
		page, err := a.planner.Plan(ctx, req)
		if err != nil {
			return nil, err
		}

		for _, it := range page.Itineraries {
			if it.TransitLegCount() == 0 {
				continue // walk-only or bike-only, nothing timetabled
			}
			if withCycle && !it.HasMode(models.ModeBicycle) {
				continue // cycling pass must contribute cycling itineraries only
			}
			itineraries = append(itineraries, it)
		}

		if page.NextPageCursor == "" {
			return itineraries, nil
		}
		req.PageCursor = page.NextPageCursor
	}
}

func coordinate(name string, at models.LngLat) otp.Coordinate {
	return otp.Coordinate{Name: name, Lat: at.Lat, Lng: at.Lng}
}

// dedupe drops itineraries identical in date, leg times and modes. The
// cycling pass repeats the plain search, so overlap is common.
func dedupe(itineraries []models.Itinerary) []models.Itinerary {
	seen := make(map[string]bool, len(itineraries))
	unique := make([]models.Itinerary, 0, len(itineraries))
	for _, it := range itineraries {
		key := itineraryKey(it)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, it)
	}
	return unique
}

func itineraryKey(it models.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", it.DateKey())
	for _, leg := range it.Legs {
		fmt.Fprintf(&b, "|%s %.6f %.6f", leg.Mode, float64(leg.StartTime), float64(leg.EndTime))
	}
	return b.String()
}

func sortByDeparture(itineraries []models.Itinerary) []models.Itinerary {
	sort.SliceStable(itineraries, func(a, b int) bool {
		if itineraries[a].DateKey() != itineraries[b].DateKey() {
			return itineraries[a].DateKey() < itineraries[b].DateKey()
		}
		return itineraries[a].StartTime() < itineraries[b].StartTime()
	})
	return itineraries
}
