package ranking

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"munroaccess.org/internal/geo"
	"munroaccess.org/internal/models"
)

// RouteDetail is a route with its munro metadata resolved from the munro
// index.
type RouteDetail struct {
	models.Route
	MunroDetails []models.Munro `json:"munroDetails"`
}

// RejectionRecord is one excluded pair with enough context to attribute
// it to a (start, day) group.
type RejectionRecord struct {
	Start string     `json:"start"`
	Day   models.Day `json:"day"`
	PairRejection
}

// BuildInput is the dataset a snapshot is built from.
type BuildInput struct {
	Results []models.Result
	Targets map[string]models.Target
	Munros  map[int]models.Munro
	// PerStartDayCap bounds options kept per (start, day); zero applies
	// DefaultPerStartDayCap.
	PerStartDayCap int
	// Parallelism bounds scoring workers; zero uses GOMAXPROCS.
	Parallelism int
}

// Snapshot is an immutable ranking of the whole dataset at one preference
// set. It is never mutated after construction, so it can be shared across
// requests without locking.
type Snapshot struct {
	Prefs      models.RankingPreferences
	Routes     map[string][]RouteDetail
	Options    map[string][]models.RankedOption
	Headlines  map[string][]models.RankedOption
	Rejections map[string][]RejectionRecord
}

type scoredResult struct {
	target     string
	options    []models.RankedOption
	rejections []RejectionRecord
}

// BuildSnapshot scores every outbound×return pair in the dataset,
// normalizes raw scores into percentiles across the entire pass, and
// applies the diversity selection per target. Scoring is partitioned
// across workers by result; no step mutates shared input.
func BuildSnapshot(in BuildInput, prefs models.RankingPreferences) (*Snapshot, error) {
	routes, err := resolveRoutes(in.Targets, in.Munros)
	if err != nil {
		return nil, err
	}

	scored, err := scoreResults(in, prefs)
	if err != nil {
		return nil, err
	}

	// Global normalization: one percentile map for the whole dataset, so
	// targets with poor transport are comparable to well-served ones.
	var rawScores []float64
	for _, sr := range scored {
		for _, opt := range sr.options {
			rawScores = append(rawScores, opt.Score.Raw)
		}
	}
	percentiles := BuildPercentileMap(rawScores)

	snapshot := &Snapshot{
		Prefs:      prefs,
		Routes:     routes,
		Options:    make(map[string][]models.RankedOption),
		Headlines:  make(map[string][]models.RankedOption),
		Rejections: make(map[string][]RejectionRecord),
	}

	for _, sr := range scored {
		for i := range sr.options {
			sr.options[i].Score.Percentile = percentiles[sr.options[i].Score.Raw]
		}
		snapshot.Options[sr.target] = append(snapshot.Options[sr.target], sr.options...)
		snapshot.Rejections[sr.target] = append(snapshot.Rejections[sr.target], sr.rejections...)
	}

	for target, options := range snapshot.Options {
		capped := CapPerStartDay(options, in.PerStartDayCap)
		sort.SliceStable(capped, func(a, b int) bool {
			return capped[a].Score.Percentile > capped[b].Score.Percentile
		})
		snapshot.Options[target] = capped
		snapshot.Headlines[target] = Headline(capped, HeadlineCap)
	}

	return snapshot, nil
}

// resolveRoutes attaches munro metadata to every target route. A munro
// number absent from the index is a data-integrity error: the datasets
// are expected to be mutually consistent.
func resolveRoutes(targets map[string]models.Target, munros map[int]models.Munro) (map[string][]RouteDetail, error) {
	resolved := make(map[string][]RouteDetail, len(targets))
	for id, target := range targets {
		details := make([]RouteDetail, 0, len(target.Routes))
		for _, route := range target.Routes {
			detail := RouteDetail{Route: route}
			for _, number := range route.Munros {
				munro, ok := munros[number]
				if !ok {
					return nil, fmt.Errorf("route %q on target %q references unknown munro %d", route.Name, id, number)
				}
				detail.MunroDetails = append(detail.MunroDetails, munro)
			}
			details = append(details, detail)
		}
		resolved[id] = details
	}
	return resolved, nil
}

// scoringRoute picks the route whose upper duration estimate is largest:
// a pair that is feasible for the most demanding hike works for the rest.
func scoringRoute(target models.Target) (models.Route, error) {
	if len(target.Routes) == 0 {
		return models.Route{}, fmt.Errorf("target %q has no routes", target.ID)
	}
	best := target.Routes[0]
	for _, route := range target.Routes[1:] {
		if route.MaxHours() > best.MaxHours() {
			best = route
		}
	}
	return best, nil
}

func scoreResults(in BuildInput, prefs models.RankingPreferences) ([]scoredResult, error) {
	workers := in.Parallelism
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	jobs := make(chan int)
	scored := make([]scoredResult, len(in.Results))
	errs := make([]error, len(in.Results))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				scored[idx], errs[idx] = scoreOneResult(in.Results[idx], in.Targets, prefs)
			}
		}()
	}

	for idx := range in.Results {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return scored, nil
}

func scoreOneResult(result models.Result, targets map[string]models.Target, prefs models.RankingPreferences) (scoredResult, error) {
	target, ok := targets[result.Target]
	if !ok {
		return scoredResult{}, fmt.Errorf("result %s references unknown target %q", result.ID(), result.Target)
	}
	route, err := scoringRoute(target)
	if err != nil {
		return scoredResult{}, err
	}

	sr := scoredResult{target: result.Target}
	for _, day := range orderedDays(result.Itineraries) {
		itineraries := result.Itineraries[day]
		pairs, pairRejections := SelectPairs(itineraries.Outbounds, itineraries.Returns, route, prefs)
		for _, pair := range pairs {
			sr.options = append(sr.options, models.RankedOption{
				Start:    result.Start,
				Day:      day,
				Outbound: pair.Outbound,
				Return:   pair.Return,
				Score:    pair.Score,
				TravelDistanceMeters: geo.ItineraryPathDistance(pair.Outbound) +
					geo.ItineraryPathDistance(pair.Return),
			})
		}
		for _, rejection := range pairRejections {
			sr.rejections = append(sr.rejections, RejectionRecord{
				Start:         result.Start,
				Day:           day,
				PairRejection: rejection,
			})
		}
	}
	return sr, nil
}

// orderedDays iterates result days deterministically: the configured
// search days first, then anything else sorted by name.
func orderedDays(itineraries map[models.Day]models.DayItineraries) []models.Day {
	days := make([]models.Day, 0, len(itineraries))
	seen := make(map[models.Day]bool, len(itineraries))
	for _, day := range models.SearchDays {
		if _, ok := itineraries[day]; ok {
			days = append(days, day)
			seen[day] = true
		}
	}
	var extra []models.Day
	for day := range itineraries {
		if !seen[day] {
			extra = append(extra, day)
		}
	}
	sort.Slice(extra, func(a, b int) bool { return extra[a] < extra[b] })
	return append(days, extra...)
}
