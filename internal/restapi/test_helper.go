package restapi

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"munroaccess.org/internal/app"
	"munroaccess.org/internal/appconf"
	"munroaccess.org/internal/metrics"
	"munroaccess.org/internal/models"
	"munroaccess.org/internal/ranking"
)

func testLeg(from, to string, depart, arrive float64, mode models.Mode) models.Leg {
	return models.Leg{
		From:      models.Place{Name: from},
		To:        models.Place{Name: to},
		StartTime: models.TimeOfDay(depart),
		EndTime:   models.TimeOfDay(arrive),
		Mode:      mode,
	}
}

func testItinerary(depart, arrive float64) models.Itinerary {
	return models.Itinerary{
		// 2025-06-07 is a Saturday.
		Date: models.NewDate(2025, time.June, 7),
		Legs: []models.Leg{testLeg("a", "b", depart, arrive, models.ModeRail)},
	}
}

func testDataset(t *testing.T) *app.Dataset {
	t.Helper()

	starts := []models.Start{
		{ID: "glasgow", Name: "Glasgow", LngLat: models.LngLat{Lng: -4.25, Lat: 55.86}, Radius: 2000},
	}
	targets := []models.Target{
		{
			ID: "ben-more", Name: "Ben More",
			LngLat: models.LngLat{Lng: -6.02, Lat: 56.42},
			Routes: []models.Route{{Name: "main ridge", Time: [2]float64{4.5, 6}, Munros: []int{1}}},
		},
		{
			ID: "ben-lomond", Name: "Ben Lomond",
			LngLat: models.LngLat{Lng: -4.63, Lat: 56.19},
			Routes: []models.Route{{Name: "tourist path", Time: [2]float64{4, 5}, Munros: []int{2}}},
		},
	}
	munros := []models.Munro{
		{Number: 1, Name: "Ben More", HeightM: 1174},
		{Number: 2, Name: "Ben Lomond", HeightM: 974},
	}

	dataset, err := app.NewDataset(starts, targets, munros)
	require.NoError(t, err)

	dataset.Results = []models.Result{
		{
			Start:  "glasgow",
			Target: "ben-more",
			Itineraries: map[models.Day]models.DayItineraries{
				models.DaySaturday: {
					Outbounds: []models.Itinerary{testItinerary(8, 10)},
					Returns: []models.Itinerary{
						testItinerary(17, 19),
						testItinerary(16.25, 18),
					},
				},
			},
		},
	}
	return dataset
}

func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	dataset := testDataset(t)
	collector := metrics.NewCollector()
	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{"test"},
			RateLimit: 100,
		},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: collector,
		Dataset: dataset,
		Ranking: ranking.NewService(ranking.BuildInput{
			Results: dataset.Results,
			Targets: dataset.Targets,
			Munros:  dataset.Munros,
		}, collector),
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}
