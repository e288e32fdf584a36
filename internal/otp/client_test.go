package otp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munroaccess.org/internal/models"
)

func planTestServer(t *testing.T, handler func(vars map[string]interface{}) interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/otp/gtfs/v1", r.URL.Path)

		var req struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "plan(")

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(handler(req.Variables)))
	}))
}

func emptyPlanPayload() interface{} {
	return map[string]interface{}{
		"data": map[string]interface{}{
			"plan": map[string]interface{}{
				"nextPageCursor": nil,
				"itineraries":    []interface{}{},
			},
		},
	}
}

func testClient(endpoint string) *Client {
	loc, _ := time.LoadLocation("Europe/London")
	return NewClient(Config{Endpoint: endpoint, Timezone: loc}, nil)
}

func TestPlanSendsRequestVariables(t *testing.T) {
	var got map[string]interface{}
	server := planTestServer(t, func(vars map[string]interface{}) interface{} {
		got = vars
		return emptyPlanPayload()
	})
	defer server.Close()

	client := testClient(server.URL)
	loc, _ := time.LoadLocation("Europe/London")
	_, err := client.Plan(context.Background(), PlanRequest{
		From:           Coordinate{Name: "Glasgow", Lat: 55.8642, Lng: -4.2518},
		To:             Coordinate{Name: "Crianlarich", Lat: 56.3905, Lng: -4.6187},
		Modes:          []RequestMode{RequestModeTransit, RequestModeWalk},
		Direction:      DepartAt,
		DateTime:       time.Date(2025, 6, 7, 0, 0, 0, 0, loc),
		SearchWindow:   24 * time.Hour,
		WalkReluctance: 1.1,
		OptimizeQuick:  true,
		NumItineraries: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-07", got["date"])
	assert.Equal(t, "00:00", got["time"])
	assert.Equal(t, false, got["arriveBy"])
	assert.EqualValues(t, 86400, got["searchWindow"])
	assert.EqualValues(t, 5, got["numItineraries"])
	assert.InDelta(t, 1.1, got["walkReluctance"].(float64), 1e-9)
	assert.Equal(t, "QUICK", got["optimize"])
	assert.NotContains(t, got, "pageCursor")

	modes := got["transportModes"].([]interface{})
	require.Len(t, modes, 2)
	assert.Equal(t, "TRANSIT", modes[0].(map[string]interface{})["mode"])
}

func TestPlanSendsPageCursor(t *testing.T) {
	var got map[string]interface{}
	server := planTestServer(t, func(vars map[string]interface{}) interface{} {
		got = vars
		return emptyPlanPayload()
	})
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Plan(context.Background(), PlanRequest{
		DateTime:   time.Now(),
		PageCursor: "cursor-abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "cursor-abc", got["pageCursor"])
}

func TestPlanParsesItineraries(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/London")
	depart := time.Date(2025, 6, 7, 8, 30, 0, 0, loc)
	arrive := time.Date(2025, 6, 7, 10, 15, 0, 0, loc)

	server := planTestServer(t, func(vars map[string]interface{}) interface{} {
		return map[string]interface{}{
			"data": map[string]interface{}{
				"plan": map[string]interface{}{
					"nextPageCursor": "page-2",
					"itineraries": []interface{}{
						map[string]interface{}{
							"legs": []interface{}{
								map[string]interface{}{
									"mode":                     "RAIL",
									"startTime":                depart.UnixMilli(),
									"endTime":                  arrive.UnixMilli(),
									"interlineWithPreviousLeg": false,
									"from":                     map[string]interface{}{"name": "Glasgow Queen Street", "lat": 55.8623, "lon": -4.2512},
									"to":                       map[string]interface{}{"name": "Crianlarich", "lat": 56.3905, "lon": -4.6187},
									"route":                    map[string]interface{}{"shortName": "WHL"},
									"agency":                   map[string]interface{}{"name": "ScotRail"},
									"legGeometry":              map[string]interface{}{"points": "_p~iF~ps|U"},
								},
							},
						},
					},
				},
			},
		}
	})
	defer server.Close()

	client := testClient(server.URL)
	resp, err := client.Plan(context.Background(), PlanRequest{DateTime: depart})
	require.NoError(t, err)

	assert.Equal(t, "page-2", resp.NextPageCursor)
	require.Len(t, resp.Itineraries, 1)

	it := resp.Itineraries[0]
	assert.Equal(t, models.NewDate(2025, time.June, 7), it.Date)
	require.Len(t, it.Legs, 1)

	leg := it.Legs[0]
	assert.Equal(t, models.ModeRail, leg.Mode)
	assert.InDelta(t, 8.5, leg.StartTime.Hours(), 1e-9)
	assert.InDelta(t, 10.25, leg.EndTime.Hours(), 1e-9)
	assert.Equal(t, "WHL", leg.RouteName)
	assert.Equal(t, "ScotRail", leg.AgencyName)
	assert.Equal(t, "_p~iF~ps|U", leg.Geometry)
	assert.Equal(t, "Glasgow Queen Street", leg.From.Name)
}

func TestPlanStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "planner exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Plan(context.Background(), PlanRequest{DateTime: time.Now()})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestPlanGraphQLError(t *testing.T) {
	server := planTestServer(t, func(vars map[string]interface{}) interface{} {
		return map[string]interface{}{
			"errors": []interface{}{
				map[string]interface{}{"message": "unknown field"},
			},
		}
	})
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Plan(context.Background(), PlanRequest{DateTime: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestPlanUnreachablePlanner(t *testing.T) {
	client := testClient("http://127.0.0.1:1")
	_, err := client.Plan(context.Background(), PlanRequest{DateTime: time.Now()})
	assert.Error(t, err)
}
