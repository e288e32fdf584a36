// Package otp is a client for an OpenTripPlanner-compatible trip-planning
// service. It only consumes the request/response contract of the plan
// query; no route finding happens on this side.
package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"munroaccess.org/internal/metrics"
	"munroaccess.org/internal/models"
)

const planQuery = `
query Plan($from: InputCoordinates!, $to: InputCoordinates!, $date: String!, $time: String!, $arriveBy: Boolean, $searchWindow: Long, $transportModes: [TransportMode!], $walkReluctance: Float, $optimize: OptimizeType, $numItineraries: Int, $pageCursor: String) {
  plan(from: $from, to: $to, date: $date, time: $time, arriveBy: $arriveBy, searchWindow: $searchWindow, transportModes: $transportModes, walkReluctance: $walkReluctance, optimize: $optimize, numItineraries: $numItineraries, pageCursor: $pageCursor) {
    nextPageCursor
    itineraries {
      legs {
        mode
        startTime
        endTime
        interlineWithPreviousLeg
        from { name lat lon }
        to { name lat lon }
        route { shortName }
        agency { name }
        legGeometry { points }
      }
    }
  }
}`

// DefaultTimeout bounds a single plan request. The source system had no
// timeout at all, which left acquisition hanging on an unresponsive
// planner.
const DefaultTimeout = 60 * time.Second

// Config holds trip-planner client configuration.
type Config struct {
	// Endpoint is the planner base URL, e.g. http://localhost:8080.
	Endpoint string
	// Timezone for interpreting itinerary times. Defaults to Europe/London.
	Timezone *time.Location
	// Timeout per request. Defaults to DefaultTimeout.
	Timeout time.Duration
	// RequestsPerSecond limits outbound request rate. Zero disables limiting.
	RequestsPerSecond float64
}

// Client issues trip-plan queries over HTTP. Plan calls are not retried:
// an unreachable planner is an operator-visible condition.
type Client struct {
	endpoint string
	tz       *time.Location
	session  *http.Client
	limiter  *rate.Limiter
	metrics  *metrics.Collector
}

// StatusError is a non-2xx response from the planner.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("trip planner returned status %d: %s", e.Code, e.Body)
}

// NewClient creates a trip-planner client. The metrics collector may be nil.
func NewClient(cfg Config, collector *metrics.Collector) *Client {
	tz := cfg.Timezone
	if tz == nil {
		tz = time.UTC
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		tz:       tz,
		session:  &http.Client{Timeout: timeout},
		limiter:  limiter,
		metrics:  collector,
	}
}

// Plan runs one trip-plan query and returns a single page of itineraries.
func (c *Client) Plan(ctx context.Context, req PlanRequest) (PlanResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return PlanResponse{}, err
		}
	}

	if c.metrics != nil {
		c.metrics.PlanRequests.Inc()
	}

	envelope, err := c.post(ctx, req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.PlanErrors.Inc()
		}
		return PlanResponse{}, err
	}

	if len(envelope.Errors) > 0 {
		if c.metrics != nil {
			c.metrics.PlanErrors.Inc()
		}
		return PlanResponse{}, fmt.Errorf("trip planner rejected query: %s", envelope.Errors[0].Message)
	}

	if c.metrics != nil {
		c.metrics.PlanPages.Inc()
	}

	resp := PlanResponse{
		NextPageCursor: envelope.Data.Plan.NextPageCursor,
		Itineraries:    make([]models.Itinerary, 0, len(envelope.Data.Plan.Itineraries)),
	}
	for _, wire := range envelope.Data.Plan.Itineraries {
		resp.Itineraries = append(resp.Itineraries, c.toItinerary(wire))
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, req PlanRequest) (*planEnvelope, error) {
	payload, err := json.Marshal(graphqlRequest{
		Query:     planQuery,
		Variables: c.planVariables(req),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal plan request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/otp/gtfs/v1", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create plan request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.session.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("trip planner unreachable: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		b, _ := io.ReadAll(httpResp.Body)
		return nil, &StatusError{Code: httpResp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var envelope planEnvelope
	if err := json.NewDecoder(httpResp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode plan response: %w", err)
	}
	return &envelope, nil
}

func (c *Client) planVariables(req PlanRequest) map[string]interface{} {
	modes := make([]map[string]string, 0, len(req.Modes))
	for _, m := range req.Modes {
		modes = append(modes, map[string]string{"mode": string(m)})
	}

	local := req.DateTime.In(c.tz)
	vars := map[string]interface{}{
		"from":           map[string]interface{}{"lat": req.From.Lat, "lon": req.From.Lng},
		"to":             map[string]interface{}{"lat": req.To.Lat, "lon": req.To.Lng},
		"date":           local.Format("2006-01-02"),
		"time":           local.Format("15:04"),
		"arriveBy":       req.Direction == ArriveBy,
		"searchWindow":   int64(req.SearchWindow.Seconds()),
		"transportModes": modes,
		"numItineraries": req.NumItineraries,
	}
	if req.WalkReluctance > 0 {
		vars["walkReluctance"] = req.WalkReluctance
	}
	if req.OptimizeQuick {
		vars["optimize"] = "QUICK"
	}
	if req.PageCursor != "" {
		vars["pageCursor"] = req.PageCursor
	}
	return vars
}

func (c *Client) toItinerary(wire wireItinerary) models.Itinerary {
	legs := make([]models.Leg, 0, len(wire.Legs))
	var date models.Date
	for i, wl := range wire.Legs {
		start := time.UnixMilli(wl.StartTime).In(c.tz)
		end := time.UnixMilli(wl.EndTime).In(c.tz)
		if i == 0 {
			date = models.DateOf(start)
		}

		leg := models.Leg{
			From:                     models.Place{Name: wl.From.Name, LngLat: models.LngLat{Lng: wl.From.Lon, Lat: wl.From.Lat}},
			To:                       models.Place{Name: wl.To.Name, LngLat: models.LngLat{Lng: wl.To.Lon, Lat: wl.To.Lat}},
			InterlineWithPreviousLeg: wl.InterlineWithPreviousLeg,
			StartTime:                timeOfDay(start),
			EndTime:                  timeOfDay(end),
			Mode:                     models.Mode(wl.Mode),
		}
		if wl.Route != nil {
			leg.RouteName = wl.Route.ShortName
		}
		if wl.Agency != nil {
			leg.AgencyName = wl.Agency.Name
		}
		if wl.LegGeometry != nil {
			leg.Geometry = wl.LegGeometry.Points
		}
		legs = append(legs, leg)
	}
	return models.Itinerary{Date: date, Legs: legs}
}

func timeOfDay(t time.Time) models.TimeOfDay {
	return models.TimeOfDay(float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600)
}
