// Command analyzer queries an OpenTripPlanner instance for itineraries
// between every starting city and every trailhead, and appends the
// discovered journeys to a JSONL results file. Re-running with an existing
// results file resumes where the previous run stopped.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"munroaccess.org/internal/metrics"
	"munroaccess.org/internal/otp"
)

func main() {
	_ = godotenv.Load()

	var cfg analyzerConfig
	flag.StringVar(&cfg.StartsPath, "starts", envOrDefault("STARTS_PATH", "./data/starts.json"), "Path to the starting cities JSON file")
	flag.StringVar(&cfg.TargetsPath, "targets", envOrDefault("TARGETS_PATH", "./data/targets.json"), "Path to the trailhead targets JSON file")
	flag.StringVar(&cfg.ResultsPath, "results", envOrDefault("RESULTS_PATH", "./data/results.jsonl"), "Path to the results JSONL file (appended, resumable)")
	flag.StringVar(&cfg.TransitWeekPath, "transit-week", envOrDefault("TRANSIT_WEEK_PATH", "./data/transit_week.txt"), "Path to the transit week file (Monday date)")
	flag.StringVar(&cfg.Endpoint, "otp", envOrDefault("OTP_ENDPOINT", "http://localhost:8080"), "OpenTripPlanner base URL")
	flag.StringVar(&cfg.DBPath, "db", os.Getenv("RESULTS_DB_PATH"), "Optional SQLite database to load the results into after the run")
	flag.IntVar(&cfg.Workers, "workers", 0, "Concurrent analysis workers (0 = number of CPUs)")
	flag.Float64Var(&cfg.RequestsPerSecond, "rps", 0, "Trip-plan request rate limit (0 = unlimited)")
	flag.DurationVar(&cfg.Timeout, "timeout", otp.DefaultTimeout, "Per-request trip planner timeout")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

type analyzerConfig struct {
	StartsPath        string
	TargetsPath       string
	ResultsPath       string
	TransitWeekPath   string
	Endpoint          string
	DBPath            string
	Workers           int
	RequestsPerSecond float64
	Timeout           time.Duration
	Verbose           bool
}

func newPlanner(cfg analyzerConfig, collector *metrics.Collector, tz *time.Location) *otp.Client {
	return otp.NewClient(otp.Config{
		Endpoint:          cfg.Endpoint,
		Timezone:          tz,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, collector)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
