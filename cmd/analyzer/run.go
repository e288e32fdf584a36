package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"munroaccess.org/internal/analyzer"
	"munroaccess.org/internal/appconf"
	"munroaccess.org/internal/metrics"
	"munroaccess.org/internal/models"
	"munroaccess.org/internal/transitweek"
	"munroaccess.org/resultdb"
)

// plannerTimezone is the timezone all Scottish timetables are published
// in; itinerary clock times are interpreted against it.
const plannerTimezone = "Europe/London"

func run(ctx context.Context, cfg analyzerConfig, logger *slog.Logger) error {
	var starts []models.Start
	if err := readJSON(cfg.StartsPath, &starts); err != nil {
		return fmt.Errorf("load starts: %w", err)
	}
	var targets []models.Target
	if err := readJSON(cfg.TargetsPath, &targets); err != nil {
		return fmt.Errorf("load targets: %w", err)
	}

	week, err := transitweek.Read(cfg.TransitWeekPath)
	if err != nil {
		return fmt.Errorf("load transit week: %w", err)
	}

	tz, err := time.LoadLocation(plannerTimezone)
	if err != nil {
		return err
	}

	completed, err := analyzer.ReadCompletedIDs(cfg.ResultsPath)
	if err != nil {
		return fmt.Errorf("read existing results: %w", err)
	}

	results, err := analyzer.OpenResultsFile(cfg.ResultsPath)
	if err != nil {
		return fmt.Errorf("open results file: %w", err)
	}
	defer results.Close()

	collector := metrics.NewCollector()
	planner := newPlanner(cfg, collector, tz)

	logger.Info("starting analysis",
		"starts", len(starts),
		"targets", len(targets),
		"completed", len(completed),
		"week", week.String(),
		"otp", cfg.Endpoint)

	runner := analyzer.NewRunner(
		analyzer.New(planner, week, tz, logger, cfg.Verbose),
		results, logger, cfg.Workers, collector)
	stats, failures := runner.Run(ctx, starts, targets, completed)

	logger.Info("analysis finished",
		"analyzed", stats.Analyzed,
		"skipped", stats.Skipped,
		"failed", len(failures),
		"elapsed", stats.Elapsed)

	if cfg.DBPath != "" {
		if err := loadIntoDatabase(ctx, cfg, logger); err != nil {
			return fmt.Errorf("load results into database: %w", err)
		}
	}

	if len(failures) > 0 {
		for _, f := range failures {
			logger.Error("unit failed", "id", f.ID.String(), "error", f.Error)
		}
		return fmt.Errorf("%d of %d units failed", len(failures), stats.Analyzed+len(failures))
	}
	return nil
}

// loadIntoDatabase mirrors the finished JSONL results into SQLite so the
// API server can serve them without parsing the whole file on boot.
func loadIntoDatabase(ctx context.Context, cfg analyzerConfig, logger *slog.Logger) error {
	all, err := analyzer.ReadResults(cfg.ResultsPath)
	if err != nil {
		return err
	}

	client, err := resultdb.NewClient(resultdb.NewConfig(cfg.DBPath, appconf.Production, cfg.Verbose), logger)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.BulkInsertResults(ctx, all); err != nil {
		return err
	}
	logger.Info("results loaded into database", "path", cfg.DBPath, "results", len(all))
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
