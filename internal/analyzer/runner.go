package analyzer

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"munroaccess.org/internal/metrics"
	"munroaccess.org/internal/models"
)

// TaskFailure records one (start, target) unit that could not be analyzed.
// Units are never retried: a failure here means the trip planner or the
// data is broken, and rerunning the batch resumes past completed work
// anyway.
type TaskFailure struct {
	ID        models.ResultID `json:"id"`
	Error     string          `json:"error"`
	Timestamp time.Time       `json:"timestamp"`
}

// RunStats summarizes one batch run.
type RunStats struct {
	Analyzed int
	Skipped  int
	Elapsed  time.Duration
}

// Runner fans (start, target) units out over a worker pool and appends
// each result to the results file as it completes.
type Runner struct {
	analyzer *Analyzer
	results  *ResultsFile
	logger   *slog.Logger
	metrics  *metrics.Collector
	workers  int
}

// NewRunner creates a Runner. workers of zero or less uses GOMAXPROCS:
// units spend most of their time waiting on the trip planner, which is
// CPU-bound on the same machine.
func NewRunner(analyzer *Analyzer, results *ResultsFile, logger *slog.Logger, workers int, collector *metrics.Collector) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		analyzer: analyzer,
		results:  results,
		logger:   logger.With(slog.String("component", "runner")),
		metrics:  collector,
		workers:  workers,
	}
}

type unit struct {
	start  models.Start
	target models.Target
}

// Run analyzes every (start, target) pair not already in completed. It
// drains the whole batch even when units fail and returns the failures
// for the caller to surface.
func (r *Runner) Run(ctx context.Context, starts []models.Start, targets []models.Target, completed map[models.ResultID]bool) (RunStats, []TaskFailure) {
	var units []unit
	skipped := 0
	for _, target := range targets {
		for _, start := range starts {
			if completed[models.ResultID{Start: start.ID, Target: target.ID}] {
				skipped++
				continue
			}
			units = append(units, unit{start: start, target: target})
		}
	}

	r.logger.Info("analyzing pairs",
		slog.Int("pairs", len(units)),
		slog.Int("skipped", skipped),
		slog.Int("workers", r.workers))

	began := time.Now()
	jobs := make(chan unit)
	failures := make([]chan []TaskFailure, r.workers)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		out := make(chan []TaskFailure, 1)
		failures[w] = out
		wg.Add(1)
		go func() {
			defer wg.Done()
			var failed []TaskFailure
			for u := range jobs {
				if failure := r.runOne(ctx, u); failure != nil {
					failed = append(failed, *failure)
				}
			}
			out <- failed
		}()
	}

	dispatched := 0
	for _, u := range units {
		select {
		case jobs <- u:
			dispatched++
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	var allFailures []TaskFailure
	for _, out := range failures {
		allFailures = append(allFailures, <-out...)
	}

	stats := RunStats{
		Analyzed: dispatched - len(allFailures),
		Skipped:  skipped,
		Elapsed:  time.Since(began),
	}
	r.logger.Info("batch finished",
		slog.Int("analyzed", stats.Analyzed),
		slog.Int("failures", len(allFailures)),
		slog.Duration("elapsed", stats.Elapsed))
	return stats, allFailures
}

func (r *Runner) runOne(ctx context.Context, u unit) *TaskFailure {
	id := models.ResultID{Start: u.start.ID, Target: u.target.ID}
	r.logger.Info("analyzing", slog.String("start", u.start.ID), slog.String("target", u.target.ID))

	began := time.Now()
	result, err := r.analyzer.Analyze(ctx, u.start, u.target)
	elapsed := time.Since(began)
	if err == nil {
		if r.metrics != nil {
			r.metrics.AnalyzeDuration.Observe(elapsed.Seconds())
		}
		err = r.results.Append(result)
	}
	if err != nil {
		r.logger.Error("analysis failed",
			slog.String("start", u.start.ID),
			slog.String("target", u.target.ID),
			slog.Any("error", err))
		return &TaskFailure{ID: id, Error: err.Error(), Timestamp: time.Now()}
	}

	r.logger.Info("analyzed",
		slog.String("start", u.start.ID),
		slog.String("target", u.target.ID),
		slog.Duration("elapsed", elapsed))
	return nil
}
