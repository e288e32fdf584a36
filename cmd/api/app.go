package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"munroaccess.org/internal/analyzer"
	"munroaccess.org/internal/app"
	"munroaccess.org/internal/appconf"
	"munroaccess.org/internal/logging"
	"munroaccess.org/internal/metrics"
	"munroaccess.org/internal/models"
	"munroaccess.org/internal/ranking"
	"munroaccess.org/internal/restapi"
	"munroaccess.org/resultdb"
)

// DataConfig locates the dataset the server ranks: the static place files
// plus the analyzer output, either as a JSONL file or a SQLite database.
type DataConfig struct {
	StartsPath    string
	TargetsPath   string
	MunrosPath    string
	ResultsPath   string
	ResultsDBPath string
}

// newLogger returns a JSON logger in production so log aggregation can
// parse the output, and a human-readable text logger everywhere else.
func newLogger(cfg appconf.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	if cfg.Env == appconf.Production {
		return logging.NewStructuredLogger(os.Stdout, level)
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// ParseAPIKeys splits a comma-separated string of API keys and trims whitespace from each key.
// Returns an empty slice if the input is empty.
func ParseAPIKeys(apiKeysFlag string) []string {
	if apiKeysFlag == "" {
		return []string{}
	}

	keys := strings.Split(apiKeysFlag, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

// BuildApplication creates and initializes the Application with all dependencies.
// It loads the dataset and analyzer results, then eagerly builds the default
// ranking snapshot so the first request is not penalized with a scoring pass.
func BuildApplication(cfg appconf.Config, data DataConfig) (*app.Application, error) {
	logger := newLogger(cfg)

	dataset, err := app.LoadDataset(app.DatasetPaths{
		Starts:  data.StartsPath,
		Targets: data.TargetsPath,
		Munros:  data.MunrosPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	results, err := loadResults(cfg, data, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load analyzer results: %w", err)
	}
	dataset.Results = results

	collector := metrics.NewCollector()

	rankingService := ranking.NewService(ranking.BuildInput{
		Results: dataset.Results,
		Targets: dataset.Targets,
		Munros:  dataset.Munros,
	}, collector)
	if _, err := rankingService.Default(); err != nil {
		return nil, fmt.Errorf("failed to build default snapshot: %w", err)
	}

	logger.Info("dataset loaded",
		"starts", len(dataset.Starts),
		"targets", len(dataset.TargetList),
		"results", len(dataset.Results))

	coreApp := &app.Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: collector,
		Dataset: dataset,
		Ranking: rankingService,
	}

	return coreApp, nil
}

func loadResults(cfg appconf.Config, data DataConfig, logger *slog.Logger) ([]models.Result, error) {
	if data.ResultsDBPath == "" {
		return analyzer.ReadResults(data.ResultsPath)
	}

	client, err := resultdb.NewClient(resultdb.NewConfig(data.ResultsDBPath, cfg.Env, cfg.Verbose), logger)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	return client.LoadAllResults(context.Background())
}

// CreateServer creates and configures the HTTP server with routes and middleware.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*restapi.RestAPI, *http.Server) {
	api := restapi.NewRestAPI(coreApp)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.SetupAPIRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(coreApp.Logger.Handler(), slog.LevelError),
	}

	return api, srv
}

// Run manages the server lifecycle with graceful shutdown.
// Starts the server in a goroutine, waits for shutdown signals (SIGINT, SIGTERM),
// and performs graceful shutdown with a 30-second timeout.
// Returns an error if the server fails to start or shutdown fails.
func Run(srv *http.Server, api *restapi.RestAPI, logger *slog.Logger) error {
	logger.Info("starting server", "addr", srv.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if api != nil {
		api.Shutdown()
	}

	logger.Info("server exited")
	return nil
}
