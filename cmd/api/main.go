package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"munroaccess.org/internal/appconf"
)

func main() {
	// A .env file is optional; flags below read their defaults from the
	// environment it populates.
	_ = godotenv.Load()

	var cfg appconf.Config
	var data DataConfig
	var apiKeysFlag string
	var envFlag string

	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", envOrDefault("API_KEYS", "test"), "Comma Separated API Keys (test, etc)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per client for rate limiting")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.StringVar(&data.StartsPath, "starts", envOrDefault("STARTS_PATH", "./data/starts.json"), "Path to the starting cities JSON file")
	flag.StringVar(&data.TargetsPath, "targets", envOrDefault("TARGETS_PATH", "./data/targets.json"), "Path to the trailhead targets JSON file")
	flag.StringVar(&data.MunrosPath, "munros", envOrDefault("MUNROS_PATH", "./data/munros.json"), "Path to the munro list JSON file")
	flag.StringVar(&data.ResultsPath, "results", envOrDefault("RESULTS_PATH", "./data/results.jsonl"), "Path to the analyzer results JSONL file")
	flag.StringVar(&data.ResultsDBPath, "results-db", os.Getenv("RESULTS_DB_PATH"), "Path to a SQLite results database (overrides -results)")
	flag.Parse()

	cfg.ApiKeys = ParseAPIKeys(apiKeysFlag)
	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	coreApp, err := BuildApplication(cfg, data)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	api, srv := CreateServer(coreApp, cfg)

	if err := Run(srv, api, coreApp.Logger); err != nil {
		coreApp.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
