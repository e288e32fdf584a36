// Package app wires configuration, the analyzed dataset and the ranking
// service together for the API server.
package app

import (
	"log/slog"

	"munroaccess.org/internal/appconf"
	"munroaccess.org/internal/metrics"
	"munroaccess.org/internal/ranking"
)

type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Metrics *metrics.Collector
	Dataset *Dataset
	Ranking *ranking.Service
}
