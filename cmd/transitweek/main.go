// Command transitweek inspects one or more static GTFS feeds and writes
// the Monday of the first full week covered by every service in every
// feed. The analyzer anchors all of its searches to that week, so the
// feeds must agree on it; disagreement means the timetables are out of
// sync and the run is aborted.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"munroaccess.org/internal/models"
	"munroaccess.org/internal/transitweek"
)

func main() {
	out := flag.String("out", "./data/transit_week.txt", "Path to write the transit week file to")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	feeds := flag.Args()
	if len(feeds) == 0 {
		logger.Error("no GTFS feeds given", "usage", "transitweek [-out path] feed.zip [feed.zip ...]")
		os.Exit(1)
	}

	week, err := selectWeek(feeds)
	if err != nil {
		logger.Error("failed to determine transit week", "error", err)
		os.Exit(1)
	}

	if err := transitweek.Write(*out, week); err != nil {
		logger.Error("failed to write transit week file", "error", err)
		os.Exit(1)
	}
	logger.Info("transit week written", "week", week.String(), "path", *out)
}

func selectWeek(feeds []string) (models.Date, error) {
	var week models.Date
	for i, path := range feeds {
		data, err := os.ReadFile(path)
		if err != nil {
			return models.Date{}, err
		}
		feed, err := transitweek.Parse(data)
		if err != nil {
			return models.Date{}, fmt.Errorf("parse %s: %w", path, err)
		}
		w, err := transitweek.Select(feed)
		if err != nil {
			return models.Date{}, fmt.Errorf("select week for %s: %w", path, err)
		}
		if i == 0 {
			week = w
			continue
		}
		if w != week {
			return models.Date{}, fmt.Errorf("feeds disagree on transit week: %s starts %s, %s starts %s",
				feeds[0], week, path, w)
		}
	}
	return week, nil
}
