package ranking

import (
	"sync"
	"time"

	"munroaccess.org/internal/metrics"
	"munroaccess.org/internal/models"
)

// Service serves ranking snapshots over a fixed dataset. The snapshot for
// default preferences is built once and shared; it is never mutated after
// publication, so readers need no locking. Non-default preferences always
// trigger a fresh scoring pass.
type Service struct {
	input   BuildInput
	metrics *metrics.Collector

	defaultOnce sync.Once
	defaultSnap *Snapshot
	defaultErr  error
}

// NewService creates a ranking service over the dataset. The metrics
// collector may be nil.
func NewService(input BuildInput, collector *metrics.Collector) *Service {
	return &Service{input: input, metrics: collector}
}

// Default returns the snapshot for default preferences, building it on
// first use.
func (s *Service) Default() (*Snapshot, error) {
	s.defaultOnce.Do(func() {
		s.defaultSnap, s.defaultErr = s.build(models.DefaultPreferences())
		if s.defaultErr == nil && s.metrics != nil {
			total := 0
			for _, options := range s.defaultSnap.Options {
				total += len(options)
			}
			s.metrics.SnapshotOptions.Set(float64(total))
		}
	})
	return s.defaultSnap, s.defaultErr
}

// WithPreferences returns a snapshot for the given preferences, reusing
// the cached default snapshot when they equal the defaults.
func (s *Service) WithPreferences(prefs models.RankingPreferences) (*Snapshot, error) {
	if prefs.IsDefault() {
		return s.Default()
	}
	return s.build(prefs)
}

func (s *Service) build(prefs models.RankingPreferences) (*Snapshot, error) {
	start := time.Now()
	snapshot, err := BuildSnapshot(s.input, prefs)
	if s.metrics != nil {
		s.metrics.ScoringPasses.Inc()
		s.metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	}
	return snapshot, err
}
