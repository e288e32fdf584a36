package ranking

import (
	"sort"

	"munroaccess.org/internal/models"
)

const (
	// DefaultPerStartDayCap bounds how many options are kept per
	// (start, day) combination.
	DefaultPerStartDayCap = 10
	// HeadlineCap bounds the compact per-target display.
	HeadlineCap = 3
)

type startDay struct {
	start string
	day   models.Day
}

// CapPerStartDay keeps at most cap options per (start, day) combination,
// preferring the highest-scoring ones. Input order is preserved among the
// survivors. A cap of zero or less applies DefaultPerStartDayCap.
func CapPerStartDay(options []models.RankedOption, cap int) []models.RankedOption {
	if cap <= 0 {
		cap = DefaultPerStartDayCap
	}

	groups := make(map[startDay][]int)
	for i, opt := range options {
		key := startDay{start: opt.Start, day: opt.Day}
		groups[key] = append(groups[key], i)
	}

	keep := make(map[int]bool, len(options))
	for _, indexes := range groups {
		ranked := make([]int, len(indexes))
		copy(ranked, indexes)
		sort.SliceStable(ranked, func(a, b int) bool {
			return options[ranked[a]].Score.Percentile > options[ranked[b]].Score.Percentile
		})
		if len(ranked) > cap {
			ranked = ranked[:cap]
		}
		for _, idx := range ranked {
			keep[idx] = true
		}
	}

	kept := make([]models.RankedOption, 0, len(keep))
	for i, opt := range options {
		if keep[i] {
			kept = append(kept, opt)
		}
	}
	return kept
}

// Headline picks at most max options for a target's compact display: the
// single best option per day, ordered by the fixed day priority (weekends
// first), truncated to the cap.
func Headline(options []models.RankedOption, max int) []models.RankedOption {
	if max <= 0 {
		max = HeadlineCap
	}

	bestPerDay := make(map[models.Day]models.RankedOption)
	for _, opt := range options {
		current, ok := bestPerDay[opt.Day]
		if !ok || opt.Score.Percentile > current.Score.Percentile {
			bestPerDay[opt.Day] = opt
		}
	}

	headline := make([]models.RankedOption, 0, max)
	for _, day := range models.HeadlineDayPriority {
		opt, ok := bestPerDay[day]
		if !ok {
			continue
		}
		headline = append(headline, opt)
		if len(headline) == max {
			break
		}
	}
	return headline
}
