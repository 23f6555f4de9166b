package services

import (
	"math"
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-calendar/internal/core/domain"
)

// StatsService derives streaks and the monthly completion rate from the raw
// completion map. Every call rescans the whole map; the data is bounded by
// one entry per day of a human life, so there is no index to maintain.
type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

func (s *StatsService) Compute(input domain.StatsInput) domain.Stats {
	stats := domain.Stats{
		TotalDaysInMonth: domain.CurrentMonthDays(input.Cells),
	}

	for _, c := range input.Cells {
		if c.IsCurrentMonth && input.Completions[c.Key] {
			stats.CompletedInMonth++
		}
	}
	if stats.TotalDaysInMonth > 0 {
		rate := float64(stats.CompletedInMonth) / float64(stats.TotalDaysInMonth) * 100
		stats.MonthlyPercentage = int(math.Round(rate))
	}

	stats.CurrentStreak, stats.LongestStreak = calculateStreaks(input.Completions, input.Today)
	return stats
}

// calculateStreaks walks the completed days in chronological order. Sorting
// the keys as strings is enough: the zero-padded DateKey format makes lexical
// and chronological order identical.
func calculateStreaks(completions domain.CompletionMap, today time.Time) (int, int) {
	if len(completions) == 0 {
		return 0, 0
	}

	keys := make([]string, 0, len(completions))
	for k, done := range completions {
		if done && k.Valid() {
			keys = append(keys, string(k))
		}
	}
	if len(keys) == 0 {
		return 0, 0
	}
	sort.Strings(keys)

	longest := 1
	run := 1
	prev, _ := domain.ParseDateKey(domain.DateKey(keys[0]))

	for _, k := range keys[1:] {
		day, _ := domain.ParseDateKey(domain.DateKey(k))

		if day.Sub(prev).Hours() == 24 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}

	// The final run only counts as current while it is alive: the last
	// completed day must be today or yesterday, one day of grace.
	todayKey := string(domain.NewDateKey(today))
	yesterdayKey := string(domain.NewDateKey(today.AddDate(0, 0, -1)))

	lastKey := keys[len(keys)-1]
	current := 0
	if lastKey == todayKey || lastKey == yesterdayKey {
		current = run
	}

	return current, longest
}
