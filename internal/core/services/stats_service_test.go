package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-calendar/internal/core/domain"
	"github.com/comitanigiacomo/kanso-calendar/internal/core/services"
)

func TestStatsService_Compute(t *testing.T) {
	svc := services.NewStatsService()

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("Edge Case: Empty completion map yields all-zero stats", func(t *testing.T) {
		stats := svc.Compute(domain.StatsInput{
			Completions: domain.CompletionMap{},
			Cells:       domain.BuildGrid(2024, time.January),
			Today:       day(2024, time.January, 15),
		})

		assert.Equal(t, 0, stats.CurrentStreak)
		assert.Equal(t, 0, stats.LongestStreak)
		assert.Equal(t, 0, stats.MonthlyPercentage)
		assert.Equal(t, 0, stats.CompletedInMonth)
		assert.Equal(t, 31, stats.TotalDaysInMonth)
	})

	t.Run("Success: Gap splits the streak, isolated tail is current", func(t *testing.T) {
		completions := domain.CompletionMap{
			"2024-01-01": true,
			"2024-01-02": true,
			"2024-01-03": true,
			"2024-01-05": true,
		}

		stats := svc.Compute(domain.StatsInput{
			Completions: completions,
			Cells:       domain.BuildGrid(2024, time.January),
			Today:       day(2024, time.January, 5),
		})

		assert.Equal(t, 3, stats.LongestStreak)
		assert.Equal(t, 1, stats.CurrentStreak, "01-05 stands alone because 01-04 is missing")
	})

	t.Run("Success: Lapsed streak zeroes current but keeps longest", func(t *testing.T) {
		completions := domain.CompletionMap{
			"2024-01-01": true,
			"2024-01-02": true,
			"2024-01-03": true,
			"2024-01-05": true,
		}

		stats := svc.Compute(domain.StatsInput{
			Completions: completions,
			Cells:       domain.BuildGrid(2024, time.January),
			Today:       day(2024, time.January, 10),
		})

		assert.Equal(t, 0, stats.CurrentStreak)
		assert.Equal(t, 3, stats.LongestStreak)
	})

	t.Run("Success: Yesterday still counts as current (one-day grace)", func(t *testing.T) {
		completions := domain.CompletionMap{
			"2024-01-04": true,
			"2024-01-05": true,
		}

		stats := svc.Compute(domain.StatsInput{
			Completions: completions,
			Cells:       domain.BuildGrid(2024, time.January),
			Today:       day(2024, time.January, 6),
		})

		assert.Equal(t, 2, stats.CurrentStreak)

		lapsed := svc.Compute(domain.StatsInput{
			Completions: completions,
			Cells:       domain.BuildGrid(2024, time.January),
			Today:       day(2024, time.January, 7),
		})
		assert.Equal(t, 0, lapsed.CurrentStreak, "two days without an entry lapses the streak")
	})

	t.Run("Success: Streak crosses the year boundary", func(t *testing.T) {
		completions := domain.CompletionMap{
			"2023-12-30": true,
			"2023-12-31": true,
			"2024-01-01": true,
			"2024-01-02": true,
		}

		stats := svc.Compute(domain.StatsInput{
			Completions: completions,
			Cells:       domain.BuildGrid(2024, time.January),
			Today:       day(2024, time.January, 2),
		})

		assert.Equal(t, 4, stats.CurrentStreak)
		assert.Equal(t, 4, stats.LongestStreak)
	})

	t.Run("Success: Monthly percentage rounds to the nearest integer", func(t *testing.T) {
		completions := domain.CompletionMap{}
		for d := 1; d <= 15; d++ {
			completions[domain.NewDateKey(day(2024, time.April, d))] = true
		}

		stats := svc.Compute(domain.StatsInput{
			Completions: completions,
			Cells:       domain.BuildGrid(2024, time.April),
			Today:       day(2024, time.April, 15),
		})

		assert.Equal(t, 15, stats.CompletedInMonth)
		assert.Equal(t, 30, stats.TotalDaysInMonth)
		assert.Equal(t, 50, stats.MonthlyPercentage)
	})

	t.Run("Success: Percentage counts current-month cells only", func(t *testing.T) {
		// 2024-03-31 sits in April's grid as a leading cell.
		completions := domain.CompletionMap{
			"2024-03-31": true,
			"2024-04-01": true,
		}

		stats := svc.Compute(domain.StatsInput{
			Completions: completions,
			Cells:       domain.BuildGrid(2024, time.April),
			Today:       day(2024, time.April, 1),
		})

		assert.Equal(t, 1, stats.CompletedInMonth)
		assert.Equal(t, 2, stats.CurrentStreak, "streaks still span month boundaries")
	})

	t.Run("Edge Case: No cells does not divide by zero", func(t *testing.T) {
		stats := svc.Compute(domain.StatsInput{
			Completions: domain.CompletionMap{"2024-01-01": true},
			Cells:       nil,
			Today:       day(2024, time.January, 1),
		})

		assert.Equal(t, 0, stats.MonthlyPercentage)
		assert.Equal(t, 0, stats.TotalDaysInMonth)
	})

	t.Run("Success: Single completion today", func(t *testing.T) {
		stats := svc.Compute(domain.StatsInput{
			Completions: domain.CompletionMap{"2024-02-29": true},
			Cells:       domain.BuildGrid(2024, time.February),
			Today:       day(2024, time.February, 29),
		})

		assert.Equal(t, 1, stats.CurrentStreak)
		assert.Equal(t, 1, stats.LongestStreak)
		assert.Equal(t, 3, stats.MonthlyPercentage, "1 of 29 days rounds to 3%")
	})
}
