package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-calendar/internal/core/domain"
	"github.com/comitanigiacomo/kanso-calendar/internal/core/services"
)

func TestViewService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	defaults := services.ViewDefaults{Now: now, DarkMode: true}

	t.Run("Success: First run starts at the current month with the default theme", func(t *testing.T) {
		svc := services.NewViewService(ctx, newFakeStore(), defaults)

		assert.Equal(t, 2024, svc.Year())
		assert.Equal(t, time.March, svc.Month())
		assert.True(t, svc.DarkMode())
		assert.Equal(t, domain.MonthKey("2024-03"), svc.MonthKey())
	})

	t.Run("Success: Navigation survives a reload", func(t *testing.T) {
		store := newFakeStore()
		svc := services.NewViewService(ctx, store, defaults)
		svc.NextMonth(ctx)
		svc.NextMonth(ctx)

		reloaded := services.NewViewService(ctx, store, defaults)
		assert.Equal(t, time.May, reloaded.Month())
		assert.Equal(t, 2024, reloaded.Year())
	})

	t.Run("Edge Case: December rolls into January of the next year", func(t *testing.T) {
		store := newFakeStore()
		svc := services.NewViewService(ctx, store, services.ViewDefaults{
			Now: time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC),
		})

		svc.NextMonth(ctx)
		assert.Equal(t, time.January, svc.Month())
		assert.Equal(t, 2024, svc.Year())

		svc.PrevMonth(ctx)
		assert.Equal(t, time.December, svc.Month())
		assert.Equal(t, 2023, svc.Year())
	})

	t.Run("Success: Year navigation keeps the month", func(t *testing.T) {
		svc := services.NewViewService(ctx, newFakeStore(), defaults)

		svc.NextYear(ctx)
		assert.Equal(t, 2025, svc.Year())
		assert.Equal(t, time.March, svc.Month())

		svc.PrevYear(ctx)
		svc.PrevYear(ctx)
		assert.Equal(t, 2023, svc.Year())
	})

	t.Run("Success: GoTo jumps to an arbitrary month", func(t *testing.T) {
		svc := services.NewViewService(ctx, newFakeStore(), defaults)

		svc.GoTo(ctx, time.Date(2021, 7, 20, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 2021, svc.Year())
		assert.Equal(t, time.July, svc.Month())
	})

	t.Run("Success: Dark mode toggle persists", func(t *testing.T) {
		store := newFakeStore()
		svc := services.NewViewService(ctx, store, defaults)

		assert.False(t, svc.ToggleDarkMode(ctx))

		reloaded := services.NewViewService(ctx, store, defaults)
		assert.False(t, reloaded.DarkMode(), "stored flag must win over the default")
	})

	t.Run("Edge Case: Corrupt stored values fall back to defaults", func(t *testing.T) {
		store := newFakeStore()
		store.data[domain.KeyViewDate] = "sometime last week"
		store.data[domain.KeyDarkMode] = "maybe"

		svc := services.NewViewService(ctx, store, defaults)

		assert.Equal(t, time.March, svc.Month())
		assert.Equal(t, 2024, svc.Year())
		assert.True(t, svc.DarkMode())
	})

	t.Run("Success: Cells returns the 42-cell grid of the visible month", func(t *testing.T) {
		svc := services.NewViewService(ctx, newFakeStore(), defaults)

		cells := svc.Cells()
		require.Len(t, cells, domain.GridSize)
		assert.Equal(t, 31, domain.CurrentMonthDays(cells))
	})
}
