package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/comitanigiacomo/kanso-calendar/internal/core/domain"
)

// ViewDefaults seed the view when nothing is persisted yet. DarkMode should
// come from the environment's preference (terminal background detection in
// the bundled TUI).
type ViewDefaults struct {
	Now      time.Time
	DarkMode bool
}

// ViewService persists which month is on screen and the theme flag, so both
// survive a restart. Corrupt stored values fall back to the defaults.
type ViewService struct {
	store domain.KVStore

	year  int
	month time.Month
	dark  bool
}

func NewViewService(ctx context.Context, store domain.KVStore, defaults ViewDefaults) *ViewService {
	s := &ViewService{
		store: store,
		year:  defaults.Now.Year(),
		month: defaults.Now.Month(),
		dark:  defaults.DarkMode,
	}

	if raw, err := s.store.Get(ctx, domain.KeyViewDate); err == nil {
		if t, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
			s.year = t.Year()
			s.month = t.Month()
		} else {
			log.Printf("[STORE] Corrupt view date %q, falling back to current month: %v", raw, parseErr)
		}
	}

	if raw, err := s.store.Get(ctx, domain.KeyDarkMode); err == nil {
		if dark, parseErr := strconv.ParseBool(raw); parseErr == nil {
			s.dark = dark
		} else {
			log.Printf("[STORE] Corrupt dark mode flag %q, falling back to default: %v", raw, parseErr)
		}
	}

	return s
}

func (s *ViewService) Year() int         { return s.year }
func (s *ViewService) Month() time.Month { return s.month }
func (s *ViewService) DarkMode() bool    { return s.dark }

// Cells builds the grid for the month currently on screen.
func (s *ViewService) Cells() []domain.CalendarCell {
	return domain.BuildGrid(s.year, s.month)
}

// MonthKey identifies the month on screen, for notes lookup.
func (s *ViewService) MonthKey() domain.MonthKey {
	return domain.NewMonthKey(time.Date(s.year, s.month, 1, 0, 0, 0, 0, time.UTC))
}

// NextMonth advances the view one month, rolling the year through date
// normalization rather than manual arithmetic.
func (s *ViewService) NextMonth(ctx context.Context) {
	s.shiftMonths(ctx, 1)
}

func (s *ViewService) PrevMonth(ctx context.Context) {
	s.shiftMonths(ctx, -1)
}

func (s *ViewService) NextYear(ctx context.Context) {
	s.shiftMonths(ctx, 12)
}

func (s *ViewService) PrevYear(ctx context.Context) {
	s.shiftMonths(ctx, -12)
}

// GoTo jumps the view to the month containing t.
func (s *ViewService) GoTo(ctx context.Context, t time.Time) {
	s.year = t.Year()
	s.month = t.Month()
	s.persistView(ctx)
}

func (s *ViewService) ToggleDarkMode(ctx context.Context) bool {
	s.dark = !s.dark
	if err := s.store.Set(ctx, domain.KeyDarkMode, strconv.FormatBool(s.dark)); err != nil {
		log.Printf("[STORE] Failed to persist dark mode flag: %v", err)
	}
	return s.dark
}

func (s *ViewService) shiftMonths(ctx context.Context, months int) {
	shifted := time.Date(s.year, s.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	s.year = shifted.Year()
	s.month = shifted.Month()
	s.persistView(ctx)
}

func (s *ViewService) persistView(ctx context.Context) {
	first := time.Date(s.year, s.month, 1, 0, 0, 0, 0, time.UTC)
	if err := s.store.Set(ctx, domain.KeyViewDate, first.Format(time.RFC3339)); err != nil {
		log.Printf("[STORE] Failed to persist view date: %v", err)
	}
}
