package domain

import "time"

// Stats is fully derived from the completion map and the active grid.
// It is recomputed on demand and never persisted.
type Stats struct {
	CurrentStreak     int `json:"current_streak"`
	LongestStreak     int `json:"longest_streak"`
	MonthlyPercentage int `json:"monthly_percentage"`
	CompletedInMonth  int `json:"completed_in_month"`
	TotalDaysInMonth  int `json:"total_days_in_month"`
}

type StatsInput struct {
	Completions CompletionMap
	Cells       []CalendarCell

	// Today anchors the current-streak lapse check. A streak only counts as
	// current when the latest completion is Today or the day before.
	Today time.Time
}
