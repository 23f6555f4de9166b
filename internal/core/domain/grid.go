package domain

import "time"

// GridSize is the fixed cell count of the visible month grid: 6 rows of 7
// weekdays, enough to hold any month regardless of length or starting weekday.
const GridSize = 42

// CalendarCell is one slot of the month grid. Cells are rebuilt on every call
// to BuildGrid and never persisted; Key is the cell's identity in the
// completion map.
type CalendarCell struct {
	Date           time.Time `json:"date"`
	Key            DateKey   `json:"key"`
	IsCurrentMonth bool      `json:"is_current_month"`
}

// BuildGrid produces the 42-cell grid for the given month: the tail of the
// previous month down to the nearest Sunday, the full target month, then the
// head of the next month as padding. All rollover (including December to
// January) goes through time.Date normalization rather than manual year math.
func BuildGrid(year int, month time.Month) []CalendarCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	// Day 0 of the next month is the last day of the target month,
	// which keeps the day count leap-year aware for free.
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	startWeekday := int(first.Weekday()) // 0 = Sunday

	cells := make([]CalendarCell, 0, GridSize)

	for i := startWeekday; i > 0; i-- {
		d := first.AddDate(0, 0, -i)
		cells = append(cells, CalendarCell{Date: d, Key: NewDateKey(d), IsCurrentMonth: false})
	}

	for day := 1; day <= daysInMonth; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		cells = append(cells, CalendarCell{Date: d, Key: NewDateKey(d), IsCurrentMonth: true})
	}

	for next := 1; len(cells) < GridSize; next++ {
		d := first.AddDate(0, 0, daysInMonth-1+next)
		cells = append(cells, CalendarCell{Date: d, Key: NewDateKey(d), IsCurrentMonth: false})
	}

	return cells
}

// CurrentMonthDays counts the cells belonging to the displayed month itself.
func CurrentMonthDays(cells []CalendarCell) int {
	n := 0
	for _, c := range cells {
		if c.IsCurrentMonth {
			n++
		}
	}
	return n
}
