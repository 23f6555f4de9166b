package domain

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrInvalidDateKey  = errors.New("invalid date key (must be YYYY-MM-DD)")
	ErrInvalidMonthKey = errors.New("invalid month key (must be YYYY-MM)")
)

var dateKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)
var monthKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

const (
	dateKeyLayout  = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// DateKey identifies a calendar day. The zero-padded YYYY-MM-DD form is an
// invariant the rest of the system leans on: lexicographic order over keys
// equals chronological order over days, which is what makes the streak walk
// in StatsService correct. Time-of-day never participates.
type DateKey string

// MonthKey identifies a calendar month (YYYY-MM). Used for the per-month notes.
type MonthKey string

// NewDateKey normalizes a time value to its calendar day.
// Two times on the same day always map to the same key.
func NewDateKey(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// NewMonthKey normalizes a time value to its calendar month.
func NewMonthKey(t time.Time) MonthKey {
	return MonthKey(t.Format(monthKeyLayout))
}

// ParseDateKey validates and resolves a key back to midnight UTC of its day.
func ParseDateKey(key DateKey) (time.Time, error) {
	if !dateKeyRegex.MatchString(string(key)) {
		return time.Time{}, ErrInvalidDateKey
	}
	t, err := time.Parse(dateKeyLayout, string(key))
	if err != nil {
		return time.Time{}, ErrInvalidDateKey
	}
	return t, nil
}

func (k DateKey) Valid() bool {
	_, err := ParseDateKey(k)
	return err == nil
}

func (k MonthKey) Valid() bool {
	if !monthKeyRegex.MatchString(string(k)) {
		return false
	}
	_, err := time.Parse(monthKeyLayout, string(k))
	return err == nil
}

// Month returns the MonthKey the day belongs to.
func (k DateKey) Month() MonthKey {
	if len(k) < len(monthKeyLayout) {
		return ""
	}
	return MonthKey(k[:len(monthKeyLayout)])
}
