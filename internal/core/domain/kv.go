package domain

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

// Storage keys. Everything the widget persists lives under one of these four
// keys; values are JSON except the view date (ISO-8601 datetime) and the dark
// flag ("true"/"false").
const (
	KeyCompletedDays = "calendar:completed_days"
	KeyMonthlyNotes  = "calendar:monthly_notes"
	KeyViewDate      = "calendar:view_date"
	KeyDarkMode      = "calendar:dark_mode"
)

// KVStore is the persistence port: a synchronous string-keyed store. Services
// treat it as the sole source of durability and substitute per-key defaults on
// any read failure.
type KVStore interface {
	// Get retrieves the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set durably stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
