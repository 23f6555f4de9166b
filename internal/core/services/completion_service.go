package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/comitanigiacomo/kanso-calendar/internal/core/domain"
)

// ConfirmFunc gates destructive bulk operations. The presentation layer
// supplies one that asks the user; returning false declines.
type ConfirmFunc func(prompt string) bool

// BulkOutcome reports how a guarded bulk mutation ended. Declining a
// confirmation is an outcome, not an error.
type BulkOutcome int

const (
	BulkApplied BulkOutcome = iota
	BulkNothingToDo
	BulkDeclined
)

// CompletionService owns the completion map and the monthly notes. State is
// loaded once from the KV store and every mutation persists before returning.
// Persistence failures degrade to session-only state: the in-memory mutation
// stands and the error is logged, never surfaced to the caller.
type CompletionService struct {
	store   domain.KVStore
	confirm ConfirmFunc

	completions domain.CompletionMap
	notes       domain.NoteMap
}

func NewCompletionService(ctx context.Context, store domain.KVStore, confirm ConfirmFunc) *CompletionService {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}

	s := &CompletionService{
		store:       store,
		confirm:     confirm,
		completions: domain.CompletionMap{},
		notes:       domain.NoteMap{},
	}
	s.load(ctx)
	return s
}

// load reads persisted state. A missing key means first run; a corrupt value
// falls back to that key's default so a bad store never blocks startup.
func (s *CompletionService) load(ctx context.Context) {
	if raw, err := s.store.Get(ctx, domain.KeyCompletedDays); err == nil {
		var m domain.CompletionMap
		if jsonErr := json.Unmarshal([]byte(raw), &m); jsonErr == nil && m != nil {
			s.completions = m
		} else {
			log.Printf("[STORE] Corrupt completion data, starting empty: %v", jsonErr)
		}
	} else if !errors.Is(err, domain.ErrKeyNotFound) {
		log.Printf("[STORE] Failed to read completions: %v", err)
	}

	if raw, err := s.store.Get(ctx, domain.KeyMonthlyNotes); err == nil {
		var n domain.NoteMap
		if jsonErr := json.Unmarshal([]byte(raw), &n); jsonErr == nil && n != nil {
			s.notes = n
		} else {
			log.Printf("[STORE] Corrupt notes data, starting empty: %v", jsonErr)
		}
	} else if !errors.Is(err, domain.ErrKeyNotFound) {
		log.Printf("[STORE] Failed to read notes: %v", err)
	}
}

// Completed reports whether the given day is marked done.
func (s *CompletionService) Completed(key domain.DateKey) bool {
	return s.completions[key]
}

// Completions returns a copy of the full completion map.
func (s *CompletionService) Completions() domain.CompletionMap {
	return s.completions.Clone()
}

// Toggle flips completion for one day. A completed day has its entry removed
// rather than stored as false.
func (s *CompletionService) Toggle(ctx context.Context, key domain.DateKey) {
	if s.completions[key] {
		delete(s.completions, key)
	} else {
		s.completions[key] = true
	}
	s.persistCompletions(ctx)
}

// MarkAllVisible completes every current-month cell of the given grid.
// Idempotent: when nothing changes no write is issued.
func (s *CompletionService) MarkAllVisible(ctx context.Context, cells []domain.CalendarCell) BulkOutcome {
	changed := false
	for _, c := range cells {
		if c.IsCurrentMonth && !s.completions[c.Key] {
			s.completions[c.Key] = true
			changed = true
		}
	}
	if !changed {
		return BulkNothingToDo
	}
	s.persistCompletions(ctx)
	return BulkApplied
}

// ResetMonth removes completion for every current-month cell. It is
// destructive and irreversible, so it runs only after confirmation; an empty
// month short-circuits before the prompt.
func (s *CompletionService) ResetMonth(ctx context.Context, cells []domain.CalendarCell) BulkOutcome {
	toRemove := make([]domain.DateKey, 0)
	for _, c := range cells {
		if c.IsCurrentMonth && s.completions[c.Key] {
			toRemove = append(toRemove, c.Key)
		}
	}
	if len(toRemove) == 0 {
		return BulkNothingToDo
	}

	if !s.confirm("Reset all completions for this month? This cannot be undone.") {
		return BulkDeclined
	}

	for _, key := range toRemove {
		delete(s.completions, key)
	}
	s.persistCompletions(ctx)
	return BulkApplied
}

// Export serializes the full state as the snapshot schema.
func (s *CompletionService) Export() ([]byte, error) {
	return domain.Snapshot{
		CompletedDays: s.completions.Clone(),
		MonthlyNotes:  s.notes.Clone(),
	}.Encode()
}

// Import validates raw snapshot data and, after confirmation, replaces the
// current state wholesale. All-or-nothing: on any error or a declined prompt
// the existing state is untouched.
func (s *CompletionService) Import(ctx context.Context, raw []byte) (BulkOutcome, error) {
	snap, err := domain.ParseSnapshot(raw)
	if err != nil {
		return BulkNothingToDo, err
	}

	if !s.confirm("Importing replaces all current data. Continue?") {
		return BulkDeclined, nil
	}

	s.completions = snap.CompletedDays
	s.notes = snap.MonthlyNotes
	s.persistCompletions(ctx)
	s.persistNotes(ctx)
	return BulkApplied, nil
}

// Note returns the free-text note for a month, empty when none is set.
func (s *CompletionService) Note(key domain.MonthKey) string {
	return s.notes[key]
}

// SetNote upserts the note for a month; an empty text clears it.
func (s *CompletionService) SetNote(ctx context.Context, key domain.MonthKey, text string) {
	if text == "" {
		delete(s.notes, key)
	} else {
		s.notes[key] = text
	}
	s.persistNotes(ctx)
}

func (s *CompletionService) persistCompletions(ctx context.Context) {
	data, err := json.Marshal(s.completions)
	if err != nil {
		log.Printf("[STORE] Failed to encode completions: %v", err)
		return
	}
	if err := s.store.Set(ctx, domain.KeyCompletedDays, string(data)); err != nil {
		log.Printf("[STORE] Failed to persist completions, keeping session state: %v", err)
	}
}

func (s *CompletionService) persistNotes(ctx context.Context) {
	data, err := json.Marshal(s.notes)
	if err != nil {
		log.Printf("[STORE] Failed to encode notes: %v", err)
		return
	}
	if err := s.store.Set(ctx, domain.KeyMonthlyNotes, string(data)); err != nil {
		log.Printf("[STORE] Failed to persist notes, keeping session state: %v", err)
	}
}
