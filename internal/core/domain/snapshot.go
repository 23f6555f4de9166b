package domain

import (
	"encoding/json"
	"errors"
)

var (
	ErrMalformedImport = errors.New("import data is not valid JSON")
	ErrImportSchema    = errors.New("import data is missing completedDays or monthlyNotes")
)

// CompletionMap records which days are done. Presence of a key means
// completed; un-completing a day deletes the entry rather than storing false.
type CompletionMap map[DateKey]bool

// NoteMap holds one free-text note per calendar month.
type NoteMap map[MonthKey]string

// Snapshot is the export file format and the expected import schema:
// exactly the completion map and the monthly notes, nothing else.
type Snapshot struct {
	CompletedDays CompletionMap `json:"completedDays"`
	MonthlyNotes  NoteMap       `json:"monthlyNotes"`
}

// Clone deep-copies the map so callers can hand out state without aliasing.
func (m CompletionMap) Clone() CompletionMap {
	out := make(CompletionMap, len(m))
	for k, v := range m {
		if v {
			out[k] = true
		}
	}
	return out
}

func (n NoteMap) Clone() NoteMap {
	out := make(NoteMap, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}

// Encode serializes the snapshot for export. The two maps always marshal as
// JSON objects (never null) so a round trip through ParseSnapshot succeeds
// even when there is no data yet.
func (s Snapshot) Encode() ([]byte, error) {
	if s.CompletedDays == nil {
		s.CompletedDays = CompletionMap{}
	}
	if s.MonthlyNotes == nil {
		s.MonthlyNotes = NoteMap{}
	}
	return json.MarshalIndent(s, "", "  ")
}

// ParseSnapshot validates raw import data. It distinguishes unparseable JSON
// from JSON of the wrong shape: both top-level fields must be present and
// object-typed. Entries with malformed keys are dropped rather than failing
// the whole import.
func ParseSnapshot(raw []byte) (Snapshot, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		// Valid JSON that simply is not an object ([1,2,3], "hello", 42,
		// true) is a shape problem, not a parse problem.
		if json.Valid(raw) {
			return Snapshot{}, ErrImportSchema
		}
		return Snapshot{}, ErrMalformedImport
	}

	days, ok := probe["completedDays"]
	if !ok || !isJSONObject(days) {
		return Snapshot{}, ErrImportSchema
	}
	notes, ok := probe["monthlyNotes"]
	if !ok || !isJSONObject(notes) {
		return Snapshot{}, ErrImportSchema
	}

	var rawDays map[DateKey]bool
	if err := json.Unmarshal(days, &rawDays); err != nil {
		return Snapshot{}, ErrImportSchema
	}
	var rawNotes map[MonthKey]string
	if err := json.Unmarshal(notes, &rawNotes); err != nil {
		return Snapshot{}, ErrImportSchema
	}

	snap := Snapshot{
		CompletedDays: make(CompletionMap, len(rawDays)),
		MonthlyNotes:  make(NoteMap, len(rawNotes)),
	}
	for k, v := range rawDays {
		if v && k.Valid() {
			snap.CompletedDays[k] = true
		}
	}
	for k, v := range rawNotes {
		if k.Valid() {
			snap.MonthlyNotes[k] = v
		}
	}
	return snap, nil
}

func isJSONObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '{'
		}
	}
	return false
}
