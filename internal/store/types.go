package store

import (
	"time"

	"github.com/google/uuid"
)

// Position is the last index read in a document.
type Position struct {
	DocHash   string    `json:"doc_hash"`
	Index     int       `json:"index"`
	Total     int       `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session records one reading session.
type Session struct {
	ID         string    `json:"id"`
	DocHash    string    `json:"doc_hash"`
	Title      string    `json:"title"`
	StartIndex int       `json:"start_index"`
	EndIndex   int       `json:"end_index"`
	Total      int       `json:"total"`
	Rate       float64   `json:"rate"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at,omitzero"` // zero while the session is open
}

// Finished reports whether FinishSession has been called.
func (s Session) Finished() bool {
	return !s.EndedAt.IsZero()
}

// IDGenerator generates session IDs.
// Implemented by UUIDv7Generator (production) and testutil.FixedIDGenerator (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session IDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
