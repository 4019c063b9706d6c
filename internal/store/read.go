package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rsvp/internal/config"
)

// ErrNotFound is returned when a row addressed by key does not exist.
var ErrNotFound = errors.New("not found")

// LoadSettings returns the saved settings. It reports false if none have
// been saved yet.
func (s *Store) LoadSettings(ctx context.Context) (config.Settings, bool, error) {
	var st config.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT rate, font_size, highlight, fixation_marker
		FROM settings WHERE id = 1
	`).Scan(&st.Rate, &st.FontSize, &st.Highlight, &st.FixationMarker)
	if errors.Is(err, sql.ErrNoRows) {
		return config.Settings{}, false, nil
	}
	if err != nil {
		return config.Settings{}, false, fmt.Errorf("load settings: %w", err)
	}
	return st, true, nil
}

// LoadPosition returns the saved position for docHash. It reports false if
// the document has not been read before.
func (s *Store) LoadPosition(ctx context.Context, docHash string) (Position, bool, error) {
	var (
		p         Position
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT doc_hash, idx, total, updated_at
		FROM positions WHERE doc_hash = ?
	`, docHash).Scan(&p.DocHash, &p.Index, &p.Total, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, fmt.Errorf("load position: %w", err)
	}
	p.UpdatedAt = fromMillis(updatedAt)
	return p, true, nil
}

// ReadSession returns the session with the given ID, or ErrNotFound.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	rows, err := s.db.QueryContext(ctx, sessionSelect+`WHERE id = ?`, id)
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	if len(sessions) == 0 {
		return Session{}, fmt.Errorf("read session %s: %w", id, ErrNotFound)
	}
	return sessions[0], nil
}

// ListSessions returns up to limit sessions, newest first.
// A non-positive limit returns all sessions.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx,
		sessionSelect+`ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

const sessionSelect = `
	SELECT id, doc_hash, title, start_index, end_index, total, rate, started_at, ended_at
	FROM sessions
`

func scanSessions(rows *sql.Rows) ([]Session, error) {
	sessions := []Session{}
	for rows.Next() {
		var (
			sess      Session
			startedAt int64
			endedAt   sql.NullInt64
		)
		if err := rows.Scan(
			&sess.ID,
			&sess.DocHash,
			&sess.Title,
			&sess.StartIndex,
			&sess.EndIndex,
			&sess.Total,
			&sess.Rate,
			&startedAt,
			&endedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.StartedAt = fromMillis(startedAt)
		if endedAt.Valid {
			sess.EndedAt = fromMillis(endedAt.Int64)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}
