package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/rsvp/internal/config"
)

// SaveSettings upserts the single settings row.
func (s *Store) SaveSettings(ctx context.Context, st config.Settings, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, rate, font_size, highlight, fixation_marker, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			rate = excluded.rate,
			font_size = excluded.font_size,
			highlight = excluded.highlight,
			fixation_marker = excluded.fixation_marker,
			updated_at = excluded.updated_at
	`,
		st.Rate,
		st.FontSize,
		st.Highlight,
		st.FixationMarker,
		toMillis(now),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// SavePosition upserts the position for p.DocHash.
func (s *Store) SavePosition(ctx context.Context, p Position) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (doc_hash, idx, total, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(doc_hash) DO UPDATE SET
			idx = excluded.idx,
			total = excluded.total,
			updated_at = excluded.updated_at
	`,
		p.DocHash,
		p.Index,
		p.Total,
		toMillis(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save position: %w", err)
	}
	return nil
}

// StartSession inserts an open session row.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
func (s *Store) StartSession(ctx context.Context, sess Session) error {
	if sess.ID == "" {
		return fmt.Errorf("start session: empty id")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions
		(id, doc_hash, title, start_index, end_index, total, rate, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.ID,
		sess.DocHash,
		sess.Title,
		sess.StartIndex,
		sess.StartIndex,
		sess.Total,
		sess.Rate,
		toMillis(sess.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// FinishSession records where a session ended and at what rate.
func (s *Store) FinishSession(ctx context.Context, id string, endIndex int, rate float64, endedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET end_index = ?, rate = ?, ended_at = ?
		WHERE id = ?
	`,
		endIndex,
		rate,
		toMillis(endedAt),
		id,
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish session %s: %w", id, ErrNotFound)
	}
	return nil
}
