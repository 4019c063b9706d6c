// Package store provides SQLite-backed persistence for the reader's
// collaborators: settings, per-document positions, and a session log.
//
// The playback engine never touches the store. The CLI reads settings and a
// saved position before playback and writes them back afterwards.
//
// # Tables
//
//   - settings: one row of display options (rate, font size, highlight, marker)
//   - positions: last index per document, keyed by DocumentHash
//   - sessions: one row per reading session, keyed by a UUIDv7
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Timestamps are stored as Unix milliseconds. Session listings order by
// started_at then id, so rows with identical timestamps still sort the same
// way on every query.
package store
