package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rsvp/internal/config"
	"github.com/roach88/rsvp/internal/testutil"
)

func TestOpen_AppliesPragmas(t *testing.T) {
	s := createTestStore(t)

	require.NoError(t, s.verifyPragma("journal_mode", "wal"))
	require.NoError(t, s.verifyPragma("foreign_keys", "1"))
	require.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "rsvp.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.FileExists(t, path)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.SaveSettings(context.Background(), config.DefaultSettings(), at(0)))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	_, ok, err := s2.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, ok, "data survives reopen")
}

func TestSettings_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, ok, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := config.Settings{Rate: 425, FontSize: 60, Highlight: false, FixationMarker: true}
	require.NoError(t, s.SaveSettings(ctx, want, at(0)))

	got, ok, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	want.Rate = 500
	require.NoError(t, s.SaveSettings(ctx, want, at(1)))
	got, _, err = s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.Rate, "second save overwrites")
}

func TestPosition_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	hash := DocumentHash("some text")

	_, ok, err := s.LoadPosition(ctx, hash)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SavePosition(ctx, Position{DocHash: hash, Index: 12, Total: 40, UpdatedAt: at(5)}))
	require.NoError(t, s.SavePosition(ctx, Position{DocHash: hash, Index: 20, Total: 40, UpdatedAt: at(9)}))

	got, ok, err := s.LoadPosition(ctx, hash)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Position{DocHash: hash, Index: 20, Total: 40, UpdatedAt: at(9)}, got)
}

func TestSessions_Lifecycle(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := testutil.NewFixedIDGenerator("session-1").Generate()

	sess := Session{
		ID:         id,
		DocHash:    DocumentHash("doc"),
		Title:      "doc.txt",
		StartIndex: 3,
		Total:      100,
		Rate:       300,
		StartedAt:  at(0),
	}
	require.NoError(t, s.StartSession(ctx, sess))
	require.NoError(t, s.StartSession(ctx, sess), "duplicate start is ignored")

	open, err := s.ReadSession(ctx, id)
	require.NoError(t, err)
	assert.False(t, open.Finished())
	assert.Equal(t, 3, open.EndIndex, "end starts at start")

	require.NoError(t, s.FinishSession(ctx, id, 57, 350, at(60)))

	done, err := s.ReadSession(ctx, id)
	require.NoError(t, err)
	assert.True(t, done.Finished())
	assert.Equal(t, 57, done.EndIndex)
	assert.Equal(t, 350.0, done.Rate)
	assert.Equal(t, at(60), done.EndedAt)
	assert.Equal(t, at(0), done.StartedAt)
}

func TestSessions_Errors(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	assert.Error(t, s.StartSession(ctx, Session{}))
	assert.ErrorIs(t, s.FinishSession(ctx, "missing", 0, 300, at(0)), ErrNotFound)

	_, err := s.ReadSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSessions_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.StartSession(ctx, Session{ID: id, DocHash: "h", Total: 1, Rate: 300, StartedAt: at(i)}))
	}
	// Same timestamp as "c": ties break on id.
	require.NoError(t, s.StartSession(ctx, Session{ID: "d", DocHash: "h", Total: 1, Rate: 300, StartedAt: at(2)}))

	all, err := s.ListSessions(ctx, 0)
	require.NoError(t, err)
	ids := make([]string, len(all))
	for i, sess := range all {
		ids[i] = sess.ID
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids)

	two, err := s.ListSessions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestListSessions_Empty(t *testing.T) {
	s := createTestStore(t)
	got, err := s.ListSessions(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDocumentHash(t *testing.T) {
	assert.Equal(t, DocumentHash("caf\u00e9"), DocumentHash("cafe\u0301"), "NFC-equivalent texts share a hash")
	assert.NotEqual(t, DocumentHash("a"), DocumentHash("b"))
	assert.Len(t, DocumentHash(""), 64)
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
