package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rsvp/internal/store"
	"github.com/roach88/rsvp/internal/testutil"
)

type readOutput struct {
	Events  []readEvent
	Summary ReadSummary
}

// runReadJSON runs the read command in JSON mode and splits its output into
// events and the final summary.
func runReadJSON(t *testing.T, dbPath, input string, args ...string) readOutput {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := newReadCommand(&RootOptions{Format: "json", DBPath: dbPath}, testutil.NewFixedIDGenerator("session-1"))
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	var out readOutput
	for _, line := range lines[:len(lines)-1] {
		var ev readEvent
		require.NoError(t, json.Unmarshal([]byte(line), &ev), line)
		out.Events = append(out.Events, ev)
	}

	var resp struct {
		Status string      `json:"status"`
		Data   ReadSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &resp))
	require.Equal(t, "ok", resp.Status)
	out.Summary = resp.Data
	return out
}

func (o readOutput) words() []string {
	var words []string
	for _, ev := range o.Events {
		if ev.Type == "word" {
			words = append(words, ev.Word.String())
		}
	}
	return words
}

func openTestStore(t *testing.T, dbPath string) *store.Store {
	t.Helper()
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestReadCommandPlaysToEnd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rsvp.db")
	path := writeDoc(t, "one two three")

	out := runReadJSON(t, dbPath, "", path, "--rate", "1000")

	assert.Equal(t, []string{"one", "two", "three"}, out.words())
	assert.Equal(t, "complete", out.Events[len(out.Events)-1].Type)
	assert.Equal(t, 1000.0, out.Events[0].Rate)
	assert.Equal(t, "playing", out.Events[0].Mode)
	assert.Equal(t, 3, out.Events[2].Progress.Current)

	assert.Equal(t, ReadSummary{
		SessionID:  "session-1",
		Title:      "doc",
		StartIndex: 0,
		EndIndex:   3,
		Total:      3,
		Rate:       1000,
	}, out.Summary)

	st := openTestStore(t, dbPath)
	ctx := context.Background()

	pos, ok, err := st.LoadPosition(ctx, store.DocumentHash("one two three"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, pos.Index)

	sess, err := st.ReadSession(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, sess.Finished())
	assert.Equal(t, 3, sess.EndIndex)
}

func TestReadCommandResumesSavedPosition(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rsvp.db")
	doc := "alpha beta gamma delta"
	path := writeDoc(t, doc)

	st := openTestStore(t, dbPath)
	require.NoError(t, st.SavePosition(context.Background(), store.Position{
		DocHash:   store.DocumentHash(doc),
		Index:     2,
		Total:     4,
		UpdatedAt: time.Now(),
	}))

	out := runReadJSON(t, dbPath, "q\n", path, "--paused")
	assert.Equal(t, []string{"gamma"}, out.words())
	assert.Equal(t, "stopped", out.Events[0].Mode)
	assert.Equal(t, 2, out.Summary.StartIndex)
	assert.Equal(t, 2, out.Summary.EndIndex)

	out = runReadJSON(t, dbPath, "q\n", path, "--paused", "--from-start")
	assert.Equal(t, []string{"alpha"}, out.words())
	assert.Equal(t, 0, out.Summary.StartIndex)
}

func TestReadCommandResumePlayingShowsEachWordOnce(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rsvp.db")
	doc := "alpha beta gamma delta"
	path := writeDoc(t, doc)

	st := openTestStore(t, dbPath)
	require.NoError(t, st.SavePosition(context.Background(), store.Position{
		DocHash: store.DocumentHash(doc), Index: 2, Total: 4, UpdatedAt: time.Now(),
	}))

	out := runReadJSON(t, dbPath, "", path, "--rate", "1000")
	assert.Equal(t, []string{"gamma", "delta"}, out.words())
	assert.Equal(t, "playing", out.Events[0].Mode)
	assert.Equal(t, 2, out.Summary.StartIndex)
	assert.Equal(t, 4, out.Summary.EndIndex)
}

func TestReadCommandFinishedDocumentStartsOver(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rsvp.db")
	doc := "alpha beta"
	path := writeDoc(t, doc)

	st := openTestStore(t, dbPath)
	require.NoError(t, st.SavePosition(context.Background(), store.Position{
		DocHash: store.DocumentHash(doc), Index: 2, Total: 2, UpdatedAt: time.Now(),
	}))

	out := runReadJSON(t, dbPath, "", path, "--paused")
	assert.Equal(t, []string{"alpha"}, out.words())
	assert.Equal(t, 0, out.Summary.StartIndex)
}

func TestReadCommandSeekAndRate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rsvp.db")
	path := writeDoc(t, "a b c d")

	out := runReadJSON(t, dbPath, "g 3\n+\n+\nbogus\ng 9\nq\n", path, "--paused")

	assert.Equal(t, []string{"a", "c"}, out.words())
	assert.Equal(t, 2, out.Summary.EndIndex)
	assert.Equal(t, 350.0, out.Summary.Rate)

	var messages []string
	for _, ev := range out.Events {
		if ev.Type == "message" {
			messages = append(messages, ev.Message)
		}
	}
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], `unknown command "bogus"`)
	assert.Contains(t, messages[1], "no word 9")

	st := openTestStore(t, dbPath)
	saved, ok, err := st.LoadSettings(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 350.0, saved.Rate, "rate changes are persisted")
}

func TestReadCommandRateIsClamped(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rsvp.db")
	path := writeDoc(t, "a b")

	out := runReadJSON(t, dbPath, "+\nq\n", path, "--paused", "--rate", "5000")
	assert.Equal(t, 1000.0, out.Summary.Rate)

	out = runReadJSON(t, dbPath, "-\nq\n", path, "--paused", "--rate", "10")
	assert.Equal(t, 100.0, out.Summary.Rate)
}

func TestReadCommandFromStdin(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rsvp.db")

	out := runReadJSON(t, dbPath, "red green", "-", "--rate", "1000")
	assert.Equal(t, []string{"red", "green"}, out.words())
	assert.Equal(t, "stdin", out.Summary.Title)
	assert.Equal(t, 2, out.Summary.EndIndex)
}

func TestReadCommandText(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rsvp.db")
	path := writeDoc(t, "one two")

	buf := &bytes.Buffer{}
	cmd := newReadCommand(&RootOptions{Format: "text", DBPath: dbPath}, testutil.NewFixedIDGenerator(""))
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{path, "--rate", "1000", "--no-color", "--width", "10"})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "     |\n"), "fixation marker first: %q", output)
	assert.Contains(t, output, "\r\x1b[2K    one    0% 1/2 0:00 1000wpm playing")
	assert.NotContains(t, output, "\x1b[1;31m")
	assert.Contains(t, output, "Read 2/2 words of doc at 1000 wpm")
}

func TestReadCommandEmptyDocument(t *testing.T) {
	cmd := newReadCommand(&RootOptions{Format: "text", DBPath: filepath.Join(t.TempDir(), "rsvp.db")}, testutil.NewFixedIDGenerator(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{writeDoc(t, "  [1] https://example.com  ")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no words to read")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
