package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rsvp/internal/config"
	"github.com/roach88/rsvp/internal/text"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTokensCommandText(t *testing.T) {
	path := writeDoc(t, "Hello, world. See [12] https://example.com now")

	buf := &bytes.Buffer{}
	cmd := NewTokensCommand(&RootOptions{Format: "text", DBPath: filepath.Join(t.TempDir(), "rsvp.db")})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, "citations and URLs are removed")
	assert.Equal(t, "0\tHello,\tHe[l]lo\t300ms", lines[0])
	assert.Equal(t, "1\tworld.\two[r]ld\t400ms", lines[1])
	assert.Equal(t, "2\tSee\tS[e]e\t200ms", lines[2])
	assert.Equal(t, "3\tnow\tn[o]w\t200ms", lines[3])
}

func TestTokensCommandJSON(t *testing.T) {
	path := writeDoc(t, "Stop. Go")

	buf := &bytes.Buffer{}
	cmd := NewTokensCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--rate", "600"})
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string      `json:"status"`
		Data   []TokenInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Stop.", resp.Data[0].Token)
	assert.Equal(t, text.WordSplit{Before: "S", Highlight: "t", After: "op"}, resp.Data[0].Split)
	assert.Equal(t, 200.0, resp.Data[0].DurationMs)
	assert.Equal(t, 100.0, resp.Data[1].DurationMs)
}

func TestTokensCommandStdin(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTokensCommand(&RootOptions{Format: "text", DBPath: filepath.Join(t.TempDir(), "rsvp.db")})
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader("one two"))
	cmd.SetArgs([]string{"-"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestTokensCommandErrors(t *testing.T) {
	cmd := NewTokensCommand(&RootOptions{Format: "text", DBPath: filepath.Join(t.TempDir(), "rsvp.db")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"/nonexistent/doc.txt"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	cmd = NewTokensCommand(&RootOptions{Format: "text", DBPath: filepath.Join(t.TempDir(), "rsvp.db")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{writeDoc(t, "x"), "--rate", "0"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestTokensCommandUsesSavedRate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rsvp.db")
	st := openTestStore(t, dbPath)
	settings := config.DefaultSettings()
	settings.Rate = 600
	require.NoError(t, st.SaveSettings(context.Background(), settings, time.Now()))

	buf := &bytes.Buffer{}
	cmd := NewTokensCommand(&RootOptions{Format: "text", DBPath: dbPath})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeDoc(t, "one")})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "0	one	o[n]e	100ms\n", buf.String())
}
