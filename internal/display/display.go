// Package display renders engine output for a terminal.
//
// The highlighted rune of every word lands on the same column so the
// reader's eye never has to move. An optional fixation marker line points
// at that column.
package display

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/roach88/rsvp/internal/progress"
	"github.com/roach88/rsvp/internal/text"
)

// ANSI sequences used for the highlight.
const (
	ansiHighlight = "\x1b[1;31m"
	ansiReset     = "\x1b[0m"
	clearLine     = "\r\x1b[2K"
)

// DefaultWidth is the line width used when Renderer.Width is not positive.
const DefaultWidth = 40

// Renderer formats words and status lines.
type Renderer struct {
	// Width is the line width; the highlight sits at column Width/2.
	Width int

	// Color wraps the highlight rune in ANSI bold red.
	Color bool

	// FixationMarker enables Marker output.
	FixationMarker bool
}

func (r Renderer) pivot() int {
	w := r.Width
	if w <= 0 {
		w = DefaultWidth
	}
	return w / 2
}

// Word returns w laid out so its highlight is at the pivot column.
// Words whose prefix is longer than the pivot are not truncated; they start
// at column 0 and the highlight drifts right.
//
// Padding counts runes, not terminal cells. Double-width characters (CJK,
// most emoji) and combining marks therefore put the highlight off the
// pivot by the difference between their rune count and their cell width.
func (r Renderer) Word(w text.WordSplit) string {
	pad := max(r.pivot()-utf8.RuneCountInString(w.Before), 0)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(w.Before)
	if r.Color && w.Highlight != "" {
		b.WriteString(ansiHighlight)
		b.WriteString(w.Highlight)
		b.WriteString(ansiReset)
	} else {
		b.WriteString(w.Highlight)
	}
	b.WriteString(w.After)
	return b.String()
}

// Marker returns the fixation marker line, or "" if disabled.
func (r Renderer) Marker() string {
	if !r.FixationMarker {
		return ""
	}
	return strings.Repeat(" ", r.pivot()) + "|"
}

// Status formats the progress readout, e.g. "42% 10/24 0:03 300wpm playing".
func (r Renderer) Status(p progress.Progress, wpm float64, mode string) string {
	return fmt.Sprintf("%d%% %d/%d %s %.0fwpm %s", p.Percentage, p.Current, p.Total, p.Remaining, wpm, mode)
}

// Frame returns the terminal bytes that redraw the word line in place.
func (r Renderer) Frame(w text.WordSplit, status string) string {
	return clearLine + r.Word(w) + "    " + status
}
