// Package progress computes the reading-progress readout shown beside the
// current word: percentage, word ordinal, and time remaining.
package progress

import (
	"fmt"
	"math"

	"github.com/roach88/rsvp/internal/text"
)

// Progress is the readout for a playback position.
type Progress struct {
	Percentage int    `json:"percentage"`
	Current    int    `json:"current"` // 1-based ordinal of the displayed word
	Total      int    `json:"total"`
	Remaining  string `json:"remaining"` // m:ss
}

// Compute returns the progress for index within a sequence of length words
// read at wpm. A zero-length sequence reports 0%.
//
// Remaining time counts the words from index to the end at the flat base
// rate; punctuation pauses are not included.
func Compute(index, length int, wpm float64) Progress {
	p := Progress{
		Current: index + 1,
		Total:   length,
	}
	if length > 0 {
		p.Percentage = int(math.Round(100 * float64(index) / float64(length)))
	}
	remaining := float64(length-index) / text.ClampRate(wpm) * 60
	p.Remaining = FormatRemaining(remaining)
	return p
}

// FormatRemaining renders seconds as m:ss. Seconds are rounded, and a value
// that rounds up to a full minute rolls over ("1:00", never "0:60").
// Negative input renders as "0:00".
func FormatRemaining(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int64(math.Round(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
