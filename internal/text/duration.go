package text

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// MinRate is the floor applied to any rate before dividing by it.
const MinRate = 1.0

// Punctuation multipliers applied to the base word duration.
const (
	sentencePause = 2.0
	clausePause   = 1.5
	dashPause     = 1.3
	hyphenPause   = 1.2
	noPause       = 1.0
)

var pauseTable = map[rune]float64{
	'.': sentencePause, '!': sentencePause, '?': sentencePause,
	',': clausePause, ';': clausePause, ':': clausePause,
	'\u2014': dashPause, // —
	'-':      hyphenPause,
}

// closers are stripped from the end of a token before its final punctuation
// is inspected, so `"word,"` and `(end).` pause on the comma and the period.
var closers = map[rune]struct{}{
	'"': {}, '\'': {}, ')': {}, ']': {}, '}': {},
	'\u201d': {}, // ”
	'\u2019': {}, // ’
	'\u00bb': {}, // »
	'\u203a': {}, // ›
}

// Multiplier returns the pause factor for a token's trailing punctuation.
func Multiplier(token string) float64 {
	trimmed := strings.TrimRightFunc(token, func(r rune) bool {
		_, ok := closers[r]
		return ok
	})
	if trimmed == "" {
		return noPause
	}
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	if m, ok := pauseTable[last]; ok {
		return m
	}
	return noPause
}

// BaseDuration returns 60000/wpm milliseconds, with wpm clamped by ClampRate.
func BaseDuration(wpm float64) float64 {
	return 60000 / ClampRate(wpm)
}

// Duration returns how many milliseconds token stays on screen at wpm.
// The result is not rounded.
func Duration(token string, wpm float64) float64 {
	return BaseDuration(wpm) * Multiplier(token)
}

// Millis converts a fractional millisecond count to a time.Duration.
func Millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// ClampRate maps non-finite or sub-minimum rates to MinRate so that no
// division produces an infinite or negative duration. Upper bounds are the
// caller's concern.
func ClampRate(wpm float64) float64 {
	if math.IsNaN(wpm) || math.IsInf(wpm, 0) || wpm < MinRate {
		return MinRate
	}
	return wpm
}
