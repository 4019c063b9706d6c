package text

import (
	"strings"
	"unicode"
)

// WordSplit is the display form of a token: its letters and digits split
// around the highlighted character.
type WordSplit struct {
	Before    string `json:"before"`
	Highlight string `json:"highlight"`
	After     string `json:"after"`
}

// String joins the three parts back into the cleaned word.
func (w WordSplit) String() string {
	return w.Before + w.Highlight + w.After
}

// Clean removes every rune that is not a letter or digit.
func Clean(token string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, token)
}

// HighlightOffset returns the rune offset into Clean(token) of the Optimal
// Recognition Point.
//
//	length <= 2 -> 0
//	length == 3 -> 1
//	otherwise   -> (length-1)/2
//
// Even lengths lean toward the earlier of the two middle runes, so "to"
// highlights 't' and "word" highlights 'o'.
func HighlightOffset(token string) int {
	n := len([]rune(Clean(token)))
	switch {
	case n <= 2:
		return 0
	case n == 3:
		return 1
	default:
		return (n - 1) / 2
	}
}

// Split partitions the cleaned token around its highlight offset.
// Punctuation, including leading punctuation, is not part of any field.
// A token with no letters or digits yields an empty WordSplit.
func Split(token string) WordSplit {
	clean := []rune(Clean(token))
	offset := HighlightOffset(token)
	if offset >= len(clean) {
		return WordSplit{Before: string(clean)}
	}
	return WordSplit{
		Before:    string(clean[:offset]),
		Highlight: string(clean[offset]),
		After:     string(clean[offset+1:]),
	}
}
