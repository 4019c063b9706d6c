// Package text turns raw prose into the word sequence an RSVP reader shows.
//
// It covers three pure computations:
//   - Tokenize: strip citation markers and absolute URLs, then split on whitespace
//   - HighlightOffset / Split: the Optimal Recognition Point for a word and the
//     before/highlight/after partition of its cleaned form
//   - Duration: how long a word stays on screen at a given rate, stretched by
//     its trailing punctuation
//
// Nothing here keeps state. The engine package owns the token sequence and the
// clock; this package only answers questions about individual strings.
package text
