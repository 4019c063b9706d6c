package text

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// citationPattern matches bracketed numeric references such as "[12]".
	citationPattern = regexp.MustCompile(`\[\d+\]`)

	// urlPattern matches absolute URLs and bare "www." hosts up to the next
	// whitespace. A "www." host must start a whitespace-separated token, so
	// text like "foo.www.bar" is left intact. Group 1 keeps the whitespace
	// in front of a host.
	urlPattern = regexp.MustCompile(`https?://\S+|(^|\s)www\.\S+`)
)

// Tokenize splits raw text into the words to display.
//
// Citation markers and URLs are removed before splitting so that they never
// reach the screen. Text is NFC-normalised first so that a word typed with
// combining marks counts the same characters as its precomposed form.
//
// Empty or whitespace-only input yields an empty, non-nil slice.
func Tokenize(raw string) []string {
	s := norm.NFC.String(raw)
	s = citationPattern.ReplaceAllString(s, "")
	s = stripURLs(s)
	return strings.Fields(s)
}

func stripURLs(s string) string {
	return urlPattern.ReplaceAllString(s, "${1}")
}
