package harness

import (
	"fmt"
	"strings"
)

// evaluateAssertion checks one assertion and records any failure on r.
func evaluateAssertion(r *Result, a Assertion) {
	switch a.Type {
	case AssertWordOrder:
		if err := assertWordOrder(r.Words(), a.Words); err != nil {
			r.AddError(err.Error())
		}
	case AssertWordCount:
		if got := r.Count(EventWord); got != a.Count {
			r.AddError(fmt.Sprintf("word_count: expected %d words, got %d", a.Count, got))
		}
	case AssertCompleteCount:
		if got := r.Count(EventComplete); got != a.Count {
			r.AddError(fmt.Sprintf("complete_count: expected %d completions, got %d", a.Count, got))
		}
	case AssertFinalState:
		if r.Final.Mode != a.Mode || r.Final.Index != a.Index {
			r.AddError(fmt.Sprintf("final_state: expected %s at %d, got %s at %d",
				a.Mode, a.Index, r.Final.Mode, r.Final.Index))
		}
	default:
		r.AddError(fmt.Sprintf("unknown assertion type %q", a.Type))
	}
}

// assertWordOrder checks that want is a subsequence of got.
func assertWordOrder(got, want []string) error {
	i := 0
	for _, w := range got {
		if i < len(want) && w == want[i] {
			i++
		}
	}
	if i < len(want) {
		return fmt.Errorf("word_order: %q not found after %s (trace: %s)",
			want[i], quoteAll(want[:i]), strings.Join(got, " "))
	}
	return nil
}

func quoteAll(words []string) string {
	if len(words) == 0 {
		return "start"
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return strings.Join(quoted, ", ")
}
