package harness

import (
	"github.com/roach88/rsvp/internal/progress"
	"github.com/roach88/rsvp/internal/text"
)

// Trace event types.
const (
	EventWord     = "word"
	EventComplete = "complete"
)

// TraceEvent is one engine emission at a virtual time.
type TraceEvent struct {
	Type     string             `json:"type"`
	AtMs     int64              `json:"at_ms"`
	Word     *text.WordSplit    `json:"word,omitempty"`
	Progress *progress.Progress `json:"progress,omitempty"`
}

// FinalState is the engine state after the last step.
type FinalState struct {
	Mode  string `json:"mode"`
	Index int    `json:"index"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: true if every assertion held.
	Pass bool `json:"pass"`

	// Trace contains every emission in order.
	Trace []TraceEvent `json:"trace"`

	// Final is the engine state after the last step.
	Final FinalState `json:"final"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Words returns the cleaned form of every emitted word, in order.
func (r *Result) Words() []string {
	var words []string
	for _, ev := range r.Trace {
		if ev.Type == EventWord && ev.Word != nil {
			words = append(words, ev.Word.String())
		}
	}
	return words
}

// Count returns the number of events of the given type.
func (r *Result) Count(eventType string) int {
	n := 0
	for _, ev := range r.Trace {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}
