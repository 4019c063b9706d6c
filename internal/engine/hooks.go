package engine

import (
	"github.com/roach88/rsvp/internal/progress"
	"github.com/roach88/rsvp/internal/text"
)

// DefaultRate is the words-per-minute rate used when no RateProvider is set,
// and for the time estimate Restart and GoToEnd display.
const DefaultRate = 300.0

// Hooks receives engine output. Methods are called synchronously on the
// engine's goroutine; a hook may call back into the engine.
type Hooks interface {
	// OnWordChange is called with the display form of each emitted word.
	OnWordChange(w text.WordSplit)

	// OnProgress is called right after every OnWordChange.
	OnProgress(p progress.Progress)

	// OnComplete is called once when playback runs past the last word.
	OnComplete()
}

// RateProvider supplies the reading rate. It is polled once per step, so a
// change takes effect at the next word boundary.
type RateProvider interface {
	CurrentRate() float64
}

// RateFunc adapts a function to RateProvider.
type RateFunc func() float64

// CurrentRate calls f.
func (f RateFunc) CurrentRate() float64 { return f() }

// HookFuncs adapts optional functions to Hooks and RateProvider.
// Nil fields are skipped; a nil Rate reports DefaultRate.
type HookFuncs struct {
	WordChange func(text.WordSplit)
	Progress   func(progress.Progress)
	Complete   func()
	Rate       func() float64
}

func (h HookFuncs) OnWordChange(w text.WordSplit) {
	if h.WordChange != nil {
		h.WordChange(w)
	}
}

func (h HookFuncs) OnProgress(p progress.Progress) {
	if h.Progress != nil {
		h.Progress(p)
	}
}

func (h HookFuncs) OnComplete() {
	if h.Complete != nil {
		h.Complete()
	}
}

func (h HookFuncs) CurrentRate() float64 {
	if h.Rate == nil {
		return DefaultRate
	}
	return h.Rate()
}
