package harness

import (
	"fmt"
	"time"

	"github.com/roach88/rsvp/internal/engine"
	"github.com/roach88/rsvp/internal/progress"
	"github.com/roach88/rsvp/internal/testutil"
	"github.com/roach88/rsvp/internal/text"
)

// Harness drives one engine on a fake clock and records what it emits.
// It is the engine's Hooks and RateProvider.
type Harness struct {
	clock  *testutil.FakeClock
	engine *engine.Engine
	rate   float64
	result *Result
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Create a fake clock and an engine hooked to the harness
// 2. Init the engine with scenario.Text
// 3. Execute steps in order
// 4. Record the final state and evaluate assertions
//
// An error is returned only for scenarios that cannot be executed; failed
// assertions are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	rate := scenario.Rate
	if rate == 0 {
		rate = engine.DefaultRate
	}

	h := &Harness{
		clock:  testutil.NewFakeClock(),
		rate:   rate,
		result: NewResult(),
	}
	h.engine = engine.New(h.clock, engine.WithHooks(h))
	h.engine.Init(scenario.Text)

	for i, step := range scenario.Steps {
		if err := h.execute(step); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	h.result.Final = FinalState{
		Mode:  h.engine.Mode().String(),
		Index: h.engine.Index(),
	}

	for _, a := range scenario.Assertions {
		evaluateAssertion(h.result, a)
	}

	return h.result, nil
}

func (h *Harness) execute(step Step) error {
	switch step.Action {
	case ActionPlay:
		h.engine.Play()
	case ActionPause:
		h.engine.Pause()
	case ActionStop:
		h.engine.Stop()
	case ActionRestart:
		h.engine.Restart()
	case ActionEnd:
		h.engine.GoToEnd()
	case ActionSeek:
		h.engine.SeekTo(step.Index)
	case ActionRate:
		h.rate = step.Rate
	case ActionAdvance:
		h.clock.Advance(time.Duration(step.Ms) * time.Millisecond)
	case ActionStall:
		h.clock.Stall(time.Duration(step.Ms) * time.Millisecond)
	case ActionInit:
		h.engine.Init(step.Text)
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}

func (h *Harness) now() int64 {
	return h.clock.Elapsed().Milliseconds()
}

// OnWordChange implements engine.Hooks.
func (h *Harness) OnWordChange(w text.WordSplit) {
	h.result.Trace = append(h.result.Trace, TraceEvent{
		Type: EventWord,
		AtMs: h.now(),
		Word: &w,
	})
}

// OnProgress implements engine.Hooks. Progress is attached to the word event
// it follows.
func (h *Harness) OnProgress(p progress.Progress) {
	if n := len(h.result.Trace); n > 0 {
		last := &h.result.Trace[n-1]
		if last.Type == EventWord && last.Progress == nil {
			last.Progress = &p
		}
	}
}

// OnComplete implements engine.Hooks.
func (h *Harness) OnComplete() {
	h.result.Trace = append(h.result.Trace, TraceEvent{
		Type: EventComplete,
		AtMs: h.now(),
	})
}

// CurrentRate implements engine.RateProvider.
func (h *Harness) CurrentRate() float64 {
	return h.rate
}
