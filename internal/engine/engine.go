package engine

import (
	"log/slog"
	"time"

	"github.com/roach88/rsvp/internal/progress"
	"github.com/roach88/rsvp/internal/text"
)

// Engine plays a token sequence one word at a time.
//
// INVARIANTS:
//   - 0 <= index <= len(tokens); index == len(tokens) means playback completed
//   - at most one step is pending on the clock, and only while Playing
//   - a timer callback whose generation is stale never mutates state
type Engine struct {
	clock Clock
	hooks Hooks
	rate  RateProvider

	tokens []string
	index  int
	mode   Mode

	// anchor is when the next word boundary should ideally occur.
	anchor time.Time
	timer  Timer
	gen    uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithHooks sets the output hooks. If h also implements RateProvider and no
// provider was set with WithRateProvider, h supplies the rate.
func WithHooks(h Hooks) Option {
	return func(e *Engine) {
		e.hooks = h
	}
}

// WithRateProvider sets the rate source polled on every step.
func WithRateProvider(r RateProvider) Option {
	return func(e *Engine) {
		e.rate = r
	}
}

// New creates a stopped Engine with an empty sequence, scheduling on clock.
func New(clock Clock, opts ...Option) *Engine {
	e := &Engine{
		clock:  clock,
		tokens: []string{},
		mode:   Stopped,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rate == nil {
		if rp, ok := e.hooks.(RateProvider); ok {
			e.rate = rp
		}
	}

	return e
}

// SetHooks replaces the output hooks.
func (e *Engine) SetHooks(h Hooks) {
	e.hooks = h
}

// SetRateProvider replaces the rate source.
func (e *Engine) SetRateProvider(r RateProvider) {
	e.rate = r
}

// Index returns the current position.
func (e *Engine) Index() int { return e.index }

// Len returns the number of tokens.
func (e *Engine) Len() int { return len(e.tokens) }

// Mode returns the playback mode.
func (e *Engine) Mode() Mode { return e.mode }

// Current returns the display form of the word at the current position.
// It reports false when the position is past the last word.
func (e *Engine) Current() (text.WordSplit, bool) {
	if e.index >= len(e.tokens) {
		return text.WordSplit{}, false
	}
	return text.Split(e.tokens[e.index]), true
}

// Init tokenizes raw and resets to a stopped engine at index 0.
// Any pending step is cancelled. Nothing is emitted.
func (e *Engine) Init(raw string) {
	e.cancel()
	e.tokens = text.Tokenize(raw)
	e.index = 0
	e.mode = Stopped

	slog.Debug("engine initialised", "tokens", len(e.tokens))
}

// Play starts or resumes playback and emits the current word immediately.
// It is a no-op while already playing or when there is nothing to play.
// A completed engine wraps back to the first word.
func (e *Engine) Play() {
	if e.mode == Playing || len(e.tokens) == 0 {
		return
	}
	if e.index >= len(e.tokens) {
		e.index = 0
	}

	e.mode = Playing
	e.anchor = e.clock.Now()

	slog.Debug("playback started", "index", e.index, "tokens", len(e.tokens))
	e.step()
}

// Pause cancels the pending step and keeps the position.
// It is a no-op unless playing.
func (e *Engine) Pause() {
	if e.mode != Playing {
		return
	}
	e.cancel()
	e.mode = Paused

	slog.Debug("playback paused", "index", e.index)
}

// Stop cancels the pending step and rewinds to the first word.
func (e *Engine) Stop() {
	e.cancel()
	e.index = 0
	e.mode = Stopped

	slog.Debug("playback stopped")
}

// Restart stops and rewinds like Stop, then shows the first word.
// The time estimate uses DefaultRate; playback still pulls the live rate.
func (e *Engine) Restart() {
	e.Stop()
	if len(e.tokens) > 0 {
		e.emit(0, DefaultRate)
	}
}

// GoToEnd stops on the last word and shows it.
// The time estimate uses DefaultRate.
func (e *Engine) GoToEnd() {
	e.cancel()
	e.mode = Stopped
	e.index = 0
	if len(e.tokens) == 0 {
		return
	}
	e.index = len(e.tokens) - 1
	e.emit(e.index, DefaultRate)

	slog.Debug("moved to end", "index", e.index)
}

// SeekTo moves to word i and shows it. Out-of-range indices are ignored
// without error and without cancelling anything.
//
// While playing, the pending step is replaced and timing restarts from the
// new word. Otherwise the mode is unchanged.
func (e *Engine) SeekTo(i int) {
	if i < 0 || i >= len(e.tokens) {
		return
	}

	e.cancel()
	e.index = i

	slog.Debug("seek", "index", i, "mode", e.mode.String())

	if e.mode == Playing {
		e.anchor = e.clock.Now()
		e.step()
		return
	}
	e.emit(i, e.currentRate())
}

// Cue moves to word i without showing it, so that the next Play starts
// there. It reports false, changing nothing, while playing or when i is out
// of range.
func (e *Engine) Cue(i int) bool {
	if e.mode == Playing || i < 0 || i >= len(e.tokens) {
		return false
	}
	e.index = i

	slog.Debug("cued", "index", i)
	return true
}

// step shows the word at index and schedules the next one.
// Called only while Playing.
func (e *Engine) step() {
	if e.index >= len(e.tokens) {
		e.mode = Stopped
		e.timer = nil

		slog.Debug("playback complete", "tokens", len(e.tokens))
		if e.hooks != nil {
			e.hooks.OnComplete()
		}
		return
	}

	wpm := e.currentRate()
	duration := text.Millis(text.Duration(e.tokens[e.index], wpm))
	drift := e.clock.Now().Sub(e.anchor)
	delay := max(duration-drift, 0)
	e.anchor = e.anchor.Add(duration)

	gen := e.gen
	e.emit(e.index, wpm)

	// A hook may have paused, stopped, or seeked.
	if gen != e.gen || e.mode != Playing {
		return
	}

	e.timer = e.clock.AfterFunc(delay, func() {
		e.advance(gen)
	})
}

// advance is the timer continuation of step.
func (e *Engine) advance(gen uint64) {
	if gen != e.gen || e.mode != Playing {
		return
	}
	e.timer = nil
	e.index++
	e.step()
}

// cancel stops the pending step and invalidates any callback already in flight.
func (e *Engine) cancel() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen++
}

func (e *Engine) emit(i int, wpm float64) {
	if e.hooks == nil {
		return
	}
	e.hooks.OnWordChange(text.Split(e.tokens[i]))
	e.hooks.OnProgress(progress.Compute(i, len(e.tokens), wpm))
}

func (e *Engine) currentRate() float64 {
	if e.rate == nil {
		return DefaultRate
	}
	return e.rate.CurrentRate()
}
