package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/rsvp/internal/config"
	"github.com/roach88/rsvp/internal/display"
	"github.com/roach88/rsvp/internal/engine"
	"github.com/roach88/rsvp/internal/progress"
	"github.com/roach88/rsvp/internal/store"
	"github.com/roach88/rsvp/internal/text"
)

// reader connects an engine to the terminal. It is the engine's Hooks and
// RateProvider.
//
// Every method except dispatch runs on the loop goroutine.
type reader struct {
	eng      *engine.Engine
	loop     *engine.Loop
	store    *store.Store
	renderer display.Renderer
	settings config.Settings
	out      io.Writer
	json     bool

	current  text.WordSplit
	done     chan struct{}
	finished bool
}

// readEvent is one line of JSON output from the read command.
type readEvent struct {
	Type     string             `json:"type"`
	Word     *text.WordSplit    `json:"word,omitempty"`
	Progress *progress.Progress `json:"progress,omitempty"`
	Rate     float64            `json:"rate,omitempty"`
	Mode     string             `json:"mode,omitempty"`
	Message  string             `json:"message,omitempty"`
}

func newReader(loop *engine.Loop, st *store.Store, settings config.Settings, renderer display.Renderer, out io.Writer, jsonOut bool) *reader {
	r := &reader{
		loop:     loop,
		store:    st,
		renderer: renderer,
		settings: settings,
		out:      out,
		json:     jsonOut,
		done:     make(chan struct{}),
	}
	r.eng = engine.New(loop, engine.WithHooks(r))
	return r
}

// start loads the document and shows the word at index. Playback begins
// unless paused is set.
func (r *reader) start(raw string, index int, paused bool) {
	r.eng.Init(raw)

	if marker := r.renderer.Marker(); marker != "" && !r.json {
		fmt.Fprintln(r.out, marker)
	}

	if paused {
		r.eng.SeekTo(index)
		return
	}
	r.eng.Cue(index)
	r.eng.Play()
}

// OnWordChange implements engine.Hooks.
func (r *reader) OnWordChange(w text.WordSplit) {
	r.current = w
}

// OnProgress implements engine.Hooks. The word and its progress are drawn
// together.
func (r *reader) OnProgress(p progress.Progress) {
	mode := r.eng.Mode().String()
	if r.json {
		w := r.current
		r.writeEvent(readEvent{Type: "word", Word: &w, Progress: &p, Rate: r.settings.Rate, Mode: mode})
		return
	}
	fmt.Fprint(r.out, r.renderer.Frame(r.current, r.renderer.Status(p, r.settings.Rate, mode)))
}

// OnComplete implements engine.Hooks.
func (r *reader) OnComplete() {
	if r.json {
		r.writeEvent(readEvent{Type: "complete"})
	}
	r.quit()
}

// CurrentRate implements engine.RateProvider.
func (r *reader) CurrentRate() float64 {
	return r.settings.Rate
}

func (r *reader) handle(c command) {
	switch c.Kind {
	case cmdToggle:
		if r.eng.Mode() == engine.Playing {
			r.eng.Pause()
		} else {
			r.eng.Play()
		}
	case cmdStop:
		r.eng.Stop()
	case cmdRestart:
		r.eng.Restart()
	case cmdEnd:
		r.eng.GoToEnd()
	case cmdFaster:
		r.setRate(r.settings.Rate + config.RateStep)
	case cmdSlower:
		r.setRate(r.settings.Rate - config.RateStep)
	case cmdSeek:
		if c.Arg > r.eng.Len() {
			r.notify(fmt.Sprintf("no word %d (document has %d)", c.Arg, r.eng.Len()))
			return
		}
		r.eng.SeekTo(c.Arg - 1)
	case cmdHelp:
		r.notify(commandHelp)
	case cmdQuit:
		r.quit()
	}
}

// setRate clamps and persists a new rate. The engine picks it up at the
// next word boundary.
func (r *reader) setRate(wpm float64) {
	r.settings.Rate = config.ClampRate(wpm)
	slog.Debug("rate changed", "rate", r.settings.Rate)

	if err := r.store.SaveSettings(context.Background(), r.settings, time.Now()); err != nil {
		slog.Warn("failed to save settings", "error", err)
	}
}

// inputClosed ends the session unless playback is still running, in which
// case completion ends it.
func (r *reader) inputClosed() {
	if r.eng.Mode() != engine.Playing {
		r.quit()
	}
}

func (r *reader) notify(msg string) {
	if r.json {
		r.writeEvent(readEvent{Type: "message", Message: msg})
		return
	}
	fmt.Fprintf(r.out, "\n%s\n", msg)
}

func (r *reader) quit() {
	if r.finished {
		return
	}
	r.finished = true
	close(r.done)
	r.loop.Close()
}

func (r *reader) writeEvent(ev readEvent) {
	if err := json.NewEncoder(r.out).Encode(ev); err != nil {
		slog.Warn("failed to write event", "error", err)
	}
}

// dispatch forwards parsed input lines to the loop until the session ends.
// A nil lines channel means there is no command input.
func (r *reader) dispatch(ctx context.Context, lines <-chan string) error {
	if lines == nil {
		r.loop.Do(r.inputClosed)
	}

	for {
		select {
		case <-r.done:
			return nil
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				lines = nil
				r.loop.Do(r.inputClosed)
				continue
			}
			c, err := parseCommand(line)
			if err != nil {
				msg := err.Error()
				r.loop.Do(func() { r.notify(msg) })
				continue
			}
			r.loop.Do(func() { r.handle(c) })
		}
	}
}

// scanLines sends each line of in until EOF or done. It closes lines when
// it returns. A read blocked on a terminal is abandoned at exit.
func scanLines(in io.Reader, lines chan<- string, done <-chan struct{}) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Debug("input closed", "error", err)
	}
}
