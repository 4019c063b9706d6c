package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Loop is a single-writer event loop for driving an Engine in real time.
//
// Run executes queued tasks one at a time on the calling goroutine. Loop is
// also a Clock: AfterFunc callbacks are queued as tasks when their timer
// fires, so they never run concurrently with commands submitted via Do.
//
// Thread-safety model:
//   - Do(), Call(), Close(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - Engine methods: call only from tasks
type Loop struct {
	queue *taskQueue
}

// NewLoop creates a loop with an empty queue.
func NewLoop() *Loop {
	return &Loop{queue: newTaskQueue()}
}

// Run processes tasks until ctx is cancelled or Close is called.
// Tasks still queued when the loop closes are run before Run returns;
// tasks queued when ctx is cancelled are dropped.
func (l *Loop) Run(ctx context.Context) error {
	slog.Debug("loop starting")

	for {
		if fn, ok := l.queue.TryDequeue(); ok {
			fn()
			continue
		}

		select {
		case <-ctx.Done():
			slog.Debug("loop stopping: context cancelled")
			l.queue.Close()
			return ctx.Err()

		case <-l.queue.Wait():
			// The signal channel closes with the queue, so this fires
			// immediately once closed.
			if l.queue.Len() == 0 && l.isClosed() {
				slog.Debug("loop stopping: queue closed")
				return nil
			}
		}
	}
}

// Do queues fn to run on the loop goroutine.
// Returns false if the loop is closed.
func (l *Loop) Do(fn func()) bool {
	return l.queue.Enqueue(fn)
}

// Call queues fn and waits for it to finish.
// Returns ErrLoopClosed if the loop is closed, or ctx.Err() if ctx ends first.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Do(func() {
		defer close(done)
		fn()
	}) {
		return ErrLoopClosed
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks. Run returns once the queue drains.
func (l *Loop) Close() {
	l.queue.Close()
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc queues f on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Do(func() {
			if t.stopped.Load() {
				return
			}
			f()
		})
	})
	return t
}

func (l *Loop) isClosed() bool {
	l.queue.mu.Lock()
	defer l.queue.mu.Unlock()
	return l.queue.closed
}

// loopTimer stops both the wall-clock timer and a task that was already
// queued when Stop was called.
type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	return t.timer.Stop()
}
