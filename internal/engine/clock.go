package engine

import "time"

// Clock is the time source and single-shot scheduler an Engine runs on.
//
// AfterFunc callbacks must be delivered on the engine's goroutine. Loop does
// this for wall-clock time; testutil.FakeClock does it by firing callbacks
// synchronously from Advance.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it had already fired or been stopped.
	Stop() bool
}
