// Package engine implements the RSVP playback engine.
//
// The engine owns a token sequence and a playback position, and advances
// through the sequence one word at a time at a rate it pulls from a
// RateProvider on every word boundary.
//
// ARCHITECTURE:
//
// Single Owner:
// An Engine is not safe for concurrent use. Every method, and every timer
// callback it schedules, must run on one goroutine. Loop provides that
// goroutine for real-time use: it is both the Clock the engine schedules on
// and the queue callers submit commands through. Tests drive the engine
// synchronously on a testutil.FakeClock instead.
//
// Step Procedure:
//  1. If the position is past the last word, stop and fire OnComplete once
//  2. Pull the current rate and compute the word's duration
//  3. drift = now - anchor; delay = max(0, duration - drift); anchor += duration
//  4. Emit OnWordChange and OnProgress for the current word
//  5. After delay, advance the position and repeat
//
// Scheduling latency is carried in the anchor and subtracted from later
// waits, so the long-run rate matches the configured rate even when each
// individual timer fires late.
//
// Cancellation:
// Every transition out of playing stops the pending timer and bumps a
// generation counter. A callback from an older generation returns without
// touching state, so a stale step can never resurrect a paused, stopped, or
// re-initialised engine.
package engine
