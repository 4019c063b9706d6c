package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeClock_StartsAtEpoch(t *testing.T) {
	clock := NewFakeClock()
	assert.Equal(t, Epoch, clock.Now())
	assert.Equal(t, time.Duration(0), clock.Elapsed())
	assert.Equal(t, 0, clock.Pending())
}

func TestFakeClock_AdvanceFiresInDeadlineOrder(t *testing.T) {
	clock := NewFakeClock()
	var fired []string
	var at []time.Duration

	clock.AfterFunc(30*time.Millisecond, func() {
		fired = append(fired, "c")
		at = append(at, clock.Elapsed())
	})
	clock.AfterFunc(10*time.Millisecond, func() {
		fired = append(fired, "a")
		at = append(at, clock.Elapsed())
	})
	clock.AfterFunc(10*time.Millisecond, func() {
		fired = append(fired, "b")
		at = append(at, clock.Elapsed())
	})

	clock.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 20*time.Millisecond, clock.Elapsed())

	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 30 * time.Millisecond}, at)
	assert.Equal(t, 0, clock.Pending())
}

func TestFakeClock_Stop(t *testing.T) {
	clock := NewFakeClock()
	fired := false

	timer := clock.AfterFunc(time.Millisecond, func() { fired = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports false")

	clock.Advance(time.Second)
	assert.False(t, fired)
}

func TestFakeClock_StopAfterFire(t *testing.T) {
	clock := NewFakeClock()
	timer := clock.AfterFunc(0, func() {})
	clock.Advance(0)
	assert.False(t, timer.Stop())
}

func TestFakeClock_CallbackChains(t *testing.T) {
	clock := NewFakeClock()
	count := 0

	var tick func()
	tick = func() {
		count++
		if count < 5 {
			clock.AfterFunc(100*time.Millisecond, tick)
		}
	}
	clock.AfterFunc(100*time.Millisecond, tick)

	clock.Advance(450 * time.Millisecond)
	assert.Equal(t, 4, count)

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, 5, count)
	assert.Equal(t, 0, clock.Pending())
}

func TestFakeClock_StallMakesCallbacksLate(t *testing.T) {
	clock := NewFakeClock()
	var firedAt time.Duration

	clock.AfterFunc(100*time.Millisecond, func() { firedAt = clock.Elapsed() })
	clock.Stall(150 * time.Millisecond)
	assert.Equal(t, 1, clock.Pending(), "stall does not fire")

	clock.Advance(0)
	assert.Equal(t, 150*time.Millisecond, firedAt)
}

func TestFakeClock_NextDelay(t *testing.T) {
	clock := NewFakeClock()
	_, ok := clock.NextDelay()
	assert.False(t, ok)

	clock.AfterFunc(250*time.Millisecond, func() {})
	clock.Advance(100 * time.Millisecond)

	d, ok := clock.NextDelay()
	require.True(t, ok)
	assert.Equal(t, 150*time.Millisecond, d)
}
