// Package countdown implements the focus-session countdown.
//
// Remaining time is always derived from a single start timestamp on a
// monotonic clock, never decremented in place, so poll jitter does not
// accumulate. Resuming from a pause shifts the start timestamp forward by
// the paused duration instead of keeping a second counter.
package countdown

import (
	"time"

	"github.com/xvierd/focusdial/internal/mathx"
	"github.com/zoobzio/clockz"
)

// EventKind classifies the result of a Tick.
type EventKind uint8

const (
	// EventNone means the timer is inactive or paused.
	EventNone EventKind = iota
	// EventProgress carries the elapsed fraction of a running session.
	EventProgress
	// EventCompleted is returned once, on the tick that reaches zero.
	EventCompleted
)

// Event is the outcome of a Tick.
type Event struct {
	Kind     EventKind
	Progress float64
}

// Minutes converts a possibly fractional minute count to a duration.
func Minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

// State is a read-only view of the countdown.
type State struct {
	Active    bool
	Paused    bool
	Length    time.Duration
	StartedAt time.Time
	PausedAt  time.Time
	Remaining time.Duration
}

// Timer owns focus-session timing.
type Timer struct {
	clock clockz.Clock
	state State

	pausedTotal time.Duration
}

// New creates an idle timer reading time from clock.
func New(clock clockz.Clock) *Timer {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &Timer{clock: clock}
}

// Start begins a session of the given length, discarding any previous one.
func (t *Timer) Start(length time.Duration) {
	t.state = State{
		Active:    true,
		Length:    length,
		StartedAt: t.clock.Now(),
		Remaining: length,
	}
	t.pausedTotal = 0
}

// Tick recomputes the remaining time. It is a no-op while inactive or paused.
func (t *Timer) Tick() Event {
	if !t.state.Active || t.state.Paused {
		return Event{Kind: EventNone}
	}

	elapsed := t.clock.Since(t.state.StartedAt)
	t.state.Remaining = t.state.Length - elapsed
	if t.state.Remaining <= 0 {
		t.state.Remaining = 0
		t.state.Active = false
		return Event{Kind: EventCompleted}
	}

	return Event{Kind: EventProgress, Progress: fraction(elapsed, t.state.Length)}
}

// Pause freezes the session. It reports false if there was nothing to pause.
func (t *Timer) Pause() bool {
	if !t.state.Active || t.state.Paused {
		return false
	}
	t.state.Paused = true
	t.state.PausedAt = t.clock.Now()
	return true
}

// Resume continues a paused session, moving the start forward by the time
// spent paused. It reports false if the session was not paused.
func (t *Timer) Resume() bool {
	if !t.state.Active || !t.state.Paused {
		return false
	}
	d := t.clock.Since(t.state.PausedAt)
	t.state.StartedAt = t.state.StartedAt.Add(d)
	t.pausedTotal += d
	t.state.PausedAt = time.Time{}
	t.state.Paused = false
	return true
}

// Stop ends the session early.
func (t *Timer) Stop() {
	if t.state.Paused {
		t.pausedTotal += t.clock.Since(t.state.PausedAt)
	}
	t.state.Active = false
	t.state.Paused = false
	t.state.PausedAt = time.Time{}
}

// State returns a snapshot of the countdown.
func (t *Timer) State() State {
	return t.state
}

// Active reports whether a session is running or paused.
func (t *Timer) Active() bool {
	return t.state.Active
}

// Paused reports whether the running session is paused.
func (t *Timer) Paused() bool {
	return t.state.Paused
}

// Remaining returns the time left as of the last Tick.
func (t *Timer) Remaining() time.Duration {
	return t.state.Remaining
}

// RemainingSeconds returns Remaining truncated to whole seconds.
func (t *Timer) RemainingSeconds() int {
	return int(t.state.Remaining / time.Second)
}

// Progress returns the elapsed fraction as of the last Tick.
func (t *Timer) Progress() float64 {
	return fraction(t.state.Length-t.state.Remaining, t.state.Length)
}

// PausedTotal returns the accumulated pause time of the current or last session.
func (t *Timer) PausedTotal() time.Duration {
	return t.pausedTotal
}

func fraction(elapsed, length time.Duration) float64 {
	if length <= 0 {
		return 1
	}
	return mathx.Clamp(float64(elapsed)/float64(length), 0, 1)
}
