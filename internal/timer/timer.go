// Package timer provides the countdown timer used to gate debounce windows.
// Time is always injectable through a Clock so callers can simulate it.
package timer

import "time"

// Clock returns the current time. Values must not go backwards.
type Clock func() time.Time

// SystemClock reads the monotonic wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// Timer is the capability set a debounce window needs.
type Timer interface {
	// SetTimeout replaces the expiry threshold. It does not reset the
	// elapsed-time baseline.
	SetTimeout(d time.Duration)

	// Restart resets the elapsed-time baseline to now.
	Restart()

	// IsExpired reports whether the time since the last Restart is at
	// least the current threshold. A timer that was never restarted is
	// expired.
	IsExpired() bool
}

type state int

const (
	stateIdle state = iota
	stateActive
	stateStopped
)

// Countdown is a Timer measuring elapsed time against a Clock.
// It starts out expired.
type Countdown struct {
	clock   Clock
	timeout time.Duration
	start   time.Time
	state   state
}

// NewCountdown creates an expired countdown reading time from clock.
// A nil clock uses SystemClock.
func NewCountdown(clock Clock) *Countdown {
	if clock == nil {
		clock = SystemClock
	}
	return &Countdown{clock: clock}
}

// SetTimeout sets the expiry threshold.
func (c *Countdown) SetTimeout(d time.Duration) {
	c.timeout = d
}

// Timeout returns the expiry threshold.
func (c *Countdown) Timeout() time.Duration {
	return c.timeout
}

// Restart starts a new countdown from now.
func (c *Countdown) Restart() {
	c.start = c.clock()
	c.state = stateActive
}

// Stop ends the countdown early. A stopped countdown reports expired
// until the next Restart.
func (c *Countdown) Stop() {
	c.state = stateStopped
}

// IsExpired reports whether the countdown has run out.
func (c *Countdown) IsExpired() bool {
	if c.state != stateActive {
		return true
	}
	return c.clock().Sub(c.start) >= c.timeout
}

// IsActive reports whether the countdown is still running.
func (c *Countdown) IsActive() bool {
	return !c.IsExpired()
}

// IsStopped reports whether Stop was called since the last Restart.
func (c *Countdown) IsStopped() bool {
	return c.state == stateStopped
}

// Elapsed returns the time since the last Restart, or 0 if the countdown
// was never started.
func (c *Countdown) Elapsed() time.Duration {
	if c.state == stateIdle {
		return 0
	}
	return c.clock().Sub(c.start)
}

// Remaining returns the time left before expiry, or 0 once expired.
func (c *Countdown) Remaining() time.Duration {
	if c.IsExpired() {
		return 0
	}
	return c.timeout - c.Elapsed()
}
