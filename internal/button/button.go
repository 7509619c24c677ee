// Package button turns a bouncing digital input into single-shot press and
// release events. It is polled by the caller's own loop and never blocks.
// Time is injectable through the timer package so behaviour can be simulated.
package button

import (
	"time"

	"github.com/sweeney/button-sensor/internal/gpio"
	"github.com/sweeney/button-sensor/internal/timer"
)

// DefaultDebounceTimeout is the debounce window applied at construction.
const DefaultDebounceTimeout = 10 * time.Millisecond

// Pin is the part of a gpio.Pin a Button needs.
type Pin interface {
	SetMode(mode gpio.Mode) error
	Read() (bool, error)
}

// Button debounces one input pin.
//
// Press and release detection are two independent state machines, each
// with its own timer and latched flag. A timer is rearmed on every poll
// that reads the opposite level, so an edge is only accepted once the
// input has held the target level for the debounce timeout since the last
// opposite sample.
//
// A Button is not safe for concurrent use.
type Button struct {
	pin             Pin
	invert          bool
	debounceTimeout time.Duration

	pressTimer   timer.Timer
	releaseTimer timer.Timer

	hasBeenPressed  bool
	hasBeenReleased bool

	err error
}

// Option configures a Button at construction.
type Option func(*Button)

// WithClock builds both debounce timers on clock instead of the system clock.
func WithClock(clock timer.Clock) Option {
	return func(b *Button) {
		b.pressTimer = timer.NewCountdown(clock)
		b.releaseTimer = timer.NewCountdown(clock)
	}
}

// WithTimers uses the given timers for press and release detection.
// They must be distinct and should report expired until first restarted.
func WithTimers(press, release timer.Timer) Option {
	return func(b *Button) {
		b.pressTimer = press
		b.releaseTimer = release
	}
}

// WithDebounceTimeout overrides DefaultDebounceTimeout.
func WithDebounceTimeout(d time.Duration) Option {
	return func(b *Button) {
		b.debounceTimeout = d
	}
}

// WithInvert sets the initial reading interpretation. When invert is true
// a low level reads as pressed.
func WithInvert(invert bool) Option {
	return func(b *Button) {
		b.invert = invert
	}
}

// New configures pin as an input, with the internal pull-up when pullUp is
// set, and returns a Button reading it.
//
// Readings start inverted: buttons are usually wired to ground against a
// pull-up, so a low level means pressed. Use InvertReading or WithInvert
// for active-high wiring.
//
// The only error is a failure to set the pin mode.
func New(pin Pin, pullUp bool, opts ...Option) (*Button, error) {
	mode := gpio.ModeInput
	if pullUp {
		mode = gpio.ModeInputPullUp
	}
	if err := pin.SetMode(mode); err != nil {
		return nil, err
	}

	b := &Button{
		pin:             pin,
		invert:          true,
		debounceTimeout: DefaultDebounceTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.pressTimer == nil {
		b.pressTimer = timer.NewCountdown(timer.SystemClock)
	}
	if b.releaseTimer == nil {
		b.releaseTimer = timer.NewCountdown(timer.SystemClock)
	}
	b.SetDebounceTimeout(b.debounceTimeout)
	return b, nil
}

// SetDebounceTimeout sets the debounce window for both press and release
// detection. Running windows are not restarted; they are compared against
// the new duration from the next poll on.
func (b *Button) SetDebounceTimeout(d time.Duration) {
	b.debounceTimeout = d
	b.pressTimer.SetTimeout(d)
	b.releaseTimer.SetTimeout(d)
}

// DebounceTimeout returns the current debounce window.
func (b *Button) DebounceTimeout() time.Duration {
	return b.debounceTimeout
}

// IsPressed samples the pin and reports whether it reads as pressed.
// It is not debounced and does not affect edge detection.
//
// A read error is kept for Err and the level returned with it is used as
// read.
func (b *Button) IsPressed() bool {
	level, err := b.pin.Read()
	b.err = err
	return level != b.invert
}

// IsReleased is the negation of IsPressed.
func (b *Button) IsReleased() bool {
	return !b.IsPressed()
}

// OnPressed reports true once per debounced press.
func (b *Button) OnPressed() bool {
	if b.IsPressed() {
		if !b.hasBeenPressed && b.pressTimer.IsExpired() {
			b.pressTimer.Restart()
			b.hasBeenPressed = true
			return true
		}
		return false
	}
	b.pressTimer.Restart()
	b.hasBeenPressed = false
	return false
}

// OnReleased reports true once per debounced release.
func (b *Button) OnReleased() bool {
	if b.IsReleased() {
		if !b.hasBeenReleased && b.releaseTimer.IsExpired() {
			b.releaseTimer.Restart()
			b.hasBeenReleased = true
			return true
		}
		return false
	}
	b.releaseTimer.Restart()
	b.hasBeenReleased = false
	return false
}

// InvertReading flips how the raw level is interpreted. Timers and latched
// edges are left alone.
func (b *Button) InvertReading() {
	b.invert = !b.invert
}

// Inverted reports whether a low level currently reads as pressed.
func (b *Button) Inverted() bool {
	return b.invert
}

// Err returns the error from the most recent pin read, or nil if it
// succeeded.
func (b *Button) Err() error {
	return b.err
}
