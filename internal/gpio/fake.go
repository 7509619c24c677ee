package gpio

import "errors"

// FakePin is a test double that returns scripted levels.
type FakePin struct {
	// Samples contains scripted raw levels to return.
	// Each call to Read() consumes the next sample.
	Samples []bool

	// index tracks current position in Samples
	index int

	// Modes records every mode passed to SetMode, in order.
	Modes []Mode

	// Reads counts calls to Read
	Reads int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read() along with the
	// scripted level.
	ReadError error

	// ModeError, if set, will be returned by SetMode()
	ModeError error
}

// NewFakePin creates a FakePin with the given samples.
func NewFakePin(samples ...bool) *FakePin {
	return &FakePin{Samples: samples}
}

// SetMode records the mode.
func (f *FakePin) SetMode(mode Mode) error {
	if f.ModeError != nil {
		return f.ModeError
	}
	f.Modes = append(f.Modes, mode)
	return nil
}

// Mode returns the last mode set, or ModeInput if none was.
func (f *FakePin) Mode() Mode {
	if len(f.Modes) == 0 {
		return ModeInput
	}
	return f.Modes[len(f.Modes)-1]
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakePin) Read() (bool, error) {
	f.Reads++

	if len(f.Samples) == 0 {
		return false, errors.New("no samples configured")
	}

	level := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return level, f.ReadError
}

// Set replaces the script with a single level held until changed.
func (f *FakePin) Set(level bool) {
	f.Samples = []bool{level}
	f.index = 0
}

// Close marks the pin as closed.
func (f *FakePin) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script and clears recorded calls.
func (f *FakePin) Reset() {
	f.index = 0
	f.Reads = 0
	f.Modes = nil
	f.Closed = false
}
