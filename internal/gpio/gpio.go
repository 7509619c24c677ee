// Package gpio provides GPIO input pins with hardware abstraction.
// Real drivers use the Linux GPIO character device, periph.io or
// memory-mapped Raspberry Pi registers.
// The fake implementation allows testing without hardware.
package gpio

import (
	"fmt"
	"io"
)

// Mode is the electrical configuration of an input pin.
type Mode int

const (
	// ModeInput is a plain input with bias disabled.
	ModeInput Mode = iota
	// ModeInputPullUp holds the idle level high through the internal pull-up.
	ModeInputPullUp
)

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeInputPullUp:
		return "input_pullup"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Pin is a single digital input line.
type Pin interface {
	// SetMode configures the line as an input in the given mode.
	SetMode(mode Mode) error

	// Read returns the raw electrical level (true = high).
	Read() (bool, error)

	io.Closer
}

// Driver names a Pin implementation.
type Driver string

const (
	DriverCdev   Driver = "cdev"
	DriverPeriph Driver = "periph"
	DriverRPIO   Driver = "rpio"
)

// Default pin settings (BCM numbering).
const (
	DefaultChip = "gpiochip0"
	DefaultPin  = 17
)

// Options selects and addresses a pin.
type Options struct {
	Driver Driver
	// Chip is the character device name; only used by DriverCdev.
	Chip string
	// Pin is the line offset or BCM number.
	Pin int
	// Name overrides Pin for DriverPeriph (e.g. "GPIO17").
	Name string
}

// Open returns the pin described by opts. The pin starts as a plain input.
func Open(opts Options) (Pin, error) {
	switch opts.Driver {
	case DriverCdev, "":
		chip := opts.Chip
		if chip == "" {
			chip = DefaultChip
		}
		p, err := NewCdevPin(chip, opts.Pin)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverPeriph:
		name := opts.Name
		if name == "" {
			name = fmt.Sprintf("GPIO%d", opts.Pin)
		}
		p, err := NewPeriphPin(name)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverRPIO:
		p, err := NewRPIOPin(opts.Pin)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("gpio: unknown driver %q", opts.Driver)
	}
}
