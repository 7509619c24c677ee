//go:build linux

package gpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// RPIOPin reads a Raspberry Pi pin through memory-mapped registers.
// Only one RPIOPin should be open at a time: closing it unmaps the
// register block for the whole process.
type RPIOPin struct {
	pin rpio.Pin
}

// NewRPIOPin maps the GPIO registers and sets bcm as a plain input.
func NewRPIOPin(bcm int) (*RPIOPin, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open rpio: %w", err)
	}
	pin := rpio.Pin(bcm)
	pin.Input()
	pin.PullOff()
	return &RPIOPin{pin: pin}, nil
}

// SetMode sets the pin as input with the matching pull.
func (p *RPIOPin) SetMode(mode Mode) error {
	switch mode {
	case ModeInputPullUp:
		p.pin.Input()
		p.pin.PullUp()
	case ModeInput:
		p.pin.Input()
		p.pin.PullOff()
	default:
		return fmt.Errorf("set pin %d mode: unsupported %v", int(p.pin), mode)
	}
	return nil
}

// Read returns the raw pin level. Register reads cannot fail.
func (p *RPIOPin) Read() (bool, error) {
	return p.pin.Read() == rpio.High, nil
}

// Close clears the pull and unmaps the registers.
func (p *RPIOPin) Close() error {
	p.pin.PullOff()
	if err := rpio.Close(); err != nil {
		return fmt.Errorf("close rpio: %w", err)
	}
	return nil
}
