package gpio

import (
	"fmt"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// PeriphPin reads a pin through the periph.io host drivers.
type PeriphPin struct {
	pin pgpio.PinIO
}

// NewPeriphPin initialises the host drivers and looks up name
// (e.g. "GPIO17") as a floating input.
func NewPeriphPin(name string) (*PeriphPin, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("periph: no pin named %q", name)
	}
	if err := pin.In(pgpio.Float, pgpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure %s: %w", name, err)
	}
	return &PeriphPin{pin: pin}, nil
}

// SetMode sets the pin as input with the matching pull.
func (p *PeriphPin) SetMode(mode Mode) error {
	var pull pgpio.Pull
	switch mode {
	case ModeInputPullUp:
		pull = pgpio.PullUp
	case ModeInput:
		pull = pgpio.Float
	default:
		return fmt.Errorf("set %s mode: unsupported %v", p.pin.Name(), mode)
	}
	if err := p.pin.In(pull, pgpio.NoEdge); err != nil {
		return fmt.Errorf("set %s mode %v: %w", p.pin.Name(), mode, err)
	}
	return nil
}

// Read returns the raw pin level.
func (p *PeriphPin) Read() (bool, error) {
	return p.pin.Read() == pgpio.High, nil
}

// Close halts the pin.
func (p *PeriphPin) Close() error {
	if err := p.pin.Halt(); err != nil {
		return fmt.Errorf("halt %s: %w", p.pin.Name(), err)
	}
	return nil
}
