//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevPin reads a line through the Linux GPIO character device.
type CdevPin struct {
	chip   *gpiocdev.Chip
	line   *gpiocdev.Line
	offset int
}

// NewCdevPin requests offset on chip as a plain input.
func NewCdevPin(chipName string, offset int) (*CdevPin, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithBiasDisabled)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request pin %d: %w", offset, err)
	}

	return &CdevPin{
		chip:   chip,
		line:   line,
		offset: offset,
	}, nil
}

// SetMode reconfigures the line bias.
func (p *CdevPin) SetMode(mode Mode) error {
	var err error
	switch mode {
	case ModeInputPullUp:
		err = p.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp)
	case ModeInput:
		err = p.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithBiasDisabled)
	default:
		return fmt.Errorf("set pin %d mode: unsupported %v", p.offset, mode)
	}
	if err != nil {
		return fmt.Errorf("set pin %d mode %v: %w", p.offset, mode, err)
	}
	return nil
}

// Read returns the raw line level.
func (p *CdevPin) Read() (bool, error) {
	v, err := p.line.Value()
	if err != nil {
		return false, fmt.Errorf("read pin %d: %w", p.offset, err)
	}
	return v != 0, nil
}

// Close releases the line and chip.
// The line is left as a plain input so nothing is driven after exit.
func (p *CdevPin) Close() error {
	var errs []error

	if p.line != nil {
		if err := p.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithBiasDisabled); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", p.offset, err))
		}
		if err := p.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", p.offset, err))
		}
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
