//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// CdevPin is not available on non-Linux platforms.
type CdevPin struct{}

// NewCdevPin returns an error on non-Linux platforms.
func NewCdevPin(chipName string, offset int) (*CdevPin, error) {
	return nil, errUnsupported
}

// SetMode is not implemented on non-Linux platforms.
func (p *CdevPin) SetMode(mode Mode) error { return errUnsupported }

// Read is not implemented on non-Linux platforms.
func (p *CdevPin) Read() (bool, error) { return false, errUnsupported }

// Close is not implemented on non-Linux platforms.
func (p *CdevPin) Close() error { return nil }

// RPIOPin is not available on non-Linux platforms.
type RPIOPin struct{}

// NewRPIOPin returns an error on non-Linux platforms.
func NewRPIOPin(bcm int) (*RPIOPin, error) {
	return nil, errUnsupported
}

// SetMode is not implemented on non-Linux platforms.
func (p *RPIOPin) SetMode(mode Mode) error { return errUnsupported }

// Read is not implemented on non-Linux platforms.
func (p *RPIOPin) Read() (bool, error) { return false, errUnsupported }

// Close is not implemented on non-Linux platforms.
func (p *RPIOPin) Close() error { return nil }
