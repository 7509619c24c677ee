// Package config loads the button-sensor TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/sweeney/button-sensor/internal/gpio"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "/etc/button-sensor.toml"

// Defaults applied before the file is decoded.
const (
	DefaultDebounce  = 10 * time.Millisecond
	DefaultPoll      = 5 * time.Millisecond
	DefaultHeartbeat = 15 * time.Minute
)

// Duration is a time.Duration written in the file as a string such as "10ms".
type Duration time.Duration

// UnmarshalText parses a time.ParseDuration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the daemon configuration.
type Config struct {
	Driver gpio.Driver `toml:"driver"`
	Chip   string      `toml:"chip"`
	Pin    int         `toml:"pin"`
	// PinName addresses the pin by name for the periph driver.
	PinName string `toml:"pin_name"`
	PullUp  bool   `toml:"pull_up"`
	// Invert makes a low level read as pressed (active-low wiring).
	Invert bool `toml:"invert"`

	DebounceWindow    Duration `toml:"debounce"`
	PollInterval      Duration `toml:"poll"`
	HeartbeatInterval Duration `toml:"heartbeat"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Default returns the configuration used when no file is present:
// a pulled-up, active-low button on the default pin.
func Default() Config {
	return Config{
		Driver:            gpio.DriverCdev,
		Chip:              gpio.DefaultChip,
		Pin:               gpio.DefaultPin,
		PullUp:            true,
		Invert:            true,
		DebounceWindow:    Duration(DefaultDebounce),
		PollInterval:      Duration(DefaultPoll),
		HeartbeatInterval: Duration(DefaultHeartbeat),
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load reads path over the defaults. A missing file at DefaultPath is not
// an error; any other missing path is. Unknown keys are rejected.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return c, nil
		}
		return c, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Driver {
	case gpio.DriverCdev, gpio.DriverPeriph, gpio.DriverRPIO:
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.Pin < 0 {
		return fmt.Errorf("pin must not be negative, got %d", c.Pin)
	}
	if c.Debounce() < 0 {
		return fmt.Errorf("debounce must not be negative, got %v", c.Debounce())
	}
	if c.Poll() <= 0 {
		return fmt.Errorf("poll must be positive, got %v", c.Poll())
	}
	if c.Heartbeat() < 0 {
		return fmt.Errorf("heartbeat must not be negative, got %v", c.Heartbeat())
	}
	// Polling slower than the window collapses presses.
	if c.Debounce() > 0 && c.Poll() > c.Debounce() {
		return fmt.Errorf("poll (%v) must not exceed debounce (%v)", c.Poll(), c.Debounce())
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	return nil
}

// Debounce returns the debounce window.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceWindow)
}

// Poll returns the polling interval.
func (c Config) Poll() time.Duration {
	return time.Duration(c.PollInterval)
}

// Heartbeat returns the heartbeat interval; 0 disables it.
func (c Config) Heartbeat() time.Duration {
	return time.Duration(c.HeartbeatInterval)
}

// PinOptions addresses the configured pin.
func (c Config) PinOptions() gpio.Options {
	return gpio.Options{
		Driver: c.Driver,
		Chip:   c.Chip,
		Pin:    c.Pin,
		Name:   c.PinName,
	}
}
