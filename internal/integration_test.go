package internal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/button-sensor/internal/button"
	"github.com/sweeney/button-sensor/internal/config"
	"github.com/sweeney/button-sensor/internal/gpio"
	"github.com/sweeney/button-sensor/internal/status"
	"github.com/sweeney/button-sensor/internal/timer"
)

// edgeLog is a debounced edge with the poll index it fired on.
type edgeLog struct {
	poll int
	edge status.Edge
}

// simulate polls btn once per raw level, step apart, the way the daemon
// loop does, and records edges into tracker.
func simulate(t *testing.T, btn *button.Button, pin *gpio.FakePin, clock *timer.ManualClock, tracker *status.Tracker, step time.Duration, levels []bool) []edgeLog {
	t.Helper()
	var edges []edgeLog
	for i, level := range levels {
		if i > 0 {
			clock.Advance(step)
		}
		pin.Set(level)
		now := clock.Now()

		pressed := btn.OnPressed()
		released := btn.OnReleased()
		if pressed && released {
			t.Fatalf("poll %d: press and release on the same poll", i)
		}
		if err := btn.Err(); err != nil {
			t.Fatalf("poll %d: unexpected read error: %v", i, err)
		}
		if pressed {
			tracker.Record(status.EdgePressed, now)
			tracker.SetPressed(true)
			edges = append(edges, edgeLog{i, status.EdgePressed})
		}
		if released {
			tracker.Record(status.EdgeReleased, now)
			tracker.SetPressed(false)
			edges = append(edges, edgeLog{i, status.EdgeReleased})
		}
	}
	return edges
}

// TestIntegrationPullUpButton runs an active-low button against a pull-up
// through the default configuration: raw high is idle, raw low is pressed.
func TestIntegrationPullUpButton(t *testing.T) {
	cfg := config.Default()
	cfg.DebounceWindow = config.Duration(20 * time.Millisecond)
	cfg.PollInterval = config.Duration(5 * time.Millisecond)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := timer.NewManualClock(start)
	pin := gpio.NewFakePin(true)

	btn, err := button.New(pin, cfg.PullUp,
		button.WithClock(clock.Now),
		button.WithDebounceTimeout(cfg.Debounce()),
		button.WithInvert(cfg.Invert),
	)
	if err != nil {
		t.Fatalf("button.New: %v", err)
	}
	if pin.Mode() != gpio.ModeInputPullUp {
		t.Errorf("expected pull-up mode, got %v", pin.Mode())
	}

	// Raw levels at 5ms polls (true = high = idle).
	levels := []bool{
		true, true, true, true, // idle: startup release at poll 0
		false, true, false, true, // press bounce
		false, false, false, false, false, false, // held low: press at poll 11
		true, false, true, // release bounce
		true, true, true, true, true, true, // released: release at poll 19
	}

	tracker := status.NewTracker(start, status.Config{Driver: string(cfg.Driver), Pin: cfg.Pin})
	edges := simulate(t, btn, pin, clock, tracker, cfg.Poll(), levels)

	want := []edgeLog{
		{0, status.EdgeReleased},
		{11, status.EdgePressed},
		{19, status.EdgeReleased},
	}
	if len(edges) != len(want) {
		t.Fatalf("expected edges %v, got %v", want, edges)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d: expected %v, got %v", i, want[i], edges[i])
		}
	}

	var sj status.StatusJSON
	if err := json.Unmarshal(status.FormatJSON(tracker.Snapshot(clock.Now())), &sj); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if sj.Status.Button != "RELEASED" {
		t.Errorf("status button: got %q", sj.Status.Button)
	}
	if sj.Status.Counts.Pressed != 1 || sj.Status.Counts.Released != 2 {
		t.Errorf("status counts: got %+v", sj.Status.Counts)
	}
}

// TestIntegrationSlowPolling polls slower than the debounce window: every
// sampled level change is accepted on the first poll that sees it.
func TestIntegrationSlowPolling(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := timer.NewManualClock(start)
	pin := gpio.NewFakePin(false)

	btn, err := button.New(pin, false,
		button.WithClock(clock.Now),
		button.WithDebounceTimeout(10*time.Millisecond),
		button.WithInvert(false),
	)
	if err != nil {
		t.Fatalf("button.New: %v", err)
	}

	// 50ms polls: every press that is sampled at all passes the window.
	levels := []bool{false, true, true, false, true, false, false}
	tracker := status.NewTracker(start, status.Config{})
	simulate(t, btn, pin, clock, tracker, 50*time.Millisecond, levels)

	snap := tracker.Snapshot(clock.Now())
	if snap.Counts.Pressed != 2 {
		t.Errorf("expected 2 presses, got %d", snap.Counts.Pressed)
	}
	if snap.Counts.Released != 3 {
		t.Errorf("expected 3 releases (startup plus two), got %d", snap.Counts.Released)
	}
}

// TestIntegrationRuntimeReconfigure changes timeout and polarity mid-run.
func TestIntegrationRuntimeReconfigure(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := timer.NewManualClock(start)
	pin := gpio.NewFakePin(false)

	btn, err := button.New(pin, false, button.WithClock(clock.Now), button.WithInvert(false))
	if err != nil {
		t.Fatalf("button.New: %v", err)
	}
	btn.SetDebounceTimeout(100 * time.Millisecond)

	tracker := status.NewTracker(start, status.Config{})
	// Press held 60ms at 10ms polls: too short for a 100ms window.
	levels := []bool{false, true, true, true, true, true, true, false}
	edges := simulate(t, btn, pin, clock, tracker, 10*time.Millisecond, levels)
	for _, e := range edges {
		if e.edge == status.EdgePressed {
			t.Errorf("unexpected press at poll %d", e.poll)
		}
	}

	// Same wiring read inverted: the idle low now reads pressed.
	btn.InvertReading()
	btn.InvertReading()
	if btn.IsPressed() {
		t.Error("double invert should leave idle low as released")
	}
	btn.InvertReading()
	if !btn.IsPressed() {
		t.Error("single invert should read idle low as pressed")
	}
}
