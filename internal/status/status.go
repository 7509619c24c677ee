// Package status tracks what the poll loop has seen since startup.
// It is owned by the loop goroutine and is not safe for concurrent use.
package status

import "time"

// Edge is a debounced transition.
type Edge string

const (
	EdgePressed  Edge = "PRESSED"
	EdgeReleased Edge = "RELEASED"
)

// Counts tracks the number of each edge since startup.
type Counts struct {
	Pressed  int
	Released int
}

// Config contains daemon configuration for display.
type Config struct {
	Driver    string
	Pin       int
	PullUp    bool
	Invert    bool
	Debounce  time.Duration
	Poll      time.Duration
	Heartbeat time.Duration
}

// Snapshot is a point-in-time view of the tracker.
type Snapshot struct {
	Pressed      bool
	Counts       Counts
	LastEdge     Edge
	LastEdgeTime time.Time
	ReadErrors   int
	StartTime    time.Time
	Now          time.Time
	Config       Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Heartbeat contains information for a periodic heartbeat log line.
type Heartbeat struct {
	Timestamp  time.Time
	Uptime     time.Duration
	Counts     Counts
	ReadErrors int
}

// Tracker accumulates edges and level samples.
type Tracker struct {
	snap          Snapshot
	lastHeartbeat time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		lastHeartbeat: startTime,
	}
}

// Record counts a debounced edge seen at t.
func (t *Tracker) Record(edge Edge, at time.Time) {
	switch edge {
	case EdgePressed:
		t.snap.Counts.Pressed++
	case EdgeReleased:
		t.snap.Counts.Released++
	default:
		return
	}
	t.snap.LastEdge = edge
	t.snap.LastEdgeTime = at
}

// SetPressed stores the button level.
func (t *Tracker) SetPressed(pressed bool) {
	t.snap.Pressed = pressed
}

// RecordReadError counts a failed pin read.
func (t *Tracker) RecordReadError() {
	t.snap.ReadErrors++
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed, or if interval is <= 0 (disabled).
func (t *Tracker) CheckHeartbeat(now time.Time, interval time.Duration) *Heartbeat {
	if interval <= 0 {
		return nil
	}
	if now.Sub(t.lastHeartbeat) < interval {
		return nil
	}

	t.lastHeartbeat = now
	return &Heartbeat{
		Timestamp:  now,
		Uptime:     now.Sub(t.snap.StartTime),
		Counts:     t.snap.Counts,
		ReadErrors: t.snap.ReadErrors,
	}
}

// Snapshot returns a copy of the tracker state as of now.
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	s := t.snap
	s.Now = now
	return s
}
