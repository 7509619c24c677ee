package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Button        string     `json:"button"`
	LastEdge      string     `json:"last_edge,omitempty"`
	LastEdgeTime  string     `json:"last_edge_time,omitempty"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	ReadErrors    int        `json:"read_errors"`
	Counts        CountsJSON `json:"edge_counts"`
	Config        ConfigJSON `json:"config"`
}

// CountsJSON is the JSON representation of edge counts.
type CountsJSON struct {
	Pressed  int `json:"pressed"`
	Released int `json:"released"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Driver    string `json:"driver"`
	Pin       int    `json:"pin"`
	PullUp    bool   `json:"pull_up"`
	Invert    bool   `json:"invert"`
	Debounce  string `json:"debounce"`
	Poll      string `json:"poll"`
	Heartbeat string `json:"heartbeat"`
}

func levelString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}

// FormatJSON returns the indented JSON status.
func FormatJSON(snap Snapshot) []byte {
	inner := StatusInner{
		Button:        levelString(snap.Pressed),
		LastEdge:      string(snap.LastEdge),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		ReadErrors:    snap.ReadErrors,
		Counts: CountsJSON{
			Pressed:  snap.Counts.Pressed,
			Released: snap.Counts.Released,
		},
		Config: ConfigJSON{
			Driver:    snap.Config.Driver,
			Pin:       snap.Config.Pin,
			PullUp:    snap.Config.PullUp,
			Invert:    snap.Config.Invert,
			Debounce:  snap.Config.Debounce.String(),
			Poll:      snap.Config.Poll.String(),
			Heartbeat: snap.Config.Heartbeat.String(),
		},
	}
	if !snap.LastEdgeTime.IsZero() {
		inner.LastEdgeTime = snap.LastEdgeTime.UTC().Format(time.RFC3339)
	}

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}
