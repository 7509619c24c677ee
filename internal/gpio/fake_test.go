package gpio

import (
	"errors"
	"testing"
)

func TestFakePinRead(t *testing.T) {
	f := NewFakePin(true, false, true)

	want := []bool{true, false, true, true} // last sample repeats
	for i, w := range want {
		got, err := f.Read()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d: expected %v, got %v", i, w, got)
		}
	}
	if f.Reads != len(want) {
		t.Errorf("expected %d reads, got %d", len(want), f.Reads)
	}
}

func TestFakePinNoSamples(t *testing.T) {
	f := NewFakePin()

	_, err := f.Read()
	if err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakePinReadError(t *testing.T) {
	f := NewFakePin(true)
	f.ReadError = errors.New("simulated error")

	level, err := f.Read()
	if err == nil || err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
	if !level {
		t.Error("scripted level should still be returned alongside the error")
	}
}

func TestFakePinSet(t *testing.T) {
	f := NewFakePin(false, false, false)
	f.Read()

	f.Set(true)
	for i := 0; i < 3; i++ {
		if got, _ := f.Read(); !got {
			t.Errorf("read %d after Set(true): got false", i)
		}
	}
}

func TestFakePinModes(t *testing.T) {
	f := NewFakePin(true)
	if f.Mode() != ModeInput {
		t.Errorf("expected default mode input, got %v", f.Mode())
	}

	if err := f.SetMode(ModeInputPullUp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Mode() != ModeInputPullUp {
		t.Errorf("expected input_pullup, got %v", f.Mode())
	}

	f.ModeError = errors.New("busy")
	if err := f.SetMode(ModeInput); err == nil {
		t.Error("expected mode error")
	}
	if len(f.Modes) != 1 {
		t.Errorf("failed SetMode should not be recorded, got %v", f.Modes)
	}
}

func TestFakePinCloseReset(t *testing.T) {
	f := NewFakePin(true, false)
	f.Read()
	f.SetMode(ModeInputPullUp)

	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Reset()
	if f.Closed || f.Reads != 0 || len(f.Modes) != 0 {
		t.Errorf("reset did not clear state: %+v", f)
	}
	if got, _ := f.Read(); !got {
		t.Error("after reset: expected first sample again")
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeInput, "input"},
		{ModeInputPullUp, "input_pullup"},
		{Mode(7), "Mode(7)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "spi", Pin: 4})
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
