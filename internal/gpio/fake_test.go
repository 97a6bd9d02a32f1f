package gpio

import (
	"errors"
	"testing"
	"time"

	"github.com/sweeney/button-sensor/internal/logic"
)

func TestFakeReaderRead(t *testing.T) {
	samples := []logic.Mask{
		logic.MaskOf(logic.ChannelUp),
		logic.MaskOf(logic.ChannelPause, logic.ChannelDown),
		0,
	}

	f := NewFakeReader(samples)

	for i, want := range samples {
		got, err := f.Read()
		if err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if got != want {
			t.Errorf("sample %d: expected %08b, got %08b", i, want, got)
		}
	}

	// Further reads repeat the last sample
	got, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("repeat: expected 0, got %08b", got)
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil)

	if _, err := f.Read(); err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader([]logic.Mask{logic.MaskOf(logic.ChannelUp)})
	f.ReadError = errors.New("simulated error")

	_, err := f.Read()
	if err == nil {
		t.Fatal("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeReaderClose(t *testing.T) {
	f := NewFakeReader([]logic.Mask{0})

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestFakeReaderReset(t *testing.T) {
	f := NewFakeReader([]logic.Mask{logic.MaskOf(logic.ChannelUp), 0})

	f.Read()
	f.Reset()

	got, _ := f.Read()
	if got != logic.MaskOf(logic.ChannelUp) {
		t.Errorf("after reset: expected first sample, got %08b", got)
	}
}

func TestFakeReaderDrivesPanel(t *testing.T) {
	f := NewFakeReader([]logic.Mask{logic.MaskOf(logic.ChannelDown), 0})
	var _ logic.Source = f

	p := logic.NewPanel(f, logic.ThreeButtons, 0)
	p.Sample(time.Time{})
	if !p.IsPressed(logic.ChannelDown) {
		t.Error("expected down pressed")
	}
	p.Sample(time.Time{})
	if !p.WasReleased(logic.ChannelDown) {
		t.Error("expected down released")
	}
}

func TestPinsFor(t *testing.T) {
	if got := PinsFor(logic.ThreeButtons); len(got) != 3 || got[0] != DefaultPins[logic.ChannelPause] {
		t.Errorf("unexpected pins %v", got)
	}
	if got := PinsFor(logic.FiveButtons); len(got) != 5 || got[4] != DefaultPins[logic.ChannelFive] {
		t.Errorf("unexpected pins %v", got)
	}
}

func TestCheckPins(t *testing.T) {
	tests := []struct {
		name   string
		layout logic.Layout
		pins   []int
		ok     bool
	}{
		{"defaults", logic.ThreeButtons, PinsFor(logic.ThreeButtons), true},
		{"too few", logic.FiveButtons, []int{1, 2, 3}, false},
		{"duplicate", logic.ThreeButtons, []int{1, 2, 2}, false},
		{"negative", logic.ThreeButtons, []int{1, -2, 3}, false},
	}
	for _, tt := range tests {
		err := checkPins(tt.layout, tt.pins)
		if (err == nil) != tt.ok {
			t.Errorf("%s: unexpected result %v", tt.name, err)
		}
	}
}
