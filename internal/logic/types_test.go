package logic

import (
	"errors"
	"testing"
	"time"
)

func TestMask(t *testing.T) {
	m := MaskOf(ChannelPause, ChannelDown)
	if m != 0b101 {
		t.Errorf("expected 0b101, got %08b", m)
	}
	if !m.Has(ChannelPause) || m.Has(ChannelUp) || !m.Has(ChannelDown) {
		t.Errorf("unexpected membership for %08b", m)
	}
}

func TestLayoutChannels(t *testing.T) {
	if n := len(ThreeButtons.Channels()); n != 3 {
		t.Errorf("expected 3 channels, got %d", n)
	}
	five := FiveButtons.Channels()
	if len(five) != NumChannels {
		t.Fatalf("expected %d channels, got %d", NumChannels, len(five))
	}
	for i, ch := range five {
		if ch != Channel(i) {
			t.Errorf("position %d: expected %v, got %v", i, Channel(i), ch)
		}
	}
	if Layout(4).Channels() != nil {
		t.Error("unknown layout should have no channels")
	}
}

func TestParseLayout(t *testing.T) {
	for _, n := range []int{3, 5} {
		l, err := ParseLayout(n)
		if err != nil || int(l) != n {
			t.Errorf("ParseLayout(%d) = %v, %v", n, l, err)
		}
	}
	if _, err := ParseLayout(4); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"layout", func(c *Config) { c.Layout = 2 }},
		{"debounce", func(c *Config) { c.Debounce = -time.Millisecond }},
		{"long press", func(c *Config) { c.LongPress = 0 }},
		{"repeat", func(c *Config) { c.Repeat = 0 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mod(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestCommandKind(t *testing.T) {
	tests := []struct {
		cmd  Command
		want Kind
	}{
		{CommandNone, KindNone},
		{CommandPause, KindPress},
		{CommandFive, KindPress},
		{CommandPauseLong, KindLong},
		{CommandDownLong, KindLong},
		{CommandUpLongRepeat, KindRepeat},
		{CommandFourLongRepeat, KindRepeat},
		{CommandAllLong, KindChord},
		{CommandUpDownLong, KindChord},
	}
	for _, tt := range tests {
		if got := tt.cmd.Kind(); got != tt.want {
			t.Errorf("%q.Kind() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestCommandChannel(t *testing.T) {
	if ch, ok := CommandDownLongRepeat.Channel(); !ok || ch != ChannelDown {
		t.Errorf("expected down, got %v %v", ch, ok)
	}
	if ch, ok := CommandPauseLong.Channel(); !ok || ch != ChannelPause {
		t.Errorf("expected pause, got %v %v", ch, ok)
	}
	if _, ok := CommandAllLong.Channel(); ok {
		t.Error("chord has no single channel")
	}
	if _, ok := CommandNone.Channel(); ok {
		t.Error("none has no channel")
	}
}

func TestChannelString(t *testing.T) {
	if ChannelUp.String() != "up" {
		t.Errorf("unexpected name %q", ChannelUp.String())
	}
	if Channel(7).String() != "channel(7)" {
		t.Errorf("unexpected name %q", Channel(7).String())
	}
}
