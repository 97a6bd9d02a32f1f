// Package logic contains pure command classification logic for button panels.
// This package has NO external dependencies (no GPIO, I2C, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"errors"
	"fmt"
	"time"
)

// Channel identifies a logical input channel.
type Channel int

const (
	ChannelPause Channel = iota
	ChannelUp
	ChannelDown
	ChannelFour
	ChannelFive

	// NumChannels is the number of channels the largest layout uses.
	NumChannels = 5
)

var channelNames = [NumChannels]string{
	ChannelPause: "pause",
	ChannelUp:    "up",
	ChannelDown:  "down",
	ChannelFour:  "four",
	ChannelFive:  "five",
}

func (c Channel) String() string {
	if c < 0 || c >= NumChannels {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// Mask is a bitmask of pressed channels; bit n is set when Channel n is pressed.
type Mask uint8

// Has reports whether ch is set in the mask.
func (m Mask) Has(ch Channel) bool {
	return m&(1<<uint(ch)) != 0
}

// With returns the mask with ch set.
func (m Mask) With(ch Channel) Mask {
	return m | 1<<uint(ch)
}

// MaskOf builds a mask with the given channels set.
func MaskOf(chs ...Channel) Mask {
	var m Mask
	for _, ch := range chs {
		m = m.With(ch)
	}
	return m
}

// Layout selects the active channel set.
type Layout int

const (
	ThreeButtons Layout = 3
	FiveButtons  Layout = 5
)

// Channels returns the channels of the layout in evaluation order.
func (l Layout) Channels() []Channel {
	switch l {
	case ThreeButtons:
		return []Channel{ChannelPause, ChannelUp, ChannelDown}
	case FiveButtons:
		return []Channel{ChannelPause, ChannelUp, ChannelDown, ChannelFour, ChannelFive}
	}
	return nil
}

// Contains reports whether ch belongs to the layout.
func (l Layout) Contains(ch Channel) bool {
	for _, c := range l.Channels() {
		if c == ch {
			return true
		}
	}
	return false
}

// ParseLayout converts a channel count into a Layout.
func ParseLayout(n int) (Layout, error) {
	switch Layout(n) {
	case ThreeButtons, FiveButtons:
		return Layout(n), nil
	}
	return 0, fmt.Errorf("%w: layout must be 3 or 5 buttons, got %d", ErrInvalidConfig, n)
}

// Command is a raw command event produced by the classifier.
type Command string

const (
	CommandNone           Command = ""
	CommandPause          Command = "PAUSE"
	CommandPauseLong      Command = "PAUSE_LONG"
	CommandUp             Command = "UP"
	CommandUpLong         Command = "UP_LONG"
	CommandUpLongRepeat   Command = "UP_LONG_REPEAT"
	CommandDown           Command = "DOWN"
	CommandDownLong       Command = "DOWN_LONG"
	CommandDownLongRepeat Command = "DOWN_LONG_REPEAT"
	CommandFour           Command = "FOUR"
	CommandFourLong       Command = "FOUR_LONG"
	CommandFourLongRepeat Command = "FOUR_LONG_REPEAT"
	CommandFive           Command = "FIVE"
	CommandFiveLong       Command = "FIVE_LONG"
	CommandFiveLongRepeat Command = "FIVE_LONG_REPEAT"
	CommandAllLong        Command = "ALL_LONG"
	CommandUpDownLong     Command = "UPDOWN_LONG"
)

// channelCommands lists, per channel, the plain, long and repeat commands.
// The pause channel has no repeat variant.
var channelCommands = [NumChannels][3]Command{
	ChannelPause: {CommandPause, CommandPauseLong, CommandNone},
	ChannelUp:    {CommandUp, CommandUpLong, CommandUpLongRepeat},
	ChannelDown:  {CommandDown, CommandDownLong, CommandDownLongRepeat},
	ChannelFour:  {CommandFour, CommandFourLong, CommandFourLongRepeat},
	ChannelFive:  {CommandFive, CommandFiveLong, CommandFiveLongRepeat},
}

// Kind groups commands for counting and display.
type Kind string

const (
	KindNone   Kind = ""
	KindPress  Kind = "press"
	KindLong   Kind = "long"
	KindRepeat Kind = "repeat"
	KindChord  Kind = "chord"
)

// Kind returns the command's group.
func (c Command) Kind() Kind {
	switch c {
	case CommandNone:
		return KindNone
	case CommandAllLong, CommandUpDownLong:
		return KindChord
	}
	for _, cmds := range channelCommands {
		switch c {
		case cmds[0]:
			return KindPress
		case cmds[1]:
			return KindLong
		case cmds[2]:
			return KindRepeat
		}
	}
	return KindNone
}

// Channel returns the channel a single-channel command belongs to.
// ok is false for none and chord commands.
func (c Command) Channel() (ch Channel, ok bool) {
	if c == CommandNone {
		return 0, false
	}
	for i, cmds := range channelCommands {
		for _, cmd := range cmds {
			if cmd == c {
				return Channel(i), true
			}
		}
	}
	return 0, false
}

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the classification timing and channel layout.
// It is resolved once at startup and never mutated afterwards.
type Config struct {
	Layout    Layout
	Debounce  time.Duration // mechanical debounce lockout; zero for touch
	LongPress time.Duration // hold time before the first long-press event
	Repeat    time.Duration // extra hold per subsequent repeat event
}

// DefaultConfig returns the default three-button timing.
func DefaultConfig() Config {
	return Config{
		Layout:    ThreeButtons,
		Debounce:  25 * time.Millisecond,
		LongPress: 1000 * time.Millisecond,
		Repeat:    500 * time.Millisecond,
	}
}

// Validate checks the configuration for programming errors.
func (c Config) Validate() error {
	if c.Layout.Channels() == nil {
		return fmt.Errorf("%w: unknown layout %d", ErrInvalidConfig, int(c.Layout))
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: negative debounce %v", ErrInvalidConfig, c.Debounce)
	}
	if c.LongPress <= 0 {
		return fmt.Errorf("%w: long press must be positive, got %v", ErrInvalidConfig, c.LongPress)
	}
	if c.Repeat <= 0 {
		return fmt.Errorf("%w: repeat must be positive, got %v", ErrInvalidConfig, c.Repeat)
	}
	return nil
}

// Suppression is a copy of the classifier's cross-poll memory.
type Suppression struct {
	IgnoreRelease   bool
	IgnoreAll       bool
	LongPressFactor int
}

// CommandCounts tracks the number of commands of each kind since startup.
type CommandCounts struct {
	Press  int
	Long   int
	Repeat int
	Chord  int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    CommandCounts
}

// Event is a classified command with the time it was observed.
type Event struct {
	Timestamp time.Time
	Command   Command
}
