package logic

import "time"

// Classifier turns sampled channel state into raw commands.
// It is polled at a steady cadence by the caller and never waits.
type Classifier struct {
	buttons   Buttons
	channels  []Channel
	fiveChord bool
	longPress time.Duration
	repeat    time.Duration

	// Suppression state, reset together once every channel is released.
	ignoreRelease   bool
	ignoreAll       bool
	longPressFactor int

	startTime     time.Time
	lastHeartbeat time.Time
	counts        CommandCounts
}

// NewClassifier creates a classifier polling buttons with the given config.
// The config must have passed Validate. startTime is used for heartbeat uptime.
func NewClassifier(buttons Buttons, cfg Config, startTime time.Time) *Classifier {
	return &Classifier{
		buttons:       buttons,
		channels:      cfg.Layout.Channels(),
		fiveChord:     cfg.Layout == FiveButtons,
		longPress:     cfg.LongPress,
		repeat:        cfg.Repeat,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Poll samples all channels and returns at most one command.
// A sampling error is returned alongside the command classified from the
// degraded (all released) sample.
func (c *Classifier) Poll(now time.Time) (Command, error) {
	err := c.buttons.Sample(now)
	cmd := c.classify()
	if cmd != CommandNone {
		c.count(cmd)
	}
	return cmd, err
}

func (c *Classifier) classify() Command {
	if (c.ignoreRelease || c.ignoreAll) && c.IsNoButton() {
		c.resetSuppression()
		return CommandNone
	}
	if c.ignoreAll {
		return CommandNone
	}

	if c.chord(ChannelPause, ChannelUp, ChannelDown) {
		c.ignoreAll = true
		return CommandAllLong
	}
	if c.fiveChord && c.chord(ChannelPause, ChannelFour, ChannelFive) {
		c.ignoreAll = true
		return CommandAllLong
	}
	if c.chord(ChannelUp, ChannelDown) {
		c.ignoreAll = true
		return CommandUpDownLong
	}

	threshold := c.longPress + time.Duration(c.longPressFactor)*c.repeat
	for _, ch := range c.channels {
		cmds := channelCommands[ch]
		if c.buttons.WasReleased(ch) && !c.ignoreRelease {
			return cmds[0]
		}
		if c.buttons.PressedFor(threshold, ch) {
			cmd := cmds[1]
			if c.longPressFactor > 0 {
				cmd = cmds[2]
			}
			// A held channel without a repeat variant still ends evaluation.
			if cmd != CommandNone {
				c.longPressFactor++
				c.ignoreRelease = true
			}
			return cmd
		}
	}
	return CommandNone
}

// chord reports whether all chs are pressed and at least one of them
// has been held for the long-press threshold.
func (c *Classifier) chord(chs ...Channel) bool {
	long := false
	for _, ch := range chs {
		if !c.buttons.IsPressed(ch) {
			return false
		}
		if c.buttons.PressedFor(c.longPress, ch) {
			long = true
		}
	}
	return long
}

func (c *Classifier) resetSuppression() {
	c.ignoreRelease = false
	c.ignoreAll = false
	c.longPressFactor = 0
}

func (c *Classifier) count(cmd Command) {
	switch cmd.Kind() {
	case KindPress:
		c.counts.Press++
	case KindLong:
		c.counts.Long++
	case KindRepeat:
		c.counts.Repeat++
	case KindChord:
		c.counts.Chord++
	}
}

// IsNoButton reports whether no channel is pressed as of the latest sample.
func (c *Classifier) IsNoButton() bool {
	for _, ch := range c.channels {
		if c.buttons.IsPressed(ch) {
			return false
		}
	}
	return true
}

// IsReset reads the raw inputs and reports whether pause, up and down are
// all pressed. Neither channel state nor suppression is consulted or changed.
func (c *Classifier) IsReset() (bool, error) {
	m, err := c.buttons.ReadNow()
	if err != nil {
		return false, err
	}
	reset := MaskOf(ChannelPause, ChannelUp, ChannelDown)
	return m&reset == reset, nil
}

// Suppression returns a copy of the cross-poll suppression state.
func (c *Classifier) Suppression() Suppression {
	return Suppression{
		IgnoreRelease:   c.ignoreRelease,
		IgnoreAll:       c.ignoreAll,
		LongPressFactor: c.longPressFactor,
	}
}

// Counts returns the command counts since startup.
func (c *Classifier) Counts() CommandCounts {
	return c.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed
// or if interval is <= 0 (disabled).
func (c *Classifier) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}
	if now.Sub(c.lastHeartbeat) < interval {
		return nil
	}
	c.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(c.startTime),
		Counts:    c.counts,
	}
}
