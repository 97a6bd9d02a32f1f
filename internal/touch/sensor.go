// Package touch drives a 12-channel capacitive touch controller
// (MPR121 register map) over I2C and reports touched electrodes as
// button channels.
package touch

import (
	"errors"
	"fmt"

	"github.com/sweeney/button-sensor/internal/logic"
)

// ErrUnmappedChannel is returned by New when a layout channel has no electrode.
var ErrUnmappedChannel = errors.New("touch: channel has no electrode")

// Bus performs one combined write/read transaction with the sensor.
// periph's i2c.Dev satisfies it.
type Bus interface {
	Tx(w, r []byte) error
}

// electrodeOf maps every channel to the electrode wired to it.
var electrodeOf = map[logic.Channel]uint8{
	logic.ChannelPause: 0,
	logic.ChannelUp:    1,
	logic.ChannelDown:  2,
	logic.ChannelFour:  3,
	logic.ChannelFive:  4,
}

// Sensor reads touch status and converts it to a channel mask.
// Not safe for concurrent use.
type Sensor struct {
	bus      Bus
	channels []logic.Channel
	bits     []uint8
	buf      [1]byte
}

// New resolves the electrode of every layout channel. It fails if any
// channel is unmapped.
func New(bus Bus, layout logic.Layout) (*Sensor, error) {
	chs := layout.Channels()
	if chs == nil {
		return nil, fmt.Errorf("touch: unknown layout %d", int(layout))
	}
	s := &Sensor{bus: bus, channels: chs}
	for _, ch := range chs {
		e, ok := electrodeOf[ch]
		if !ok || int(e) >= len(thresholds) {
			return nil, fmt.Errorf("%w: %v", ErrUnmappedChannel, ch)
		}
		s.bits = append(s.bits, 1<<e)
	}
	return s, nil
}

// Init runs the configuration sequence. It must complete before Read.
func (s *Sensor) Init() error {
	for _, w := range initSequence(len(s.channels)) {
		if err := s.write(w.reg, w.val); err != nil {
			return err
		}
	}
	return nil
}

// Read fetches the touch status register and returns the pressed channels.
func (s *Sensor) Read() (logic.Mask, error) {
	if err := s.bus.Tx([]byte{regTouchStatus}, s.buf[:]); err != nil {
		return 0, fmt.Errorf("read touch status: %w", err)
	}
	status := s.buf[0]
	var m logic.Mask
	for i, ch := range s.channels {
		if status&s.bits[i] != 0 {
			m = m.With(ch)
		}
	}
	return m, nil
}

func (s *Sensor) write(reg, val uint8) error {
	if err := s.bus.Tx([]byte{reg, val}, nil); err != nil {
		return fmt.Errorf("write register 0x%02X: %w", reg, err)
	}
	return nil
}
