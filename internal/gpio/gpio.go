// Package gpio provides mechanical button reading with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"fmt"

	"github.com/sweeney/button-sensor/internal/logic"
)

// Reader reads the raw state of all button lines.
type Reader interface {
	// Read returns the mask of pressed channels.
	// Active level is already applied: a set bit means pressed.
	Read() (logic.Mask, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultChip is the GPIO character device used on a Raspberry Pi.
const DefaultChip = "gpiochip0"

// Default line offsets (BCM numbering), indexed by channel.
var DefaultPins = [logic.NumChannels]int{
	logic.ChannelPause: 5,
	logic.ChannelUp:    6,
	logic.ChannelDown:  13,
	logic.ChannelFour:  19,
	logic.ChannelFive:  26,
}

// PinsFor returns the default pins for the channels of layout.
func PinsFor(layout logic.Layout) []int {
	var pins []int
	for _, ch := range layout.Channels() {
		pins = append(pins, DefaultPins[ch])
	}
	return pins
}

func checkPins(layout logic.Layout, pins []int) error {
	if n := len(layout.Channels()); len(pins) != n {
		return fmt.Errorf("%d-button layout needs %d pins, got %d", n, n, len(pins))
	}
	seen := make(map[int]bool, len(pins))
	for _, p := range pins {
		if p < 0 {
			return fmt.Errorf("invalid pin %d", p)
		}
		if seen[p] {
			return fmt.Errorf("pin %d used twice", p)
		}
		seen[p] = true
	}
	return nil
}
