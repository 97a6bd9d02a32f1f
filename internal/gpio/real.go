//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/button-sensor/internal/logic"
)

// RealReader reads buttons from actual hardware using Linux GPIO character device.
type RealReader struct {
	chip     *gpiocdev.Chip
	lines    *gpiocdev.Lines
	channels []logic.Channel
	values   []int
}

// NewRealReader requests one input line per channel of layout; pins are
// given in channel order. Active-low buttons get a pull-up, active-high
// buttons a pull-down.
func NewRealReader(chipName string, layout logic.Layout, pins []int, activeLow bool) (*RealReader, error) {
	if err := checkPins(layout, pins); err != nil {
		return nil, err
	}

	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	lines, err := chip.RequestLines(pins, lineOptions(activeLow)...)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request pins %v: %w", pins, err)
	}

	return &RealReader{
		chip:     chip,
		lines:    lines,
		channels: layout.Channels(),
		values:   make([]int, len(pins)),
	}, nil
}

func lineOptions(activeLow bool) []gpiocdev.LineReqOption {
	if activeLow {
		return []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.AsActiveLow, gpiocdev.WithPullUp}
	}
	return []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.AsActiveHigh, gpiocdev.WithPullDown}
}

// Read returns the mask of pressed channels.
// The lines are requested with the button's active level, so an active
// value means pressed.
func (r *RealReader) Read() (logic.Mask, error) {
	if err := r.lines.Values(r.values); err != nil {
		return 0, fmt.Errorf("read pins: %w", err)
	}
	var m logic.Mask
	for i, ch := range r.channels {
		if r.values[i] == 1 {
			m = m.With(ch)
		}
	}
	return m, nil
}

// Close releases GPIO resources.
// Reconfigures lines to input with pull-down (matching Pi boot defaults)
// before closing.
func (r *RealReader) Close() error {
	var errs []error

	if r.lines != nil {
		if err := r.lines.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pins: %w", err))
		}
		if err := r.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pins: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
