//go:build !linux

package gpio

import (
	"errors"

	"github.com/sweeney/button-sensor/internal/logic"
)

// RealReader is not available on non-Linux platforms.
type RealReader struct{}

// NewRealReader returns an error on non-Linux platforms.
func NewRealReader(chipName string, layout logic.Layout, pins []int, activeLow bool) (*RealReader, error) {
	if err := checkPins(layout, pins); err != nil {
		return nil, err
	}
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (r *RealReader) Read() (logic.Mask, error) {
	return 0, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealReader) Close() error {
	return nil
}
