package touch

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// RealBus is an I2C device handle on a host bus.
type RealBus struct {
	i2c.Dev
	closer i2c.BusCloser
}

// OpenBus initializes host drivers and opens the named I2C bus
// ("" selects the first available) addressed at addr.
func OpenBus(name string, addr uint16) (*RealBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	return &RealBus{
		Dev:    i2c.Dev{Bus: b, Addr: addr},
		closer: b,
	}, nil
}

// Close releases the bus.
func (b *RealBus) Close() error {
	return b.closer.Close()
}
