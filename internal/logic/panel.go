package logic

import (
	"fmt"
	"time"
)

// Source reads the raw pressed state of all channels in one transaction.
// Implemented by the GPIO and touch backends.
type Source interface {
	Read() (Mask, error)
}

// Buttons is the channel query capability set the classifier polls.
// Queries never cause I/O; only Sample and ReadNow do.
type Buttons interface {
	Sample(now time.Time) error
	IsPressed(ch Channel) bool
	WasReleased(ch Channel) bool
	PressedFor(d time.Duration, ch Channel) bool

	// ReadNow reads the raw mask without recording it.
	ReadNow() (Mask, error)
}

// Panel implements Buttons over a Source and a ChannelStore.
type Panel struct {
	*ChannelStore
	src Source
}

// NewPanel creates a panel reading from src.
func NewPanel(src Source, layout Layout, debounce time.Duration) *Panel {
	return &Panel{
		ChannelStore: NewChannelStore(layout, debounce),
		src:          src,
	}
}

// Sample reads the source and records the result.
// On a read error every channel is recorded as released, so a dead
// sensor reads as "no button pressed", and the error is returned.
func (p *Panel) Sample(now time.Time) error {
	m, err := p.src.Read()
	if err != nil {
		p.Apply(0, now)
		return fmt.Errorf("sample: %w", err)
	}
	p.Apply(m, now)
	return nil
}

// ReadNow reads the source directly, bypassing debounce. The store is
// left untouched so pending edges remain visible to the next Sample.
func (p *Panel) ReadNow() (Mask, error) {
	m, err := p.src.Read()
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}
	return m, nil
}
