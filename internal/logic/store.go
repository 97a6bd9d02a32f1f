package logic

import (
	"fmt"
	"time"
)

// ChannelState is the sampled state of a single channel.
type ChannelState struct {
	// Pressed is the accepted (debounced) state.
	Pressed bool
	// Changed is true when the latest sample changed Pressed.
	Changed bool
	// LastChange is the time Pressed last changed.
	LastChange time.Time
	// LastSample is the time of the latest sample.
	LastSample time.Time
}

// ChannelStore holds per-channel state for one layout.
//
// A non-zero debounce applies a lockout after each accepted change: samples
// arriving within debounce of the last change are ignored. With zero debounce
// the store is a plain edge detector.
type ChannelStore struct {
	layout   Layout
	debounce time.Duration
	states   [NumChannels]ChannelState
}

// NewChannelStore creates a store for the channels of layout.
// All channels start released.
func NewChannelStore(layout Layout, debounce time.Duration) *ChannelStore {
	if layout.Channels() == nil {
		panic(fmt.Sprintf("logic: unknown layout %d", int(layout)))
	}
	return &ChannelStore{layout: layout, debounce: debounce}
}

// Layout returns the store's channel layout.
func (s *ChannelStore) Layout() Layout {
	return s.layout
}

// Update records a raw sample for ch taken at now.
func (s *ChannelStore) Update(ch Channel, pressed bool, now time.Time) {
	st := s.state(ch)
	if now.Sub(st.LastChange) < s.debounce {
		st.Changed = false
	} else {
		st.Changed = pressed != st.Pressed
		st.Pressed = pressed
		if st.Changed {
			st.LastChange = now
		}
	}
	st.LastSample = now
}

// Apply records one sample for every channel of the layout.
func (s *ChannelStore) Apply(m Mask, now time.Time) {
	for _, ch := range s.layout.Channels() {
		s.Update(ch, m.Has(ch), now)
	}
}

// IsPressed reports the accepted state of ch as of the latest sample.
func (s *ChannelStore) IsPressed(ch Channel) bool {
	return s.state(ch).Pressed
}

// WasReleased reports whether ch went from pressed to released on the latest sample.
func (s *ChannelStore) WasReleased(ch Channel) bool {
	st := s.state(ch)
	return !st.Pressed && st.Changed
}

// wasPressed reports whether ch went from released to pressed on the latest sample.
func (s *ChannelStore) wasPressed(ch Channel) bool {
	st := s.state(ch)
	return st.Pressed && st.Changed
}

// PressedFor reports whether ch is pressed and has been for at least d,
// measured between the last change and the latest sample.
func (s *ChannelStore) PressedFor(d time.Duration, ch Channel) bool {
	st := s.state(ch)
	return st.Pressed && st.LastSample.Sub(st.LastChange) >= d
}

// Pressed returns the mask of currently pressed channels.
func (s *ChannelStore) Pressed() Mask {
	var m Mask
	for _, ch := range s.layout.Channels() {
		if s.states[ch].Pressed {
			m = m.With(ch)
		}
	}
	return m
}

// State returns a copy of the state of ch.
func (s *ChannelStore) State(ch Channel) ChannelState {
	return *s.state(ch)
}

// state resolves ch to its slot. Channels outside the layout are a
// programming error.
func (s *ChannelStore) state(ch Channel) *ChannelState {
	if !s.layout.Contains(ch) {
		panic(fmt.Sprintf("logic: %v is not part of the %d-button layout", ch, int(s.layout)))
	}
	return &s.states[ch]
}
