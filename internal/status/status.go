// Package status provides a thread-safe status tracker for the button-sensor daemon.
// It is read by the HTTP handlers and by heartbeat/lifecycle MQTT events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/button-sensor/internal/logic"
)

// NetworkInfo contains network state.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	Backend     string // "gpio" or "touch"
	Layout      int    // 3 or 5 buttons
	PollMs      int64
	DebounceMs  int64
	LongPressMs int64
	RepeatMs    int64
	HeartbeatMs int64
	Broker      string
	HTTPPort    string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Pressed       []logic.Channel
	LastCommand   logic.Event
	Suppression   logic.Suppression
	Counts        logic.CommandCounts
	ResetAtStart  bool
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets pressed channels, suppression state, and command counts.
// Called from runLoop on every tick.
func (t *Tracker) Update(pressed []logic.Channel, sup logic.Suppression, counts logic.CommandCounts) {
	cp := append([]logic.Channel(nil), pressed...)
	t.mu.Lock()
	t.snap.Pressed = cp
	t.snap.Suppression = sup
	t.snap.Counts = counts
	t.mu.Unlock()
}

// RecordCommand stores the most recent command event.
func (t *Tracker) RecordCommand(ev logic.Event) {
	t.mu.Lock()
	t.snap.LastCommand = ev
	t.mu.Unlock()
}

// SetResetAtStart records the result of the startup reset probe.
func (t *Tracker) SetResetAtStart(reset bool) {
	t.mu.Lock()
	t.snap.ResetAtStart = reset
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
