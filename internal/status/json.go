package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string          `json:"event,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Pressed       []string        `json:"pressed"`
	LastCommand   *CommandJSON    `json:"last_command,omitempty"`
	Suppression   SuppressionJSON `json:"suppression"`
	ResetAtStart  bool            `json:"reset_at_start"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	StartTime     string          `json:"start_time"`
	Timestamp     string          `json:"timestamp"`
	MQTT          MQTTStatus      `json:"mqtt"`
	Counts        CountsJSON      `json:"command_counts"`
	Network       *NetworkJSON    `json:"network,omitempty"`
	Config        ConfigJSON      `json:"config"`
}

// CommandJSON is the JSON representation of the last command.
type CommandJSON struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
}

// SuppressionJSON is the JSON representation of classifier suppression state.
type SuppressionJSON struct {
	IgnoreRelease   bool `json:"ignore_release"`
	IgnoreAll       bool `json:"ignore_all"`
	LongPressFactor int  `json:"long_press_factor"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of command counts.
type CountsJSON struct {
	Press  int `json:"press"`
	Long   int `json:"long"`
	Repeat int `json:"repeat"`
	Chord  int `json:"chord"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Backend     string `json:"backend"`
	Layout      int    `json:"layout"`
	PollMs      int64  `json:"poll_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	LongPressMs int64  `json:"long_press_ms"`
	RepeatMs    int64  `json:"repeat_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPPort    string `json:"http_port"`
}

func buildInner(snap Snapshot) StatusInner {
	pressed := make([]string, 0, len(snap.Pressed))
	for _, ch := range snap.Pressed {
		pressed = append(pressed, ch.String())
	}

	inner := StatusInner{
		Pressed: pressed,
		Suppression: SuppressionJSON{
			IgnoreRelease:   snap.Suppression.IgnoreRelease,
			IgnoreAll:       snap.Suppression.IgnoreAll,
			LongPressFactor: snap.Suppression.LongPressFactor,
		},
		ResetAtStart:  snap.ResetAtStart,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Press:  snap.Counts.Press,
			Long:   snap.Counts.Long,
			Repeat: snap.Counts.Repeat,
			Chord:  snap.Counts.Chord,
		},
		Config: ConfigJSON{
			Backend:     snap.Config.Backend,
			Layout:      snap.Config.Layout,
			PollMs:      snap.Config.PollMs,
			DebounceMs:  snap.Config.DebounceMs,
			LongPressMs: snap.Config.LongPressMs,
			RepeatMs:    snap.Config.RepeatMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPPort:    snap.Config.HTTPPort,
		},
	}
	if snap.LastCommand.Command != "" {
		inner.LastCommand = &CommandJSON{
			Event:     string(snap.LastCommand.Command),
			Timestamp: snap.LastCommand.Timestamp.UTC().Format(time.RFC3339Nano),
		}
	}
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
