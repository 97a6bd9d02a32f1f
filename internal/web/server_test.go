package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/button-sensor/internal/logic"
	"github.com/sweeney/button-sensor/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		Backend:     "gpio",
		Layout:      3,
		PollMs:      10,
		DebounceMs:  25,
		LongPressMs: 1000,
		RepeatMs:    500,
		HeartbeatMs: 900000,
		Broker:      "tcp://192.168.1.200:1883",
		HTTPPort:    "80",
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func getStatus(t *testing.T, url string) status.StatusJSON {
	t.Helper()
	resp, err := http.Get(url + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	return sj
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update([]logic.Channel{logic.ChannelUp}, logic.Suppression{IgnoreRelease: true, LongPressFactor: 2},
		logic.CommandCounts{Press: 5, Long: 1, Repeat: 2})
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if len(sj.Status.Pressed) != 1 || sj.Status.Pressed[0] != "up" {
		t.Errorf("Pressed: got %v, want [up]", sj.Status.Pressed)
	}
	if !sj.Status.Suppression.IgnoreRelease || sj.Status.Suppression.LongPressFactor != 2 {
		t.Errorf("Suppression: got %+v", sj.Status.Suppression)
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("MQTT.Broker: got %q", sj.Status.MQTT.Broker)
	}
	if sj.Status.Counts.Press != 5 || sj.Status.Counts.Repeat != 2 {
		t.Errorf("Counts: got %+v", sj.Status.Counts)
	}
	if sj.Status.Config.LongPressMs != 1000 {
		t.Errorf("Config.LongPressMs: got %d, want 1000", sj.Status.Config.LongPressMs)
	}
	if sj.Status.Config.Backend != "gpio" {
		t.Errorf("Config.Backend: got %q", sj.Status.Config.Backend)
	}
}

func TestJSONBeforeFirstCommand(t *testing.T) {
	ts, _ := newTestServer(t)
	sj := getStatus(t, ts.URL)

	if sj.Status.Pressed == nil || len(sj.Status.Pressed) != 0 {
		t.Errorf("Pressed: got %v, want empty array", sj.Status.Pressed)
	}
	if sj.Status.LastCommand != nil {
		t.Errorf("LastCommand: got %+v, want nil", sj.Status.LastCommand)
	}
}

func TestJSONNetworkInfo(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.SetNetwork(&status.NetworkInfo{
		Type:   "wifi",
		IP:     "192.168.1.42",
		Status: "connected",
		SSID:   "MyNet",
	})

	sj := getStatus(t, ts.URL)
	if sj.Status.Network == nil {
		t.Fatal("expected Network in JSON")
	}
	if sj.Status.Network.IP != "192.168.1.42" {
		t.Errorf("Network.IP: got %q, want 192.168.1.42", sj.Status.Network.IP)
	}
}

func TestHTMLEndpointRoot(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update([]logic.Channel{logic.ChannelDown}, logic.Suppression{}, logic.CommandCounts{Chord: 3})
	tr.RecordCommand(logic.Event{
		Timestamp: time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC),
		Command:   logic.CommandUpDownLong,
	})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	for _, want := range []string{"Button Sensor", "UPDOWN_LONG", `<th>down</th><td class="pressed">`, `<th>up</th><td class="released">`} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, "<th>four</th>") {
		t.Error("three-button page should not list channel four")
	}
}

func TestHTMLEndpointIndexHTML(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/index.html")
	if err != nil {
		t.Fatalf("GET /index.html: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
}

func TestNotFoundForUnknownPath(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nonexistent")
	if err != nil {
		t.Fatalf("GET /nonexistent: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestStateChangesReflectedInResponse(t *testing.T) {
	ts, tr := newTestServer(t)

	sj1 := getStatus(t, ts.URL)
	if sj1.Status.MQTT.Connected {
		t.Error("expected MQTT disconnected initially")
	}

	tr.RecordCommand(logic.Event{
		Timestamp: time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
		Command:   logic.CommandPause,
	})
	tr.SetMQTTConnected(true)

	sj2 := getStatus(t, ts.URL)
	if sj2.Status.LastCommand == nil || sj2.Status.LastCommand.Event != "PAUSE" {
		t.Errorf("LastCommand: got %+v, want PAUSE", sj2.Status.LastCommand)
	}
	if !sj2.Status.MQTT.Connected {
		t.Error("expected MQTT connected after update")
	}
}

func TestButtonsEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update([]logic.Channel{logic.ChannelUp}, logic.Suppression{IgnoreRelease: true, LongPressFactor: 1}, logic.CommandCounts{Long: 1})
	tr.RecordCommand(logic.Event{Command: logic.CommandUpLong})

	resp, err := http.Get(ts.URL + "/buttons.json")
	if err != nil {
		t.Fatalf("GET /buttons.json: %v", err)
	}
	defer resp.Body.Close()

	var bj ButtonsJSON
	if err := json.NewDecoder(resp.Body).Decode(&bj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	want := []ButtonJSON{{"pause", false}, {"up", true}, {"down", false}}
	if len(bj.Buttons) != len(want) {
		t.Fatalf("buttons: got %+v, want %+v", bj.Buttons, want)
	}
	for i := range want {
		if bj.Buttons[i] != want[i] {
			t.Errorf("button %d: got %+v, want %+v", i, bj.Buttons[i], want[i])
		}
	}
	if bj.LastCommand != "UP_LONG" {
		t.Errorf("LastCommand: got %q, want UP_LONG", bj.LastCommand)
	}
	if !bj.Suppressed {
		t.Error("expected Suppressed=true while a long press is held")
	}
}

func TestButtonsEndpointChannelFilter(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update([]logic.Channel{logic.ChannelDown}, logic.Suppression{}, logic.CommandCounts{})

	resp, err := http.Get(ts.URL + "/buttons.json?channel=down")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	var bj ButtonsJSON
	json.NewDecoder(resp.Body).Decode(&bj)
	resp.Body.Close()
	if len(bj.Buttons) != 1 || !bj.Buttons[0].Pressed {
		t.Errorf("expected only down, pressed; got %+v", bj.Buttons)
	}

	// Four is not part of the three-button layout.
	resp, err = http.Get(ts.URL + "/buttons.json?channel=four")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestUptimeFormatting(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{42 * time.Second, "42s"},
		{3*time.Minute + 5*time.Second, "3m 5s"},
		{2*time.Hour + time.Minute, "2h 1m 0s"},
		{49 * time.Hour, "2d 1h 0m 0s"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.d); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
