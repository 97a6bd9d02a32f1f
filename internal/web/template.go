package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/button-sensor/internal/logic"
	"github.com/sweeney/button-sensor/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime":    formatUptime,
	"isPressed": isPressed,
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>Button Sensor</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.pressed { color: green; font-weight: bold; }
.released { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Button Sensor</h1>

<h2>Buttons</h2>
<table>
{{range .Channels}}<tr><th>{{.}}</th>{{if isPressed $.Pressed .}}<td class="pressed">pressed</td>{{else}}<td class="released">released</td>{{end}}</tr>
{{end}}<tr><th>Last command</th><td>{{if .LastCommand.Command}}{{.LastCommand.Command}} at {{.LastCommand.Timestamp.UTC.Format "15:04:05.000"}}{{else}}none{{end}}</td></tr>
<tr><th>Suppression</th><td>{{if .Suppression.IgnoreAll}}all {{end}}{{if .Suppression.IgnoreRelease}}release {{end}}factor={{.Suppression.LongPressFactor}}</td></tr>
<tr><th>Reset at start</th><td>{{if .ResetAtStart}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}} {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Command Counts</h2>
<table>
<tr><th>Press</th><td>{{.Counts.Press}}</td></tr>
<tr><th>Long</th><td>{{.Counts.Long}}</td></tr>
<tr><th>Repeat</th><td>{{.Counts.Repeat}}</td></tr>
<tr><th>Chord</th><td>{{.Counts.Chord}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Backend</th><td>{{.Config.Backend}} ({{.Config.Layout}} buttons)</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Long press</th><td>{{.Config.LongPressMs}}ms, repeat {{.Config.RepeatMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPPort}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> · <a href="/buttons.json">buttons</a></p>
</body>
</html>
`

func formatUptime(d time.Duration) string {
	d = d.Truncate(time.Second)
	days := int(d.Hours()) / 24
	h := int(d.Hours()) % 24
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
	}
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func isPressed(pressed []logic.Channel, ch logic.Channel) bool {
	for _, p := range pressed {
		if p == ch {
			return true
		}
	}
	return false
}

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Template needs Uptime and the layout's channels as fields.
	data := struct {
		status.Snapshot
		Uptime   time.Duration
		Channels []logic.Channel
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		Channels: logic.Layout(snap.Config.Layout).Channels(),
	}
	indexTmpl.Execute(w, data)
}
