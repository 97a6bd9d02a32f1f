// Command button-sensor polls a button panel and publishes classified commands to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sweeney/button-sensor/internal/gpio"
	"github.com/sweeney/button-sensor/internal/logic"
	"github.com/sweeney/button-sensor/internal/mqtt"
	"github.com/sweeney/button-sensor/internal/status"
	"github.com/sweeney/button-sensor/internal/touch"
	"github.com/sweeney/button-sensor/internal/web"
)

type options struct {
	backend    string
	cfg        logic.Config
	poll       time.Duration
	activeLow  bool
	gpioChip   string
	pins       []int
	i2cBus     string
	i2cAddr    uint16
	broker     string
	heartbeat  time.Duration
	httpAddr   string
	checkReset bool
}

func main() {
	def := logic.DefaultConfig()
	backend := flag.String("backend", "gpio", `Input backend: "gpio" (mechanical buttons) or "touch" (MPR121)`)
	layout := flag.Int("layout", int(def.Layout), "Number of buttons (3 or 5)")
	poll := flag.Duration("poll", 10*time.Millisecond, "Polling interval")
	debounce := flag.Duration("debounce", def.Debounce, "Debounce lockout for mechanical buttons")
	longPress := flag.Duration("long-press", def.LongPress, "Hold time before a long press")
	repeat := flag.Duration("repeat", def.Repeat, "Hold time per long-press repeat")
	activeLow := flag.Bool("active-low", true, "GPIO lines read low when pressed")
	gpioChip := flag.String("gpio-chip", gpio.DefaultChip, "GPIO character device")
	pins := flag.String("pins", "", "Comma-separated BCM line offsets in channel order (default per layout)")
	i2cBus := flag.String("i2c-bus", "", "I2C bus name (empty for the first available)")
	i2cAddr := flag.Uint("i2c-addr", touch.DefaultAddress, "MPR121 I2C address")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	checkReset := flag.Bool("check-reset", false, "Print whether the reset combination is held and exit")

	flag.Parse()

	l, err := logic.ParseLayout(*layout)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	pinList, err := parsePins(*pins, l)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	opts := options{
		backend: *backend,
		cfg: logic.Config{
			Layout:    l,
			Debounce:  *debounce,
			LongPress: *longPress,
			Repeat:    *repeat,
		},
		poll:       *poll,
		activeLow:  *activeLow,
		gpioChip:   *gpioChip,
		pins:       pinList,
		i2cBus:     *i2cBus,
		i2cAddr:    uint16(*i2cAddr),
		broker:     *broker,
		heartbeat:  *heartbeat,
		httpAddr:   *httpAddr,
		checkReset: *checkReset,
	}
	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// parsePins parses a comma-separated pin list, falling back to the layout defaults.
func parsePins(s string, layout logic.Layout) ([]int, error) {
	if s == "" {
		return gpio.PinsFor(layout), nil
	}
	var pins []int
	for _, f := range strings.Split(s, ",") {
		p, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("parse pins: %w", err)
		}
		pins = append(pins, p)
	}
	return pins, nil
}

// openSource builds the input strategy for the backend. Touch inputs are
// edge-detected without debounce.
func openSource(opts *options) (logic.Source, io.Closer, error) {
	switch opts.backend {
	case "gpio":
		r, err := gpio.NewRealReader(opts.gpioChip, opts.cfg.Layout, opts.pins, opts.activeLow)
		if err != nil {
			return nil, nil, fmt.Errorf("init gpio: %w", err)
		}
		return r, r, nil
	case "touch":
		opts.cfg.Debounce = 0
		bus, err := touch.OpenBus(opts.i2cBus, opts.i2cAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("init i2c: %w", err)
		}
		s, err := touch.New(bus, opts.cfg.Layout)
		if err == nil {
			err = s.Init()
		}
		if err != nil {
			bus.Close()
			return nil, nil, fmt.Errorf("init touch sensor: %w", err)
		}
		return s, bus, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown backend %q", logic.ErrInvalidConfig, opts.backend)
}

func run(opts options) error {
	if err := opts.cfg.Validate(); err != nil {
		return err
	}

	src, closer, err := openSource(&opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	panel := logic.NewPanel(src, opts.cfg.Layout, opts.cfg.Debounce)
	classifier := logic.NewClassifier(panel, opts.cfg, time.Now())

	reset, err := classifier.IsReset()
	if err != nil {
		log.Printf("reset probe error: %v", err)
	}

	if opts.checkReset {
		fmt.Printf("reset: %t\n", reset)
		return err
	}

	// Initialize MQTT
	publisher := mqtt.NewRealPublisher(opts.broker)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		Backend:     opts.backend,
		Layout:      int(opts.cfg.Layout),
		PollMs:      opts.poll.Milliseconds(),
		DebounceMs:  opts.cfg.Debounce.Milliseconds(),
		LongPressMs: opts.cfg.LongPress.Milliseconds(),
		RepeatMs:    opts.cfg.Repeat.Milliseconds(),
		HeartbeatMs: opts.heartbeat.Milliseconds(),
		Broker:      opts.broker,
		HTTPPort:    opts.httpAddr,
	})
	tracker.SetResetAtStart(reset)
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}
	if reset {
		log.Printf("reset combination held at startup")
		if err := publisher.PublishSystem(mqtt.SystemEvent{Timestamp: snap.Now, Event: "RESET"}); err != nil {
			log.Printf("failed to publish reset event: %v", err)
		}
	}

	// Start HTTP status server
	if opts.httpAddr != "" {
		srv := web.New(opts.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", opts.httpAddr)
	}

	log.Printf("started: backend=%s layout=%d poll=%v debounce=%v long-press=%v repeat=%v broker=%s heartbeat=%v",
		opts.backend, opts.cfg.Layout, opts.poll, opts.cfg.Debounce, opts.cfg.LongPress, opts.cfg.Repeat, opts.broker, opts.heartbeat)

	ticker := time.NewTicker(opts.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(panel, classifier, publisher, publisher, tracker, opts.heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(panel *logic.Panel, classifier *logic.Classifier, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				event.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			cmd, err := classifier.Poll(t)
			if err != nil {
				// The failed sample reads as all released; keep classifying.
				log.Printf("sample error: %v", err)
			}

			if cmd != logic.CommandNone {
				log.Printf("command: %s", cmd)
				event := logic.Event{Timestamp: t, Command: cmd}
				if tracker != nil {
					tracker.RecordCommand(event)
				}
				if err := publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			if tracker != nil {
				tracker.Update(pressedChannels(panel), classifier.Suppression(), classifier.Counts())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			if hbData := classifier.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v press=%d long=%d repeat=%d chord=%d",
					hbData.Uptime, hbData.Counts.Press, hbData.Counts.Long, hbData.Counts.Repeat, hbData.Counts.Chord)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					hbEvent.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

func pressedChannels(panel *logic.Panel) []logic.Channel {
	mask := panel.Pressed()
	var out []logic.Channel
	for _, ch := range panel.Layout().Channels() {
		if mask.Has(ch) {
			out = append(out, ch)
		}
	}
	return out
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
