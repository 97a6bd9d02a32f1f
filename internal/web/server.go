// Package web provides an HTTP status server for the button-sensor daemon.
package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/sweeney/button-sensor/internal/logic"
	"github.com/sweeney/button-sensor/internal/status"
)

// Server serves the status page over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
}

// New creates a Server that reads state from the given tracker.
func New(addr string, tracker *status.Tracker) *Server {
	s := &Server{tracker: tracker}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.html", s.handleIndex)
	mux.HandleFunc("/index.json", s.handleJSON)
	mux.HandleFunc("/buttons.json", s.handleButtons)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, s.tracker.Snapshot())
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(s.tracker.Snapshot()))
}

// ButtonJSON is the live state of one channel.
type ButtonJSON struct {
	Channel string `json:"channel"`
	Pressed bool   `json:"pressed"`
}

// ButtonsJSON is the /buttons.json response.
type ButtonsJSON struct {
	Layout      int          `json:"layout"`
	Buttons     []ButtonJSON `json:"buttons"`
	LastCommand string       `json:"last_command"`
	Suppressed  bool         `json:"suppressed"`
}

// handleButtons reports per-channel state for the configured layout.
// ?channel=<name> narrows the list to one channel; a channel outside the
// layout is a 404.
func (s *Server) handleButtons(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	layout := logic.Layout(snap.Config.Layout)
	want := r.URL.Query().Get("channel")

	resp := ButtonsJSON{
		Layout:      snap.Config.Layout,
		Buttons:     []ButtonJSON{},
		LastCommand: string(snap.LastCommand.Command),
		Suppressed:  snap.Suppression.IgnoreAll || snap.Suppression.IgnoreRelease,
	}
	for _, ch := range layout.Channels() {
		if want != "" && ch.String() != want {
			continue
		}
		resp.Buttons = append(resp.Buttons, ButtonJSON{
			Channel: ch.String(),
			Pressed: isPressed(snap.Pressed, ch),
		})
	}
	if want != "" && len(resp.Buttons) == 0 {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
