package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	// HeartbeatInterval is how often an idle stream sends a comment line.
	HeartbeatInterval = 30 * time.Second

	// WriteTimeout bounds each event write. A client that stops reading is
	// dropped once a write exceeds it.
	WriteTimeout = 10 * time.Second
)

// Handler streams one topic as Server-Sent Events. The topic is taken from
// the "name" query parameter and defaults to ChangeEventName.
type Handler struct {
	hub          *Hub
	heartbeat    time.Duration
	writeTimeout time.Duration
}

// NewHandler creates an SSE handler backed by hub.
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub, heartbeat: HeartbeatInterval, writeTimeout: WriteTimeout}
}

// ServeHTTP handles the SSE connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.Context().Err() != nil {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = ChangeEventName
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		log.Error("failed to flush SSE headers: %v", err)
		return
	}

	sub := h.hub.Subscribe(name)
	defer h.hub.Unsubscribe(sub.ID)

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case event := <-sub.Events:
			if err := h.setDeadline(rc); err != nil {
				return
			}
			if err := writeEvent(w, rc, event); err != nil {
				log.Debug("subscriber %s disconnected during send: %v", sub.ID, err)
				return
			}

		case <-heartbeat.C:
			if err := h.setDeadline(rc); err != nil {
				return
			}
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}

		case <-sub.Done:
			return

		case <-ctx.Done():
			return
		}
	}
}

// setDeadline arms the write deadline for the next write. Writers without
// deadline support are left unbounded.
func (h *Handler) setDeadline(rc *http.ResponseController) error {
	if h.writeTimeout <= 0 {
		return nil
	}
	err := rc.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	if errors.Is(err, http.ErrNotSupported) {
		return nil
	}
	if err != nil {
		log.Debug("failed to set write deadline: %v", err)
	}
	return err
}

// writeEvent writes one event in SSE framing:
//
//	event: <name>
//	data: <json payload>
//	(blank line)
func writeEvent(w http.ResponseWriter, rc *http.ResponseController, event Event) error {
	data, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data); err != nil {
		return err
	}
	return rc.Flush()
}
