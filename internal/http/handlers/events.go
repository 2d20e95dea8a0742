package handlers

import (
	"net/http"
	"time"

	"golang.org/x/net/websocket"

	"github.com/novadent/dental-console/internal/mirror"
	"github.com/novadent/dental-console/pkg/logging"
)

// EventsHandler streams store-change notifications over WebSocket so the
// console UI can re-read snapshots instead of polling.
type EventsHandler struct {
	mirror *mirror.Mirror
	logger *logging.Logger
}

// NewEventsHandler creates the handler.
func NewEventsHandler(m *mirror.Mirror, logger *logging.Logger) *EventsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventsHandler{mirror: m, logger: logger}
}

// ChangeEvent is one message on the event feed.
type ChangeEvent struct {
	Type       string `json:"type"`
	Collection string `json:"collection,omitempty"`
	At         string `json:"at,omitempty"`
}

// HandleWebSocket upgrades to WebSocket and streams change events.
// GET /events
func (h *EventsHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn)
	}).ServeHTTP(w, r)
}

func (h *EventsHandler) serveWS(conn *websocket.Conn) {
	// Buffered so a slow client drops notifications instead of blocking
	// store transitions.
	changes := make(chan string, 16)
	notify := func(collection string) func() {
		return func() {
			select {
			case changes <- collection:
			default:
			}
		}
	}

	unsubscribe := []func(){
		h.mirror.Appointments.Subscribe(notify("appointments")),
		h.mirror.Patients.Subscribe(notify("patients")),
		h.mirror.Doctors.Subscribe(notify("doctors")),
		h.mirror.Treatments.Subscribe(notify("treatments")),
	}
	defer func() {
		for _, u := range unsubscribe {
			u()
		}
	}()

	_ = websocket.JSON.Send(conn, ChangeEvent{Type: "hello"})
	h.logger.Info("event feed opened", "remote", conn.Request().RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ChangeEvent
			if err := websocket.JSON.Receive(conn, &msg); err != nil {
				return
			}
			if msg.Type == "ping" {
				_ = websocket.JSON.Send(conn, ChangeEvent{Type: "pong"})
			}
		}
	}()

	for {
		select {
		case <-done:
			h.logger.Debug("event feed closed")
			return
		case collection := <-changes:
			event := ChangeEvent{
				Type:       "change",
				Collection: collection,
				At:         time.Now().UTC().Format(time.RFC3339),
			}
			if err := websocket.JSON.Send(conn, event); err != nil {
				return
			}
		}
	}
}
