package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"

	"github.com/stretchr/testify/require"

	"github.com/novadent/dental-console/internal/dental"
)

func TestEventFeedNotifiesOnStoreChange(t *testing.T) {
	m := newTestMirror(t, newFakeUpstream())
	h := NewEventsHandler(m, nil)

	srv := httptest.NewServer(websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	defer conn.Close()

	var hello ChangeEvent
	require.NoError(t, websocket.JSON.Receive(conn, &hello))
	require.Equal(t, "hello", hello.Type)

	m.Patients.ResolveFetch([]dental.Patient{{ID: "p1"}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event ChangeEvent
	require.NoError(t, websocket.JSON.Receive(conn, &event))
	require.Equal(t, "change", event.Type)
	require.Equal(t, "patients", event.Collection)
}

func TestEventFeedPong(t *testing.T) {
	m := newTestMirror(t, newFakeUpstream())
	h := NewEventsHandler(m, nil)

	srv := httptest.NewServer(websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	defer conn.Close()

	var hello ChangeEvent
	require.NoError(t, websocket.JSON.Receive(conn, &hello))

	require.NoError(t, websocket.JSON.Send(conn, ChangeEvent{Type: "ping"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var pong ChangeEvent
	require.NoError(t, websocket.JSON.Receive(conn, &pong))
	require.Equal(t, "pong", pong.Type)
}
