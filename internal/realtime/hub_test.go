package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// let the registration land on the hub goroutine before the test
	// publishes anything
	time.Sleep(50 * time.Millisecond)
	return conn
}

func TestPublishReachesClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	conn := dialTestHub(t, hub)

	hub.Publish(Event{
		Type:  "INSERT",
		Table: "assets",
		New:   map[string]interface{}{"id": float64(1), "name": "SRV-1"},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, "INSERT", ev.Type)
	assert.Equal(t, "assets", ev.Table)
	assert.NotNil(t, ev.New)
	assert.Nil(t, ev.Old)
}

func TestDeleteEventCarriesOnlyOld(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	conn := dialTestHub(t, hub)

	hub.Publish(Event{
		Type:  "DELETE",
		Table: "assets",
		Old:   map[string]interface{}{"id": float64(7)},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	assert.Contains(t, string(data), `"old"`)
	assert.NotContains(t, string(data), `"new"`)
}

func TestBroadcastFansOut(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	a := dialTestHub(t, hub)
	b := dialTestHub(t, hub)

	hub.Publish(Event{Type: "UPDATE", Table: "assets"})

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(data), `"UPDATE"`)
	}
}

func TestSlowClientIsDroppedNotAwaited(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	healthy := dialTestHub(t, hub)

	// a client whose writer never drains: one slot, no pump
	stalled := &client{send: make(chan []byte, 1)}
	hub.register <- stalled
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < sendBuffer; i++ {
		hub.Publish(Event{Type: "UPDATE", Table: "assets"})
	}

	deadline := time.After(2 * time.Second)
	closed := false
	for !closed {
		select {
		case _, open := <-stalled.send:
			closed = !open
		case <-deadline:
			t.Fatal("stalled client was never dropped")
		}
	}

	// the hub kept going: the healthy client sees every event
	for i := 0; i < sendBuffer; i++ {
		healthy.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := healthy.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(data), `"UPDATE"`)
	}
}

func TestPublishAfterCloseDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Close()

	completed := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(Event{Type: "INSERT", Table: "assets"})
		}
		close(completed)
	}()

	select {
	case <-completed:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked after Close")
	}
}
