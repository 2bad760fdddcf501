// Package realtime broadcasts table change events to connected
// websocket clients. Handlers publish an Event after each mutation and
// the hub fans it out to every browser session.
package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// Event is the wire format pushed to clients.
type Event struct {
	Type  string      `json:"eventType"`
	Table string      `json:"table"`
	New   interface{} `json:"new,omitempty"`
	Old   interface{} `json:"old,omitempty"`
}

// sendBuffer is the per-client backlog. A client that falls further
// behind than this gets disconnected rather than stalling the hub.
const sendBuffer = 16

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub owns the set of connected clients. All map access happens on the
// Run goroutine; handlers talk to it through channels only.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	closeOnce  sync.Once
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run is the hub event loop. Writes never happen here: each client has
// its own writer goroutine draining its send channel, so a slow
// connection can only fill its own buffer, at which point it is dropped.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					log.Printf("realtime: dropping slow client")
					delete(h.clients, c)
					close(c.send)
				}
			}
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		}
	}
}

// Publish marshals ev and hands it to the hub. Safe to call after
// Close; the event is silently discarded once the hub has stopped.
func (h *Hub) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("realtime: marshal event: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

// Close stops the hub and disconnects every client.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}
