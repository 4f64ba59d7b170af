// Package ws pushes dashboard refresh events to connected browsers.
package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// EventType identifies a hub payload.
type EventType string

const (
	EventActivitiesUpdated EventType = "activities.updated"
	EventCronUpdated       EventType = "cron.updated"
	EventIndexUpdated      EventType = "index.updated"
)

// Event is the JSON payload broadcast to every connected client.
type Event struct {
	Type  EventType `json:"type"`
	Count int       `json:"count,omitempty"`
}

// Hub manages active clients and broadcasts. The dashboard serves a single
// workspace, so every client receives every event.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub builds a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Run starts the hub loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- payload:
				default:
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Broadcast sends a raw payload to every client.
func (h *Hub) Broadcast(payload []byte) {
	h.broadcast <- payload
}

// BroadcastEvent marshals and broadcasts a typed event.
func (h *Hub) BroadcastEvent(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("warning: failed to marshal ws event: %v", err)
		return
	}
	h.Broadcast(payload)
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Client represents a websocket connection.
type Client struct {
	Conn *websocket.Conn
	Hub  *Hub
	Send chan []byte
}

// NewClient returns a client ready for registration.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		Conn: conn,
		Hub:  hub,
		Send: make(chan []byte, 256),
	}
}
