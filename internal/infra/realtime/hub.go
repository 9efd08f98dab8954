// Package realtime pushes booking events to connected admin/agent clients.
// The hub is an explicitly constructed connection registry injected where it
// is needed; there is no package-level singleton.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one connected websocket consumer.
type Client struct {
	ID      string
	Channel string // "admin" or an agent name
	Conn    *websocket.Conn
	Send    chan []byte
	hub     *Hub
}

// Hub maintains the set of active clients and broadcasts events to them.
type Hub struct {
	clients        map[*Client]bool
	channelClients map[string][]*Client

	Register   chan *Client
	Unregister chan *Client

	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		channelClients: make(map[string][]*Client),
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
	}
}

// Run owns the registry; call it once from main in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.clients[client] = true
			if client.Channel != "" {
				h.channelClients[client.Channel] = append(h.channelClients[client.Channel], client)
			}
			h.mutex.Unlock()

		case client := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				if client.Channel != "" {
					peers := h.channelClients[client.Channel]
					for i, c := range peers {
						if c == client {
							h.channelClients[client.Channel] = append(peers[:i], peers[i+1:]...)
							break
						}
					}
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast sends an event to every client on the channel, plus all admin
// clients. Slow consumers are dropped rather than blocking the send.
func (h *Hub) Broadcast(channel, eventType string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		log.Printf("realtime marshal failed: %v", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	targets := append([]*Client{}, h.channelClients["admin"]...)
	if channel != "" && channel != "admin" {
		targets = append(targets, h.channelClients[channel]...)
	}

	for _, client := range targets {
		select {
		case client.Send <- message:
		default:
			log.Printf("realtime client %s too slow, dropping message", client.ID)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request into a hub connection. The channel comes
// from the "channel" query parameter and defaults to admin.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	channel := r.URL.Query().Get("channel")
	if channel == "" {
		channel = "admin"
	}

	client := &Client{
		ID:      r.RemoteAddr,
		Channel: channel,
		Conn:    conn,
		Send:    make(chan []byte, 64),
		hub:     h,
	}
	h.Register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) writePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// readPump discards inbound frames; the hub is push-only. Reading is still
// required to notice closes and process control frames.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
