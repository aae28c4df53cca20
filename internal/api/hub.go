/*
Package api
File: hub.go
Description:
    The WebSocket Hub is the core of the real-time communication layer.

    It maintains a registry of all active clients and manages the broadcast
    channel. When the simulation emits an event (a research pulse, a nearby
    distortion, a teleport) it is wrapped in a Message envelope and written
    to the sockets of every connected client.

    Architecture:
    - Hub: The single broadcast manager, run as a goroutine.
    - Client: Represents one socket connection, identified by a UUID.
    - ServeWs: The HTTP handler that upgrades a standard GET request to a WebSocket.
*/

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Message types pushed to clients.
const (
	TypeResearchPulse    = "research_pulse"
	TypeDistortionNear   = "distortion_near"
	TypeWormholeTeleport = "wormhole_teleport"
	TypeResearchSold     = "research_sold"
)

// SystemSender is the sender id of server-originated messages.
const SystemSender = "system"

// Message defines the standard JSON envelope for all real-time communication.
type Message struct {
	Type    string      `json:"type"`    // Event type (e.g. "research_pulse")
	Payload interface{} `json:"payload"` // The actual data
	Sender  string      `json:"sender"`  // Origin of the message
	Time    time.Time   `json:"time"`
}

// Client represents a single connected socket.
type Client struct {
	ID   uuid.UUID
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // Buffered channel for outbound messages
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients map[*Client]bool

	// Broadcast carries pre-encoded frames to every client.
	Broadcast chan []byte

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	count      atomic.Int64
	log        *logrus.Entry
}

// NewHub creates a new Hub instance. Run must be started before messages are sent.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		log:        logrus.WithField("component", "api"),
	}
}

// Run is the main event loop for the Hub. It blocks until ctx is cancelled,
// then closes every client connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.count.Add(1)
			h.log.WithField("client", client.ID.String()).Info("WS: client connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				h.log.WithField("client", client.ID.String()).Info("WS: client disconnected")
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full: the client is hung or gone.
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// BroadcastMessage encodes payload in a Message envelope and queues it for every client.
// It returns without sending once the hub has stopped.
func (h *Hub) BroadcastMessage(msgType string, payload interface{}) error {
	data, err := json.Marshal(Message{
		Type:    msgType,
		Payload: payload,
		Sender:  SystemSender,
		Time:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", msgType, err)
	}

	select {
	case h.Broadcast <- data:
	case <-h.done:
	}
	return nil
}

// upgrader configures the WebSocket handshake.
// CheckOrigin allows connections from any host.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the request to a WebSocket and registers the client.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.log.WithError(err).Warn("WS upgrade failed")
		return
	}

	client := &Client{ID: uuid.New(), hub: hub, conn: conn, send: make(chan []byte, 256)}

	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection until it closes. Clients are receive-only,
// so anything they send is logged and discarded.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Warn("WS read error")
			}
			break
		}
		c.hub.log.WithFields(logrus.Fields{
			"client": c.ID.String(),
			"bytes":  len(message),
		}).Debug("WS: ignoring inbound message")
	}
}

// writePump pumps messages from the hub to the websocket connection.
// The loop exits when c.send is closed.
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
