package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// GlobalChannel is the feed every connected client receives.
const GlobalChannel = "global"

// UserChannel returns the private channel name for a user.
func UserChannel(userID int64) string {
	return fmt.Sprintf("user_%d", userID)
}

// envelope is the wire format pushed to clients.
type envelope struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type outbound struct {
	// userID 0 targets every client; otherwise only the user's connections.
	userID int64
	data   []byte
}

// Hub tracks connected WebSocket clients and fans events out to them.
// Publishing is fire-and-forget: a full hub or client buffer drops the event
// rather than blocking the publisher.
type Hub struct {
	logger *slog.Logger

	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client

	done     chan struct{}
	stopOnce sync.Once
	count    int32
}

// NewHub constructs a hub. Run must be started before clients connect.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run services the hub event loop until ctx is cancelled or Stop is called.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-h.done:
			h.closeAll()
			return
		case client := <-h.register:
			h.clients[client] = true
			atomic.StoreInt32(&h.count, int32(len(h.clients)))
			h.logger.Info("ws client connected", slog.Int64("user_id", client.userID), slog.Int("total", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				atomic.StoreInt32(&h.count, int32(len(h.clients)))
				h.logger.Info("ws client disconnected", slog.Int64("user_id", client.userID), slog.Int("total", len(h.clients)))
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				if msg.userID != 0 && client.userID != msg.userID {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					delete(h.clients, client)
					close(client.send)
					atomic.StoreInt32(&h.count, int32(len(h.clients)))
				}
			}
		}
	}
}

// Stop terminates the event loop and disconnects all clients.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

func (h *Hub) closeAll() {
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	atomic.StoreInt32(&h.count, 0)
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	return int(atomic.LoadInt32(&h.count))
}

// Publish pushes an event to every connected client.
func (h *Hub) Publish(event string, payload any) {
	h.push(0, GlobalChannel, event, payload)
}

// PublishToUser pushes an event to the user's connections only.
func (h *Hub) PublishToUser(userID int64, event string, payload any) {
	h.push(userID, UserChannel(userID), event, payload)
}

func (h *Hub) push(userID int64, channel, event string, payload any) {
	data, err := json.Marshal(envelope{Channel: channel, Event: event, Payload: payload})
	if err != nil {
		h.logger.Error("ws encode failed", slog.String("event", event), slog.String("error", err.Error()))
		return
	}
	select {
	case h.broadcast <- outbound{userID: userID, data: data}:
	case <-h.done:
	default:
		h.logger.Warn("ws broadcast dropped", slog.String("event", event))
	}
}
