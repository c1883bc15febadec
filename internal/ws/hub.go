package ws

import (
	"context"
	"log/slog"
	"sync"

	"github.com/stickfight/server/internal/model"
)

// Hub tracks live connections and their room-broadcast groups, and delivers
// outbound events to them. It satisfies the session coordinator's Transport
// contract; delivery is best-effort and slow peers get messages dropped
// rather than stalling the sender.
type Hub struct {
	mu      sync.RWMutex
	clients map[model.PlayerID]*Client
	groups  map[model.RoomCode]map[model.PlayerID]*Client
	logger  *slog.Logger
}

// NewHub creates an empty hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[model.PlayerID]*Client),
		groups:  make(map[model.RoomCode]map[model.PlayerID]*Client),
		logger:  logger.With(slog.String("component", "ws")),
	}
}

// Register adds a connection and starts its write pump
func (h *Hub) Register(ctx context.Context, client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	count := len(h.clients)
	h.mu.Unlock()

	go client.writePump(ctx)

	h.logger.Info("connection registered",
		slog.String("player_id", string(client.id)),
		slog.Int("total_connections", count))
}

// Unregister removes a connection from the hub and every group it joined,
// and stops its write pump. Safe to call for unknown ids.
func (h *Hub) Unregister(id model.PlayerID) {
	h.mu.Lock()
	client, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
		for code, group := range h.groups {
			delete(group, id)
			if len(group) == 0 {
				delete(h.groups, code)
			}
		}
	}
	count := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	close(client.done)

	h.logger.Info("connection unregistered",
		slog.String("player_id", string(id)),
		slog.Int("total_connections", count))
}

// AddToGroup subscribes a connection to a room's broadcasts
func (h *Hub) AddToGroup(id model.PlayerID, code model.RoomCode) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[id]
	if !ok {
		return
	}
	group, ok := h.groups[code]
	if !ok {
		group = make(map[model.PlayerID]*Client)
		h.groups[code] = group
	}
	group[id] = client
}

// RemoveFromGroup unsubscribes a connection from a room's broadcasts
func (h *Hub) RemoveFromGroup(id model.PlayerID, code model.RoomCode) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.groups[code]
	if !ok {
		return
	}
	delete(group, id)
	if len(group) == 0 {
		delete(h.groups, code)
	}
}

// Send emits an event to a single connection. Unknown ids are ignored.
func (h *Hub) Send(ctx context.Context, id model.PlayerID, event model.EventType, payload any) {
	msg, err := Encode(event, payload)
	if err != nil {
		h.logger.Error("encode failed",
			slog.String("event", string(event)),
			slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	client, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		return
	}

	h.deliver(client, event, msg)
}

// Broadcast emits an event to every connection in a room's group
func (h *Hub) Broadcast(ctx context.Context, code model.RoomCode, event model.EventType, payload any) {
	msg, err := Encode(event, payload)
	if err != nil {
		h.logger.Error("encode failed",
			slog.String("event", string(event)),
			slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.groups[code]))
	for _, client := range h.groups[code] {
		members = append(members, client)
	}
	h.mu.RUnlock()

	for _, client := range members {
		h.deliver(client, event, msg)
	}
}

func (h *Hub) deliver(client *Client, event model.EventType, msg []byte) {
	select {
	case client.send <- msg:
	default:
		h.logger.Warn("message dropped - client buffer full",
			slog.String("player_id", string(client.id)),
			slog.String("event", string(event)))
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
