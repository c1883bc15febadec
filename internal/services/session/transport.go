package session

import (
	"context"

	"github.com/stickfight/server/internal/model"
)

// Transport is the capability the coordinator requires from the connection
// layer. Delivery is best-effort; the coordinator never learns whether a
// peer actually received an event.
type Transport interface {
	// Send emits an event to a single connection
	Send(ctx context.Context, id model.PlayerID, event model.EventType, payload any)

	// Broadcast emits an event to every connection in a room's group,
	// including the originator
	Broadcast(ctx context.Context, code model.RoomCode, event model.EventType, payload any)

	// AddToGroup subscribes a connection to a room's broadcasts
	AddToGroup(id model.PlayerID, code model.RoomCode)

	// RemoveFromGroup unsubscribes a connection from a room's broadcasts
	RemoveFromGroup(id model.PlayerID, code model.RoomCode)
}
