package model

import "time"

// PlayerID uniquely identifies a connection for its lifetime
type PlayerID string

// DefaultDisplayName is used when a player has not set a name
const DefaultDisplayName = "Anonymous"

// Player represents a connected participant
type Player struct {
	ID          PlayerID
	DisplayName string
	RoomCode    RoomCode // empty when not in a room
	Seat        Seat     // SeatNone until the player joins a room
	JoinedAt    time.Time
}

// InRoom returns true if the player is currently in a room
func (p *Player) InRoom() bool {
	return p.RoomCode != ""
}
