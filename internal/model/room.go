package model

import "time"

// RoomCode is a human-shareable identifier for joining rooms
type RoomCode string

// Seat is a player's fixed position within a room
type Seat string

const (
	SeatNone Seat = ""
	SeatA    Seat = "player1"
	SeatB    Seat = "player2"
)

// Other returns the opposing seat
func (s Seat) Other() Seat {
	switch s {
	case SeatA:
		return SeatB
	case SeatB:
		return SeatA
	default:
		return SeatNone
	}
}

// MaxRoomPlayers is the hard cap on players per room
const MaxRoomPlayers = 2

// StartingHealth is each seat's health at round start
const StartingHealth = 100

// CombatState is the mutable health/turn/win-counter data for one room
type CombatState struct {
	HealthA int
	HealthB int
	Active  bool
	Turn    Seat
	Round   int
	WinsA   int
	WinsB   int
}

// NewCombatState returns the combat state a freshly created room carries
func NewCombatState() CombatState {
	return CombatState{
		HealthA: StartingHealth,
		HealthB: StartingHealth,
		Active:  false,
		Turn:    SeatA,
		Round:   1,
	}
}

// Health returns the health value for the given seat
func (c *CombatState) Health(seat Seat) int {
	if seat == SeatA {
		return c.HealthA
	}
	return c.HealthB
}

// SetHealth sets the health value for the given seat, clamped to [0, 100]
func (c *CombatState) SetHealth(seat Seat, health int) {
	if health < 0 {
		health = 0
	}
	if health > StartingHealth {
		health = StartingHealth
	}
	if seat == SeatA {
		c.HealthA = health
	} else {
		c.HealthB = health
	}
}

// Room represents a matched pairing of up to two connections
type Room struct {
	Code       RoomCode
	Players    []Player // order determines seat: index 0 is seat A
	Combat     CombatState
	CreatedAt  time.Time
	LastActive time.Time
}

// IsFull returns true if the room has reached its player cap
func (r *Room) IsFull() bool {
	return len(r.Players) >= MaxRoomPlayers
}

// IsEmpty returns true if the room has no players
func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

// GetPlayer returns the room's entry for the given player, or nil
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// SeatOf returns the seat assigned to the given player by list position
func (r *Room) SeatOf(id PlayerID) Seat {
	for i := range r.Players {
		if r.Players[i].ID == id {
			if i == 0 {
				return SeatA
			}
			return SeatB
		}
	}
	return SeatNone
}

// RemovePlayer removes the given player from the room's list.
// Returns true if the player was present.
func (r *Room) RemovePlayer(id PlayerID) bool {
	for i := range r.Players {
		if r.Players[i].ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}
