package response

import (
	"time"

	"github.com/stickfight/server/internal/model"
)

// HealthResponse is the liveness acknowledgment
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// RoomResponse is a read-only snapshot of a live room
type RoomResponse struct {
	RoomCode   string                 `json:"roomCode"`
	Players    []model.PlayerInfo     `json:"players"`
	GameState  model.GameStatePayload `json:"gameState"`
	CreatedAt  time.Time              `json:"createdAt"`
	LastActive time.Time              `json:"lastActive"`
}

// RoomResponseFromRoom builds the snapshot for a room
func RoomResponseFromRoom(rm *model.Room) RoomResponse {
	players := make([]model.PlayerInfo, len(rm.Players))
	for i, p := range rm.Players {
		players[i] = model.PlayerInfoFromPlayer(p)
	}
	return RoomResponse{
		RoomCode:   string(rm.Code),
		Players:    players,
		GameState:  model.GameStateFromCombat(rm.Combat),
		CreatedAt:  rm.CreatedAt,
		LastActive: rm.LastActive,
	}
}
