package redis

import "github.com/stickfight/server/internal/model"

const (
	keyPrefix     = "stickfight:"
	playerPrefix  = keyPrefix + "player:"
	roomPrefix    = keyPrefix + "room:"
	roomScanMatch = roomPrefix + "*"
)

func playerKey(id model.PlayerID) string {
	return playerPrefix + string(id)
}

func roomKey(code model.RoomCode) string {
	return roomPrefix + string(code)
}
