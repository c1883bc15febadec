package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound       = errors.New("room not found")
	ErrAlreadyInRoom      = errors.New("player is already in a room")
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique room code")

	// Combat errors
	ErrGameNotActive       = errors.New("game is not active")
	ErrNotPlayerTurn       = errors.New("not this player's turn")
	ErrInsufficientPlayers = errors.New("room does not have two players")
)
