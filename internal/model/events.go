package model

// EventType names a message on the wire, in either direction
type EventType string

// Inbound events
const (
	EventSetName     EventType = "set_name"
	EventCreateRoom  EventType = "create_room"
	EventJoinRoom    EventType = "join_room"
	EventLeaveRoom   EventType = "leave_room"
	EventStartGame   EventType = "start_game"
	EventGameAction  EventType = "game_action"
	EventRestartGame EventType = "restart_game"
)

// Outbound events
const (
	EventRoomCreated  EventType = "room_created"
	EventRoomNotFound EventType = "room_not_found"
	EventRoomFull     EventType = "room_full"
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
	EventGameStart    EventType = "game_start"
	EventError        EventType = "error"
	EventGameUpdate   EventType = "game_update"
)

// PlayerInfo is the public view of a player carried in room broadcasts
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat string `json:"seat"`
}

// PlayerInfoFromPlayer converts a Player to its broadcast form
func PlayerInfoFromPlayer(p Player) PlayerInfo {
	return PlayerInfo{
		ID:   string(p.ID),
		Name: p.DisplayName,
		Seat: string(p.Seat),
	}
}

// Inbound payloads

type SetNamePayload struct {
	Name string `json:"name"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
}

type LeaveRoomPayload struct {
	RoomCode string `json:"roomCode"`
}

type StartGamePayload struct {
	RoomCode string `json:"roomCode"`
}

type GameActionPayload struct {
	RoomCode string `json:"roomCode"`
	Player   string `json:"player"`
	Action   string `json:"action"`
}

type RestartGamePayload struct {
	RoomCode string `json:"roomCode"`
}

// Outbound payloads

type RoomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
}

type PlayerJoinedPayload struct {
	Players  []PlayerInfo `json:"players"`
	PlayerID string       `json:"playerId"`
}

type PlayerLeftPayload struct {
	Players []PlayerInfo `json:"players"`
}

type GameStatePayload struct {
	Player1Health int    `json:"player1Health"`
	Player2Health int    `json:"player2Health"`
	CurrentTurn   string `json:"currentTurn"`
	Active        bool   `json:"active"`
	Round         int    `json:"round"`
	Player1Wins   int    `json:"player1Wins"`
	Player2Wins   int    `json:"player2Wins"`
}

// GameStateFromCombat converts a room's combat state to its broadcast form
func GameStateFromCombat(c CombatState) GameStatePayload {
	return GameStatePayload{
		Player1Health: c.HealthA,
		Player2Health: c.HealthB,
		CurrentTurn:   string(c.Turn),
		Active:        c.Active,
		Round:         c.Round,
		Player1Wins:   c.WinsA,
		Player2Wins:   c.WinsB,
	}
}

type GameStartPayload struct {
	Players   []PlayerInfo     `json:"players"`
	GameState GameStatePayload `json:"gameState"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// GameActionBroadcast echoes a resolved action so clients can animate it
// before applying the authoritative game_update that follows.
type GameActionBroadcast struct {
	Action string `json:"action"`
	Player string `json:"player"`
	Damage int    `json:"damage"`
}

type GameUpdatePayload struct {
	Player1Health int    `json:"player1Health"`
	Player2Health int    `json:"player2Health"`
	CurrentTurn   string `json:"currentTurn"`
	Winner        string `json:"winner,omitempty"`
	Player1Wins   int    `json:"player1Wins"`
	Player2Wins   int    `json:"player2Wins"`
}
