package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/stickfight/server/internal/model"
	"github.com/stickfight/server/internal/services/combat"
	"github.com/stickfight/server/internal/services/registry"
	"github.com/stickfight/server/internal/services/room"
)

// Coordinator binds inbound connection events to the registry, room store
// and combat state machine, and emits outbound events through the Transport.
//
// A single mutex serializes every handler invocation (and, via Locker, the
// reaper's sweeps) so each event is one atomic step over the shared state.
type Coordinator struct {
	mu sync.Mutex

	registry  *registry.Service
	rooms     *room.Service
	combat    *combat.Service
	transport Transport
	logger    *slog.Logger
}

// New creates a new session coordinator
func New(
	registry *registry.Service,
	rooms *room.Service,
	combat *combat.Service,
	transport Transport,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		registry:  registry,
		rooms:     rooms,
		combat:    combat,
		transport: transport,
		logger:    logger.With(slog.String("component", "session")),
	}
}

// Locker exposes the coordinator's mutex so the reaper can take the same
// atomic-step discipline for its sweeps.
func (c *Coordinator) Locker() sync.Locker {
	return &c.mu
}

// HandleConnect registers a new connection
func (c *Coordinator) HandleConnect(ctx context.Context, id model.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.registry.Register(ctx, id); err != nil {
		c.logger.Error("register failed",
			slog.String("player_id", string(id)),
			slog.String("error", err.Error()))
	}
}

// HandleSetName updates the caller's display name. No broadcast.
func (c *Coordinator) HandleSetName(ctx context.Context, id model.PlayerID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.registry.SetName(ctx, id, name); err != nil {
		if !errors.Is(err, model.ErrPlayerNotFound) {
			c.logger.Error("set name failed",
				slog.String("player_id", string(id)),
				slog.String("error", err.Error()))
		}
		return
	}

	// Keep the room's player-list copy in sync for later broadcasts
	player, err := c.registry.Get(ctx, id)
	if err != nil || !player.InRoom() {
		return
	}
	rm, err := c.rooms.Get(ctx, player.RoomCode)
	if err != nil {
		return
	}
	if entry := rm.GetPlayer(id); entry != nil {
		entry.DisplayName = player.DisplayName
		if err := c.rooms.Save(ctx, rm); err != nil {
			c.logger.Error("room save failed", slog.String("error", err.Error()))
		}
	}
}

// HandleCreateRoom allocates a room with the caller as seat A
func (c *Coordinator) HandleCreateRoom(ctx context.Context, id model.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.registry.Get(ctx, id)
	if err != nil {
		// Unregistered caller: race with disconnect, drop the event
		return
	}
	if player.InRoom() {
		c.transport.Send(ctx, id, model.EventError, model.ErrorPayload{Message: errorMessage(model.ErrAlreadyInRoom)})
		return
	}

	rm, err := c.rooms.Create(ctx, *player)
	if err != nil {
		c.logger.Error("room create failed", slog.String("error", err.Error()))
		c.transport.Send(ctx, id, model.EventError, model.ErrorPayload{Message: "could not create room"})
		return
	}

	// Create stamps the code and seat; mirror its entry into the registry
	*player = rm.Players[0]
	if err := c.registry.Update(ctx, player); err != nil {
		c.logger.Error("registry update failed", slog.String("error", err.Error()))
	}

	c.transport.AddToGroup(id, rm.Code)
	c.transport.Send(ctx, id, model.EventRoomCreated, model.RoomCreatedPayload{RoomCode: string(rm.Code)})
	c.transport.Broadcast(ctx, rm.Code, model.EventPlayerJoined, model.PlayerJoinedPayload{
		Players:  playerInfos(rm),
		PlayerID: string(id),
	})
}

// HandleJoinRoom appends the caller to an existing room as seat B
func (c *Coordinator) HandleJoinRoom(ctx context.Context, id model.PlayerID, code model.RoomCode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.registry.Get(ctx, id)
	if err != nil {
		return
	}
	if player.InRoom() {
		// Covers rejoining one's own room too; a duplicate entry would
		// never be cleaned up on disconnect
		c.transport.Send(ctx, id, model.EventError, model.ErrorPayload{Message: errorMessage(model.ErrAlreadyInRoom)})
		return
	}

	rm, err := c.rooms.Get(ctx, code)
	if err != nil {
		c.transport.Send(ctx, id, model.EventRoomNotFound, struct{}{})
		return
	}
	if rm.IsFull() {
		c.transport.Send(ctx, id, model.EventRoomFull, struct{}{})
		return
	}

	player.RoomCode = rm.Code
	rm.Players = append(rm.Players, *player)
	// List position determines the seat
	player.Seat = rm.SeatOf(id)
	rm.Players[len(rm.Players)-1].Seat = player.Seat

	if err := c.registry.Update(ctx, player); err != nil {
		c.logger.Error("registry update failed", slog.String("error", err.Error()))
	}
	if err := c.rooms.Touch(ctx, rm); err != nil {
		c.logger.Error("room save failed", slog.String("error", err.Error()))
	}

	c.transport.AddToGroup(id, rm.Code)
	c.transport.Broadcast(ctx, rm.Code, model.EventPlayerJoined, model.PlayerJoinedPayload{
		Players:  playerInfos(rm),
		PlayerID: string(id),
	})
}

// HandleLeaveRoom removes the caller from a room. An emptied room is
// deleted immediately; otherwise the round is abandoned and the remaining
// player notified.
func (c *Coordinator) HandleLeaveRoom(ctx context.Context, id model.PlayerID, code model.RoomCode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.leaveRoom(ctx, id, code)
}

// leaveRoom holds the removal logic shared by leave_room and disconnect.
// Callers must hold the coordinator mutex.
func (c *Coordinator) leaveRoom(ctx context.Context, id model.PlayerID, code model.RoomCode) {
	rm, err := c.rooms.Get(ctx, code)
	if err != nil {
		// Room already gone: benign race, nothing to do
		return
	}

	if !rm.RemovePlayer(id) {
		return
	}
	c.transport.RemoveFromGroup(id, code)

	if player, err := c.registry.Get(ctx, id); err == nil {
		player.RoomCode = ""
		player.Seat = model.SeatNone
		if err := c.registry.Update(ctx, player); err != nil {
			c.logger.Error("registry update failed", slog.String("error", err.Error()))
		}
	}

	if rm.IsEmpty() {
		if err := c.rooms.Delete(ctx, code); err != nil {
			c.logger.Error("room delete failed", slog.String("error", err.Error()))
		}
		return
	}

	// Round abandoned: no winner, no score change
	c.combat.Halt(rm)
	if err := c.rooms.Touch(ctx, rm); err != nil {
		c.logger.Error("room save failed", slog.String("error", err.Error()))
	}

	c.transport.Broadcast(ctx, code, model.EventPlayerLeft, model.PlayerLeftPayload{
		Players: playerInfos(rm),
	})
}

// HandleStartGame begins the first round for a two-player room
func (c *Coordinator) HandleStartGame(ctx context.Context, id model.PlayerID, code model.RoomCode) {
	c.startRound(ctx, id, code, false)
}

// HandleRestartGame begins a fresh round and bumps the round counter
func (c *Coordinator) HandleRestartGame(ctx context.Context, id model.PlayerID, code model.RoomCode) {
	c.startRound(ctx, id, code, true)
}

func (c *Coordinator) startRound(ctx context.Context, id model.PlayerID, code model.RoomCode, restart bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rm, err := c.rooms.Get(ctx, code)
	if err != nil {
		return
	}
	// Only members may start or reset a round
	if rm.GetPlayer(id) == nil {
		return
	}

	if restart {
		err = c.combat.Restart(rm)
	} else {
		err = c.combat.Start(rm)
	}
	if err != nil {
		c.transport.Send(ctx, id, model.EventError, model.ErrorPayload{Message: errorMessage(err)})
		return
	}

	if err := c.rooms.Touch(ctx, rm); err != nil {
		c.logger.Error("room save failed", slog.String("error", err.Error()))
	}

	c.transport.Broadcast(ctx, code, model.EventGameStart, model.GameStartPayload{
		Players:   playerInfos(rm),
		GameState: model.GameStateFromCombat(rm.Combat),
	})
}

// HandleGameAction resolves a combat action. The acting seat is derived
// from the caller's registry entry, never from the wire payload.
func (c *Coordinator) HandleGameAction(ctx context.Context, id model.PlayerID, code model.RoomCode, kind model.ActionKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.registry.Get(ctx, id)
	if err != nil {
		return
	}

	rm, err := c.rooms.Get(ctx, code)
	if err != nil {
		return
	}
	if rm.GetPlayer(id) == nil {
		return
	}

	result, err := c.combat.ApplyAction(rm, player.Seat, kind)
	if err != nil {
		c.transport.Send(ctx, id, model.EventError, model.ErrorPayload{Message: errorMessage(err)})
		return
	}

	if err := c.rooms.Touch(ctx, rm); err != nil {
		c.logger.Error("room save failed", slog.String("error", err.Error()))
	}

	// Raw action first so clients can animate it, then the authoritative
	// state so they never compute damage themselves.
	c.transport.Broadcast(ctx, code, model.EventGameAction, model.GameActionBroadcast{
		Action: string(result.Kind),
		Player: string(result.Attacker),
		Damage: result.Damage,
	})
	c.transport.Broadcast(ctx, code, model.EventGameUpdate, model.GameUpdatePayload{
		Player1Health: rm.Combat.HealthA,
		Player2Health: rm.Combat.HealthB,
		CurrentTurn:   string(rm.Combat.Turn),
		Winner:        string(result.Winner),
		Player1Wins:   rm.Combat.WinsA,
		Player2Wins:   rm.Combat.WinsB,
	})
}

// HandleDisconnect cleans up after a dropped connection. Safe to call for
// connections that were never registered or already cleaned up.
func (c *Coordinator) HandleDisconnect(ctx context.Context, id model.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.registry.Get(ctx, id)
	if err == nil && player.InRoom() {
		c.leaveRoom(ctx, id, player.RoomCode)
	}

	if err := c.registry.Unregister(ctx, id); err != nil {
		c.logger.Error("unregister failed",
			slog.String("player_id", string(id)),
			slog.String("error", err.Error()))
	}
}

func playerInfos(rm *model.Room) []model.PlayerInfo {
	infos := make([]model.PlayerInfo, len(rm.Players))
	for i, p := range rm.Players {
		infos[i] = model.PlayerInfoFromPlayer(p)
	}
	return infos
}

// errorMessage maps rejection reasons to the wire error signal
func errorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrNotPlayerTurn):
		return "not your turn"
	case errors.Is(err, model.ErrGameNotActive):
		return "game is not active"
	case errors.Is(err, model.ErrInsufficientPlayers):
		return "room needs two players"
	case errors.Is(err, model.ErrAlreadyInRoom):
		return "already in a room"
	default:
		return "could not process action"
	}
}
