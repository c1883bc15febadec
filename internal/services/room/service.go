package room

import (
	"context"
	"errors"
	"log/slog"

	"github.com/stickfight/server/internal/dependencies/clock"
	"github.com/stickfight/server/internal/dependencies/random"
	"github.com/stickfight/server/internal/model"
	"github.com/stickfight/server/internal/storage"
)

const (
	// CodeLength is the length of generated room codes
	CodeLength = 4
	// CodeAlphabet is the characters used in room codes
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// maxCodeAttempts bounds the collision-retry loop. At 26^4 possible
	// codes this is unreachable for any realistic room count.
	maxCodeAttempts = 1000
)

// Service owns room creation, lookup and deletion
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new room service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "room")),
	}
}

// Create allocates a room with a fresh unique code and the given player as
// its sole seat-A occupant.
func (s *Service) Create(ctx context.Context, creator model.Player) (*model.Room, error) {
	code, err := s.generateCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	creator.RoomCode = code
	creator.Seat = model.SeatA

	room := &model.Room{
		Code:       code,
		Players:    []model.Player{creator},
		Combat:     model.NewCombatState(),
		CreatedAt:  now,
		LastActive: now,
	}

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		slog.String("room_code", string(code)),
		slog.String("player_id", string(creator.ID)),
	)

	return room, nil
}

// generateCode produces a code unique among currently live rooms.
// Collisions regenerate; the attempt cap only guards against a broken
// randomness source.
func (s *Service) generateCode(ctx context.Context) (model.RoomCode, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := model.RoomCode(s.random.String(CodeLength, CodeAlphabet))
		exists, err := s.storage.RoomExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", model.ErrCodeSpaceExhausted
}

// Get retrieves a room by code
func (s *Service) Get(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return s.storage.GetRoom(ctx, code)
}

// Save persists a mutated room
func (s *Service) Save(ctx context.Context, room *model.Room) error {
	return s.storage.SaveRoom(ctx, room)
}

// Delete removes a room. Deleting an absent room is a no-op.
func (s *Service) Delete(ctx context.Context, code model.RoomCode) error {
	if err := s.storage.DeleteRoom(ctx, code); err != nil && !errors.Is(err, model.ErrRoomNotFound) {
		return err
	}
	s.logger.Info("room deleted", slog.String("room_code", string(code)))
	return nil
}

// Touch updates a room's last-activity timestamp
func (s *Service) Touch(ctx context.Context, room *model.Room) error {
	room.LastActive = s.clock.Now()
	return s.storage.SaveRoom(ctx, room)
}

// List returns all live rooms
func (s *Service) List(ctx context.Context) ([]*model.Room, error) {
	return s.storage.ListRooms(ctx)
}
