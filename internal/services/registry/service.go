package registry

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/stickfight/server/internal/dependencies/clock"
	"github.com/stickfight/server/internal/model"
	"github.com/stickfight/server/internal/storage"
)

// Service owns the mapping from live connections to player identity
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new registry service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "registry")),
	}
}

// Register creates a player record for a new connection
func (s *Service) Register(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	player := &model.Player{
		ID:          id,
		DisplayName: model.DefaultDisplayName,
		Seat:        model.SeatNone,
		JoinedAt:    s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered", slog.String("player_id", string(id)))
	return player, nil
}

// SetName updates a player's display name. Empty or blank names fall back
// to the default.
func (s *Service) SetName(ctx context.Context, id model.PlayerID, name string) error {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return err
	}

	if strings.TrimSpace(name) == "" {
		name = model.DefaultDisplayName
	}
	player.DisplayName = name

	return s.storage.SavePlayer(ctx, player)
}

// Get retrieves a player by connection id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// Update persists a mutated player record
func (s *Service) Update(ctx context.Context, player *model.Player) error {
	return s.storage.SavePlayer(ctx, player)
}

// Unregister removes a player record. Unregistering an unknown connection
// is a no-op.
func (s *Service) Unregister(ctx context.Context, id model.PlayerID) error {
	if err := s.storage.DeletePlayer(ctx, id); err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return err
	}
	s.logger.Info("player unregistered", slog.String("player_id", string(id)))
	return nil
}
