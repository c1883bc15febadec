package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/stickfight/server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.PlayerTTL = time.Hour
	cfg.RoomTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "conn-1",
		DisplayName: "Alice",
		RoomCode:    "ABCD",
		Seat:        model.SeatA,
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal("Alice", retrieved.DisplayName)
	s.Equal(model.SeatA, retrieved.Seat)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestPlayerTTLApplied() {
	player := &model.Player{ID: "conn-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetPlayer(s.ctx, "conn-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "conn-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "conn-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "conn-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		Code: "ABCD",
		Players: []model.Player{
			{ID: "conn-1", DisplayName: "Alice", Seat: model.SeatA},
		},
		Combat: model.NewCombatState(),
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.Equal(model.RoomCode("ABCD"), retrieved.Code)
	s.Len(retrieved.Players, 1)
	s.Equal(model.StartingHealth, retrieved.Combat.HealthA)
	s.Equal(1, retrieved.Combat.Round)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "ZZZZ")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABCD"})

	exists, err = s.storage.RoomExists(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestDeleteRoomIsIdempotent() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABCD"})

	s.NoError(s.storage.DeleteRoom(s.ctx, "ABCD"))
	s.NoError(s.storage.DeleteRoom(s.ctx, "ABCD"))
}

func (s *StorageSuite) TestListRooms() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "AAAA"})
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "BBBB"})

	// Player keys must not leak into the room scan
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "conn-1"})

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 2)
}
