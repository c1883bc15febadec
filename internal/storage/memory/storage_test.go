package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/stickfight/server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "conn-1",
		DisplayName: "Alice",
		JoinedAt:    time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal("Alice", retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
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

func (s *StorageSuite) TestDeletePlayerIsIdempotent() {
	err := s.storage.DeletePlayer(s.ctx, "never-existed")
	s.NoError(err)
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		Code:   "ABCD",
		Combat: model.NewCombatState(),
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.Equal(model.RoomCode("ABCD"), retrieved.Code)
	s.Equal(model.StartingHealth, retrieved.Combat.HealthA)
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

	_, err := s.storage.GetRoom(s.ctx, "ABCD")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestListRooms() {
	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Empty(rooms)

	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "AAAA"})
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "BBBB"})

	rooms, err = s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 2)

	codes := []model.RoomCode{rooms[0].Code, rooms[1].Code}
	s.ElementsMatch([]model.RoomCode{"AAAA", "BBBB"}, codes)
}
