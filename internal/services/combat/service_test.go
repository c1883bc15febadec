package combat_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/stickfight/server/internal/dependencies/mocks"
	"github.com/stickfight/server/internal/dependencies/random"
	"github.com/stickfight/server/internal/model"
	"github.com/stickfight/server/internal/services/combat"
	"github.com/stickfight/server/internal/testutil"
)

type CombatSuite struct {
	suite.Suite

	random  *mocks.MockRandom
	service *combat.Service
}

func (s *CombatSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = combat.New(s.random, testutil.NopLogger())
}

// twoPlayerRoom builds a room with both seats filled and an active game
func (s *CombatSuite) twoPlayerRoom() *model.Room {
	rm := &model.Room{
		Code: "ABCD",
		Players: []model.Player{
			{ID: "conn-1", DisplayName: "Alice", RoomCode: "ABCD", Seat: model.SeatA},
			{ID: "conn-2", DisplayName: "Bob", RoomCode: "ABCD", Seat: model.SeatB},
		},
		Combat: model.NewCombatState(),
	}
	s.Require().NoError(s.service.Start(rm))
	return rm
}

func (s *CombatSuite) TestStart() {
	rm := s.twoPlayerRoom()

	s.True(rm.Combat.Active)
	s.Equal(model.StartingHealth, rm.Combat.HealthA)
	s.Equal(model.StartingHealth, rm.Combat.HealthB)
	s.Equal(model.SeatA, rm.Combat.Turn)
	s.Equal(1, rm.Combat.Round)
}

func (s *CombatSuite) TestStartRequiresTwoPlayers() {
	rm := &model.Room{
		Code:    "ABCD",
		Players: []model.Player{{ID: "conn-1", Seat: model.SeatA}},
		Combat:  model.NewCombatState(),
	}

	err := s.service.Start(rm)
	s.ErrorIs(err, model.ErrInsufficientPlayers)
	s.False(rm.Combat.Active)
}

func (s *CombatSuite) TestRestartIncrementsRound() {
	rm := s.twoPlayerRoom()

	s.Require().NoError(s.service.Restart(rm))
	s.Equal(2, rm.Combat.Round)

	// A plain start keeps the counter
	s.Require().NoError(s.service.Start(rm))
	s.Equal(2, rm.Combat.Round)
}

func (s *CombatSuite) TestActionDamageRanges() {
	cases := []struct {
		kind   model.ActionKind
		rolled int
	}{
		{model.ActionLight, 17},
		{model.ActionHeavy, 30},
		{model.ActionSpecial, 15},
	}

	for _, tc := range cases {
		rm := s.twoPlayerRoom()
		s.random.QueueIntRange(tc.rolled)

		result, err := s.service.ApplyAction(rm, model.SeatA, tc.kind)
		s.Require().NoError(err, "kind %s", tc.kind)

		s.Equal(tc.rolled, result.Damage)
		s.Equal(model.StartingHealth-tc.rolled, rm.Combat.HealthB)
		s.Equal(model.StartingHealth, rm.Combat.HealthA)
	}
}

func (s *CombatSuite) TestUnknownActionUsesDefaultDamage() {
	rm := s.twoPlayerRoom()

	result, err := s.service.ApplyAction(rm, model.SeatA, "taunt")
	s.Require().NoError(err)

	s.Equal(model.DefaultDamage, result.Damage)
	s.Equal(model.StartingHealth-model.DefaultDamage, rm.Combat.HealthB)
}

func (s *CombatSuite) TestTurnAlternates() {
	rm := s.twoPlayerRoom()
	s.random.QueueIntRange(5, 5, 5, 5)

	for i, expected := range []model.Seat{model.SeatA, model.SeatB, model.SeatA, model.SeatB} {
		s.Equal(expected, rm.Combat.Turn, "before action %d", i)
		_, err := s.service.ApplyAction(rm, expected, model.ActionLight)
		s.Require().NoError(err)
		s.Equal(expected.Other(), rm.Combat.Turn, "after action %d", i)
	}
}

func (s *CombatSuite) TestOutOfTurnRejected() {
	rm := s.twoPlayerRoom()

	_, err := s.service.ApplyAction(rm, model.SeatB, model.ActionLight)
	s.ErrorIs(err, model.ErrNotPlayerTurn)

	// No state mutated
	s.Equal(model.StartingHealth, rm.Combat.HealthA)
	s.Equal(model.StartingHealth, rm.Combat.HealthB)
	s.Equal(model.SeatA, rm.Combat.Turn)
}

func (s *CombatSuite) TestInactiveGameRejected() {
	rm := s.twoPlayerRoom()
	rm.Combat.Active = false

	_, err := s.service.ApplyAction(rm, model.SeatA, model.ActionLight)
	s.ErrorIs(err, model.ErrGameNotActive)
}

func (s *CombatSuite) TestOnePlayerRoomRejected() {
	rm := s.twoPlayerRoom()
	rm.Players = rm.Players[:1]

	_, err := s.service.ApplyAction(rm, model.SeatA, model.ActionLight)
	s.ErrorIs(err, model.ErrGameNotActive)
}

func (s *CombatSuite) TestFinishingBlow() {
	rm := s.twoPlayerRoom()
	rm.Combat.HealthB = 12

	// Overkill clamps to zero
	s.random.QueueIntRange(30)
	result, err := s.service.ApplyAction(rm, model.SeatA, model.ActionHeavy)
	s.Require().NoError(err)

	s.Equal(0, rm.Combat.HealthB)
	s.Equal(model.SeatA, result.Winner)
	s.Equal(1, rm.Combat.WinsA)
	s.Equal(0, rm.Combat.WinsB)
	s.False(rm.Combat.Active)

	// The turn flips even on the finishing blow
	s.Equal(model.SeatB, rm.Combat.Turn)
}

func (s *CombatSuite) TestSeatBWins() {
	rm := s.twoPlayerRoom()
	rm.Combat.Turn = model.SeatB
	rm.Combat.HealthA = 5

	s.random.QueueIntRange(5)
	result, err := s.service.ApplyAction(rm, model.SeatB, model.ActionLight)
	s.Require().NoError(err)

	s.Equal(0, rm.Combat.HealthA)
	s.Equal(model.SeatB, result.Winner)
	s.Equal(1, rm.Combat.WinsB)
	s.False(rm.Combat.Active)
}

func (s *CombatSuite) TestWinCountersAccumulateAcrossRounds() {
	rm := s.twoPlayerRoom()
	rm.Combat.HealthB = 1
	s.random.QueueIntRange(20)
	_, err := s.service.ApplyAction(rm, model.SeatA, model.ActionLight)
	s.Require().NoError(err)
	s.Equal(1, rm.Combat.WinsA)

	s.Require().NoError(s.service.Restart(rm))
	s.Equal(1, rm.Combat.WinsA, "restart keeps the score")
	s.Equal(2, rm.Combat.Round)

	rm.Combat.HealthB = 1
	s.random.QueueIntRange(20)
	_, err = s.service.ApplyAction(rm, model.SeatA, model.ActionLight)
	s.Require().NoError(err)
	s.Equal(2, rm.Combat.WinsA)
}

func (s *CombatSuite) TestHalt() {
	rm := s.twoPlayerRoom()
	rm.Combat.HealthA = 40
	rm.Combat.HealthB = 7
	rm.Combat.Turn = model.SeatB

	s.service.Halt(rm)

	s.False(rm.Combat.Active)
	s.Equal(model.StartingHealth, rm.Combat.HealthA)
	s.Equal(model.StartingHealth, rm.Combat.HealthB)
	s.Equal(model.SeatA, rm.Combat.Turn)
	s.Equal(0, rm.Combat.WinsA, "abandoned round scores nothing")
	s.Equal(0, rm.Combat.WinsB)
}

func TestCombatSuite(t *testing.T) {
	suite.Run(t, new(CombatSuite))
}

// TestDamageBoundsWithRealRandomness checks the inclusive damage ranges with
// the production randomness source.
func TestDamageBoundsWithRealRandomness(t *testing.T) {
	service := combat.New(random.New(), testutil.NopLogger())

	bounds := map[model.ActionKind][2]int{
		model.ActionLight:   {5, 20},
		model.ActionHeavy:   {10, 30},
		model.ActionSpecial: {15, 40},
	}

	rm := &model.Room{
		Code: "ABCD",
		Players: []model.Player{
			{ID: "conn-1", Seat: model.SeatA},
			{ID: "conn-2", Seat: model.SeatB},
		},
		Combat: model.NewCombatState(),
	}

	for kind, b := range bounds {
		for i := 0; i < 100; i++ {
			if err := service.Start(rm); err != nil {
				t.Fatalf("start: %v", err)
			}
			result, err := service.ApplyAction(rm, model.SeatA, kind)
			if err != nil {
				t.Fatalf("apply %s: %v", kind, err)
			}
			if result.Damage < b[0] || result.Damage > b[1] {
				t.Fatalf("%s damage %d outside [%d,%d]", kind, result.Damage, b[0], b[1])
			}
		}
	}
}
