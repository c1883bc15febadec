package combat

import (
	"log/slog"

	"github.com/stickfight/server/internal/dependencies/random"
	"github.com/stickfight/server/internal/model"
)

// Service resolves combat actions against a room's combat state.
// It mutates the room in place; callers own persistence and fan-out.
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new combat service
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger.With(slog.String("component", "combat")),
	}
}

// ActionResult reports the outcome of a resolved action
type ActionResult struct {
	Kind     model.ActionKind
	Attacker model.Seat
	Defender model.Seat
	Damage   int
	// Winner is SeatNone unless this action ended the round
	Winner model.Seat
}

// ApplyAction resolves one combat action for the acting seat.
// Rejections leave the room untouched: ErrGameNotActive when the room does
// not hold an active two-player game, ErrNotPlayerTurn when the acting seat
// does not own the turn.
func (s *Service) ApplyAction(room *model.Room, actingSeat model.Seat, kind model.ActionKind) (ActionResult, error) {
	combat := &room.Combat

	if len(room.Players) != model.MaxRoomPlayers || !combat.Active {
		return ActionResult{}, model.ErrGameNotActive
	}
	if actingSeat != combat.Turn {
		return ActionResult{}, model.ErrNotPlayerTurn
	}

	damage := model.DefaultDamage
	if dmgRange, ok := model.DamageRangeFor(kind); ok {
		damage = s.random.IntRange(dmgRange.Min, dmgRange.Max)
	}

	defender := actingSeat.Other()
	combat.SetHealth(defender, combat.Health(defender)-damage)

	// The turn flips even on the finishing blow; the value is inert once
	// the round is over but stays deterministic.
	combat.Turn = defender

	result := ActionResult{
		Kind:     kind,
		Attacker: actingSeat,
		Defender: defender,
		Damage:   damage,
	}

	if combat.Health(defender) == 0 {
		result.Winner = actingSeat
		if actingSeat == model.SeatA {
			combat.WinsA++
		} else {
			combat.WinsB++
		}
		combat.Active = false

		s.logger.Info("round ended",
			slog.String("room_code", string(room.Code)),
			slog.String("winner", string(actingSeat)),
			slog.Int("round", combat.Round),
		)
	}

	return result, nil
}

// Start begins the first round of a game: both seats at full health,
// seat A to act. The round counter keeps its current value.
func (s *Service) Start(room *model.Room) error {
	return s.startRound(room, false)
}

// Restart begins a fresh round and increments the round counter.
func (s *Service) Restart(room *model.Room) error {
	return s.startRound(room, true)
}

func (s *Service) startRound(room *model.Room, incrementRound bool) error {
	if len(room.Players) != model.MaxRoomPlayers {
		return model.ErrInsufficientPlayers
	}

	combat := &room.Combat
	combat.HealthA = model.StartingHealth
	combat.HealthB = model.StartingHealth
	combat.Active = true
	combat.Turn = model.SeatA
	if incrementRound {
		combat.Round++
	}

	s.logger.Info("round started",
		slog.String("room_code", string(room.Code)),
		slog.Int("round", combat.Round),
	)

	return nil
}

// Halt abandons any round in progress: health back to full, game inactive,
// no winner recorded. Used when a room drops below two players.
func (s *Service) Halt(room *model.Room) {
	combat := &room.Combat
	combat.HealthA = model.StartingHealth
	combat.HealthB = model.StartingHealth
	combat.Active = false
	combat.Turn = model.SeatA
}
