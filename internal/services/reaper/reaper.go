package reaper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stickfight/server/internal/dependencies/clock"
	"github.com/stickfight/server/internal/services/room"
)

const (
	// DefaultGraceWindow is how long an empty room may idle before reclamation
	DefaultGraceWindow = 60 * time.Second
	// DefaultPeriod is the sweep interval
	DefaultPeriod = 30 * time.Second
)

// Reaper reclaims rooms left empty beyond a grace window. It is a backstop
// for rooms that emptied without a clean leave or disconnect; the session
// coordinator's eager deletion handles the common case.
type Reaper struct {
	rooms       *room.Service
	clock       clock.Clock
	locker      sync.Locker
	graceWindow time.Duration
	period      time.Duration
	logger      *slog.Logger
}

// New creates a reaper. The locker must be the session coordinator's so
// sweeps never interleave with an in-flight event handler.
func New(rooms *room.Service, clock clock.Clock, locker sync.Locker, graceWindow, period time.Duration, logger *slog.Logger) *Reaper {
	if graceWindow <= 0 {
		graceWindow = DefaultGraceWindow
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Reaper{
		rooms:       rooms,
		clock:       clock,
		locker:      locker,
		graceWindow: graceWindow,
		period:      period,
		logger:      logger.With(slog.String("component", "reaper")),
	}
}

// Run sweeps on a fixed period until the context is cancelled
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	r.logger.Info("reaper started",
		slog.Duration("period", r.period),
		slog.Duration("grace_window", r.graceWindow))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reaper stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep deletes every empty room whose last activity is older than the
// grace window. Exported so tests can drive it synchronously.
func (r *Reaper) Sweep(ctx context.Context) {
	r.locker.Lock()
	defer r.locker.Unlock()

	rooms, err := r.rooms.List(ctx)
	if err != nil {
		r.logger.Error("sweep list failed", slog.String("error", err.Error()))
		return
	}

	cutoff := r.clock.Now().Add(-r.graceWindow)
	reaped := 0
	for _, rm := range rooms {
		if !rm.IsEmpty() || rm.LastActive.After(cutoff) {
			continue
		}
		if err := r.rooms.Delete(ctx, rm.Code); err != nil {
			r.logger.Error("sweep delete failed",
				slog.String("room_code", string(rm.Code)),
				slog.String("error", err.Error()))
			continue
		}
		reaped++
	}

	if reaped > 0 {
		r.logger.Info("idle rooms reaped", slog.Int("count", reaped))
	}
}
