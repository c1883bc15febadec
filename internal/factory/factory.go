package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/stickfight/server/internal/dependencies/clock"
	"github.com/stickfight/server/internal/dependencies/random"
	"github.com/stickfight/server/internal/services/combat"
	"github.com/stickfight/server/internal/services/reaper"
	"github.com/stickfight/server/internal/services/registry"
	"github.com/stickfight/server/internal/services/room"
	"github.com/stickfight/server/internal/services/session"
	"github.com/stickfight/server/internal/storage"
	"github.com/stickfight/server/internal/storage/memory"
	redisstorage "github.com/stickfight/server/internal/storage/redis"
	"github.com/stickfight/server/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	RegistryService *registry.Service
	RoomService     *room.Service
	CombatService   *combat.Service
	Coordinator     *session.Coordinator
	Reaper          *reaper.Reaper

	// Transport
	Hub       *ws.Hub
	WSHandler *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ReaperGraceWindow is how long an empty room may idle before the
	// background sweep reclaims it (optional, defaults applied)
	ReaperGraceWindow time.Duration
	// ReaperPeriod is the sweep interval (optional, defaults applied)
	ReaperPeriod time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.ReaperGraceWindow, cfg.ReaperPeriod, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, graceWindow, period time.Duration, logger *slog.Logger) *App {
	registryService := registry.New(store, clk, logger)
	roomService := room.New(store, clk, rnd, logger)
	combatService := combat.New(rnd, logger)

	hub := ws.NewHub(logger)
	coordinator := session.New(registryService, roomService, combatService, hub, logger)
	wsHandler := ws.NewHandler(coordinator, hub, logger)
	idleReaper := reaper.New(roomService, clk, coordinator.Locker(), graceWindow, period, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		RegistryService: registryService,
		RoomService:     roomService,
		CombatService:   combatService,
		Coordinator:     coordinator,
		Reaper:          idleReaper,
		Hub:             hub,
		WSHandler:       wsHandler,
	}
}
