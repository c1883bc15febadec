package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stickfight/server/internal/api/handler"
	"github.com/stickfight/server/internal/api/middleware"
	"github.com/stickfight/server/internal/dependencies/clock"
	"github.com/stickfight/server/internal/services/room"
)

// RouterConfig holds configuration for the HTTP router
type RouterConfig struct {
	Logger      *slog.Logger
	Clock       clock.Clock
	RoomService *room.Service
	// WSHandler serves the websocket endpoint. Mounted outside the
	// middleware chain: wrapping the ResponseWriter would hide the
	// Hijacker the upgrade needs.
	WSHandler http.Handler
	// StaticDir serves the game client when non-empty
	StaticDir string
}

// NewRouter creates a new router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	healthHandler := handler.NewHealthHandler(cfg.Clock)
	roomHandler := handler.NewRoomHandler(cfg.RoomService)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	r.Handle("/ws", cfg.WSHandler)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms", roomHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)

	if cfg.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
