package handler

import (
	"net/http"

	"github.com/stickfight/server/internal/api/response"
	"github.com/stickfight/server/internal/dependencies/clock"
)

// HealthHandler serves the stateless liveness endpoint
type HealthHandler struct {
	clock clock.Clock
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(clock clock.Clock) *HealthHandler {
	return &HealthHandler{clock: clock}
}

// Get returns a fixed acknowledgment with the current time
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status: "ok",
		Time:   h.clock.Now(),
	})
}
