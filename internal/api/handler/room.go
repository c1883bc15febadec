package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/stickfight/server/internal/api/apierr"
	"github.com/stickfight/server/internal/api/response"
	"github.com/stickfight/server/internal/model"
	"github.com/stickfight/server/internal/services/room"
)

// RoomHandler serves read-only room snapshots for debugging and lobby
// screens. All mutation goes through the websocket protocol.
type RoomHandler struct {
	rooms *room.Service
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms *room.Service) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// Get returns a snapshot of one room
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])
	if len(code) != room.CodeLength {
		apierr.WriteError(w, apierr.NewInvalidRequestError("room code must be 4 letters"))
		return
	}

	rm, err := h.rooms.Get(r.Context(), model.RoomCode(code))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomResponseFromRoom(rm))
}

// List returns snapshots of all live rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	out := make([]response.RoomResponse, len(rooms))
	for i, rm := range rooms {
		out[i] = response.RoomResponseFromRoom(rm)
	}
	response.JSON(w, http.StatusOK, out)
}
