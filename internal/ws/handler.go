package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/stickfight/server/internal/model"
	"github.com/stickfight/server/internal/services/session"
)

// Handler upgrades HTTP requests to websocket connections and pumps their
// events through the session coordinator.
type Handler struct {
	coordinator *session.Coordinator
	hub         *Hub
	logger      *slog.Logger
}

// NewHandler creates a new websocket handler
func NewHandler(coordinator *session.Coordinator, hub *Hub, logger *slog.Logger) *Handler {
	return &Handler{
		coordinator: coordinator,
		hub:         hub,
		logger:      logger.With(slog.String("component", "ws_handler")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Clients are served from arbitrary hosts during development;
		// the protocol carries no credentials worth protecting from CSWSH
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Warn("websocket accept failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "connection dropped")

	id := model.PlayerID(uuid.NewString())
	client := NewClient(id, conn)

	h.hub.Register(r.Context(), client)
	h.coordinator.HandleConnect(r.Context(), id)

	// Cleanup must run even when the request context is already cancelled
	defer func() {
		h.coordinator.HandleDisconnect(context.WithoutCancel(r.Context()), id)
		h.hub.Unregister(id)
	}()

	for {
		_, raw, err := conn.Read(r.Context())
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				conn.Close(websocket.StatusNormalClosure, "")
			}
			return
		}

		env, err := Decode(raw)
		if err != nil {
			h.hub.Send(r.Context(), id, model.EventError, model.ErrorPayload{Message: "malformed message"})
			continue
		}

		h.dispatch(r.Context(), id, env)
	}
}

// dispatch routes one inbound envelope to the matching coordinator handler.
// Payloads that fail to parse earn a private error; unknown events likewise.
func (h *Handler) dispatch(ctx context.Context, id model.PlayerID, env Envelope) {
	switch env.Event {
	case model.EventSetName:
		var p model.SetNamePayload
		if !h.decode(ctx, id, env.Data, &p) {
			return
		}
		h.coordinator.HandleSetName(ctx, id, p.Name)

	case model.EventCreateRoom:
		h.coordinator.HandleCreateRoom(ctx, id)

	case model.EventJoinRoom:
		var p model.JoinRoomPayload
		if !h.decode(ctx, id, env.Data, &p) {
			return
		}
		h.coordinator.HandleJoinRoom(ctx, id, normalizeCode(p.RoomCode))

	case model.EventLeaveRoom:
		var p model.LeaveRoomPayload
		if !h.decode(ctx, id, env.Data, &p) {
			return
		}
		h.coordinator.HandleLeaveRoom(ctx, id, normalizeCode(p.RoomCode))

	case model.EventStartGame:
		var p model.StartGamePayload
		if !h.decode(ctx, id, env.Data, &p) {
			return
		}
		h.coordinator.HandleStartGame(ctx, id, normalizeCode(p.RoomCode))

	case model.EventGameAction:
		var p model.GameActionPayload
		if !h.decode(ctx, id, env.Data, &p) {
			return
		}
		h.coordinator.HandleGameAction(ctx, id, normalizeCode(p.RoomCode), model.ActionKind(p.Action))

	case model.EventRestartGame:
		var p model.RestartGamePayload
		if !h.decode(ctx, id, env.Data, &p) {
			return
		}
		h.coordinator.HandleRestartGame(ctx, id, normalizeCode(p.RoomCode))

	default:
		h.hub.Send(ctx, id, model.EventError, model.ErrorPayload{Message: "unknown event"})
	}
}

func (h *Handler) decode(ctx context.Context, id model.PlayerID, data json.RawMessage, dst any) bool {
	if len(data) == 0 {
		h.hub.Send(ctx, id, model.EventError, model.ErrorPayload{Message: "missing payload"})
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		h.hub.Send(ctx, id, model.EventError, model.ErrorPayload{Message: "malformed payload"})
		return false
	}
	return true
}

// normalizeCode forgives lowercase and padded room codes from clients
func normalizeCode(code string) model.RoomCode {
	return model.RoomCode(strings.ToUpper(strings.TrimSpace(code)))
}
