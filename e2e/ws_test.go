package e2e_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"

	"github.com/stickfight/server/internal/api"
	"github.com/stickfight/server/internal/factory"
	"github.com/stickfight/server/internal/model"
	"github.com/stickfight/server/internal/testutil"
	"github.com/stickfight/server/internal/ws"
)

const readTimeout = 5 * time.Second

// wsClient wraps a websocket connection with event-level helpers
type wsClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dialClient(t *testing.T, serverURL string) *wsClient {
	t.Helper()

	url := strings.Replace(serverURL, "http://", "ws://", 1) + "/ws"
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close(websocket.StatusNormalClosure, "test done")
	})

	return &wsClient{t: t, conn: conn}
}

func (c *wsClient) send(event model.EventType, payload any) {
	c.t.Helper()

	msg, err := ws.Encode(event, payload)
	require.NoError(c.t, err)

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()
	require.NoError(c.t, c.conn.Write(ctx, websocket.MessageText, msg))
}

// expect reads the next event and requires it to match the given type,
// decoding its payload into dst when non-nil
func (c *wsClient) expect(event model.EventType, dst any) {
	c.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	_, raw, err := c.conn.Read(ctx)
	require.NoError(c.t, err)

	env, err := ws.Decode(raw)
	require.NoError(c.t, err)
	require.Equal(c.t, event, env.Event)

	if dst != nil {
		require.NoError(c.t, json.Unmarshal(env.Data, dst))
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *factory.App) {
	t.Helper()

	app, err := factory.New(factory.Config{Logger: testutil.NopLogger()})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Clock:       app.Clock,
		RoomService: app.RoomService,
		WSHandler:   app.WSHandler,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, app
}

func TestFullGameOverWebsocket(t *testing.T) {
	server, _ := newTestServer(t)

	// First player creates a room
	alice := dialClient(t, server.URL)
	alice.send(model.EventSetName, model.SetNamePayload{Name: "Alice"})
	alice.send(model.EventCreateRoom, struct{}{})

	var created model.RoomCreatedPayload
	alice.expect(model.EventRoomCreated, &created)
	require.Len(t, created.RoomCode, 4)

	var joined model.PlayerJoinedPayload
	alice.expect(model.EventPlayerJoined, &joined)
	require.Len(t, joined.Players, 1)
	require.Equal(t, "Alice", joined.Players[0].Name)

	// Second player joins with the shared code
	bob := dialClient(t, server.URL)
	bob.send(model.EventSetName, model.SetNamePayload{Name: "Bob"})
	bob.send(model.EventJoinRoom, model.JoinRoomPayload{RoomCode: created.RoomCode})

	alice.expect(model.EventPlayerJoined, &joined)
	require.Len(t, joined.Players, 2)

	bob.expect(model.EventPlayerJoined, &joined)
	require.Len(t, joined.Players, 2)
	require.Equal(t, string(model.SeatB), joined.Players[1].Seat)

	// Start the game
	alice.send(model.EventStartGame, model.StartGamePayload{RoomCode: created.RoomCode})

	var start model.GameStartPayload
	alice.expect(model.EventGameStart, &start)
	require.Equal(t, 100, start.GameState.Player1Health)
	require.Equal(t, 100, start.GameState.Player2Health)
	require.Equal(t, string(model.SeatA), start.GameState.CurrentTurn)
	require.True(t, start.GameState.Active)
	require.Equal(t, 1, start.GameState.Round)
	bob.expect(model.EventGameStart, nil)

	// Acting out of turn earns a private error and no broadcast
	bob.send(model.EventGameAction, model.GameActionPayload{RoomCode: created.RoomCode, Action: "light"})

	var errPayload model.ErrorPayload
	bob.expect(model.EventError, &errPayload)
	require.Equal(t, "not your turn", errPayload.Message)

	// Seat A attacks; both clients see the action then the new state
	alice.send(model.EventGameAction, model.GameActionPayload{RoomCode: created.RoomCode, Action: "light"})

	var action model.GameActionBroadcast
	for _, client := range []*wsClient{alice, bob} {
		client.expect(model.EventGameAction, &action)
		require.Equal(t, "light", action.Action)
		require.Equal(t, string(model.SeatA), action.Player)
		require.GreaterOrEqual(t, action.Damage, 5)
		require.LessOrEqual(t, action.Damage, 20)

		var update model.GameUpdatePayload
		client.expect(model.EventGameUpdate, &update)
		require.Equal(t, 100, update.Player1Health)
		require.Equal(t, 100-action.Damage, update.Player2Health)
		require.Equal(t, string(model.SeatB), update.CurrentTurn)
		require.Empty(t, update.Winner)
	}

	// Leaving mid-round abandons it for the remaining player
	alice.send(model.EventLeaveRoom, model.LeaveRoomPayload{RoomCode: created.RoomCode})

	var left model.PlayerLeftPayload
	bob.expect(model.EventPlayerLeft, &left)
	require.Len(t, left.Players, 1)
	require.Equal(t, "Bob", left.Players[0].Name)
}

func TestJoinMissingAndFullRooms(t *testing.T) {
	server, app := newTestServer(t)

	ghost := dialClient(t, server.URL)
	ghost.send(model.EventJoinRoom, model.JoinRoomPayload{RoomCode: "ZZZZ"})
	ghost.expect(model.EventRoomNotFound, nil)

	host := dialClient(t, server.URL)
	host.send(model.EventCreateRoom, struct{}{})

	var created model.RoomCreatedPayload
	host.expect(model.EventRoomCreated, &created)
	host.expect(model.EventPlayerJoined, nil)

	guest := dialClient(t, server.URL)
	guest.send(model.EventJoinRoom, model.JoinRoomPayload{RoomCode: created.RoomCode})
	guest.expect(model.EventPlayerJoined, nil)

	ghost.send(model.EventJoinRoom, model.JoinRoomPayload{RoomCode: created.RoomCode})
	ghost.expect(model.EventRoomFull, nil)

	// All three clients have completed round-trips, so registration is settled
	require.Equal(t, 3, app.Hub.ClientCount())
}
