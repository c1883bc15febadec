package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/spf13/cobra"

	"github.com/stickfight/server/internal/model"
	"github.com/stickfight/server/internal/ws"
)

func newPlayCmd() *cobra.Command {
	var name string
	var join string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Connect to the server and play from the terminal",
		Long: `Open a websocket session, create or join a room, and issue combat
actions interactively.

Commands at the prompt:
  start             begin the round (needs two players)
  light|heavy|special  attack with that action
  restart           start a fresh round
  leave             leave the room
  quit              disconnect and exit

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(name, join, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&join, "join", "", "Room code to join (creates a room when empty)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// playSession tracks the client's view of the game between events
type playSession struct {
	conn     *websocket.Conn
	roomCode string
}

func (s *playSession) send(ctx context.Context, event model.EventType, payload any) error {
	msg, err := ws.Encode(event, payload)
	if err != nil {
		return err
	}
	return s.conn.Write(ctx, websocket.MessageText, msg)
}

func runPlay(name, join string, jsonOutput bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	url := client.WebsocketURL()
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	session := &playSession{conn: conn}

	if name != "" {
		if err := session.send(ctx, model.EventSetName, model.SetNamePayload{Name: name}); err != nil {
			return err
		}
	}
	if join != "" {
		session.roomCode = strings.ToUpper(join)
		err = session.send(ctx, model.EventJoinRoom, model.JoinRoomPayload{RoomCode: session.roomCode})
	} else {
		err = session.send(ctx, model.EventCreateRoom, struct{}{})
	}
	if err != nil {
		return err
	}

	// Reader: print every event and track the room code
	readErr := make(chan error, 1)
	go func() {
		for {
			_, raw, err := conn.Read(ctx)
			if err != nil {
				readErr <- err
				return
			}
			env, err := ws.Decode(raw)
			if err != nil {
				continue
			}
			session.observe(env)
			printEvent(env, jsonOutput)
		}
	}()

	// Writer: map prompt commands to events
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line == "quit" {
				return nil
			}
			if err := session.command(ctx, line, jsonOutput); err != nil {
				return err
			}
		}
	}
}

// observe updates the session from server events
func (s *playSession) observe(env ws.Envelope) {
	switch env.Event {
	case model.EventRoomCreated:
		var p model.RoomCreatedPayload
		if json.Unmarshal(env.Data, &p) == nil {
			s.roomCode = p.RoomCode
		}
	case model.EventRoomNotFound, model.EventRoomFull:
		s.roomCode = ""
	}
}

func (s *playSession) command(ctx context.Context, line string, jsonOutput bool) error {
	switch line {
	case "":
		return nil
	case "start":
		return s.send(ctx, model.EventStartGame, model.StartGamePayload{RoomCode: s.roomCode})
	case "restart":
		return s.send(ctx, model.EventRestartGame, model.RestartGamePayload{RoomCode: s.roomCode})
	case "light", "heavy", "special":
		return s.send(ctx, model.EventGameAction, model.GameActionPayload{
			RoomCode: s.roomCode,
			Action:   line,
		})
	case "leave":
		return s.send(ctx, model.EventLeaveRoom, model.LeaveRoomPayload{RoomCode: s.roomCode})
	default:
		if !jsonOutput {
			fmt.Printf("unknown command: %s\n", line)
		}
		return nil
	}
}

func printEvent(env ws.Envelope, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		out, _ := json.Marshal(map[string]any{
			"time":  now,
			"event": env.Event,
			"data":  env.Data,
		})
		fmt.Println(string(out))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	data := strings.ReplaceAll(string(env.Data), "\n", " ")
	if len(data) > 120 {
		data = data[:120] + "..."
	}
	fmt.Printf("[%s] %s: %s\n", timestamp, env.Event, data)
}
