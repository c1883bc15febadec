package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case RoomResult:
		o.printRoom(v)
	case []RoomResult:
		o.printRooms(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type (matches API)
type HealthResult struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// RoomResult response type
type RoomResult struct {
	RoomCode   string       `json:"roomCode"`
	Players    []RoomPlayer `json:"players"`
	GameState  RoomGame     `json:"gameState"`
	CreatedAt  time.Time    `json:"createdAt"`
	LastActive time.Time    `json:"lastActive"`
}

// RoomPlayer response type
type RoomPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat string `json:"seat"`
}

// RoomGame response type
type RoomGame struct {
	Player1Health int    `json:"player1Health"`
	Player2Health int    `json:"player2Health"`
	CurrentTurn   string `json:"currentTurn"`
	Active        bool   `json:"active"`
	Round         int    `json:"round"`
	Player1Wins   int    `json:"player1Wins"`
	Player2Wins   int    `json:"player2Wins"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Time: %s\n", h.Time.Format(time.RFC3339))
}

func (o *Output) printRoom(r RoomResult) {
	fmt.Printf("Room: %s\n", r.RoomCode)
	fmt.Printf("Round: %d\n", r.GameState.Round)
	activeStr := "no"
	if r.GameState.Active {
		activeStr = "yes"
	}
	fmt.Printf("Active: %s\n", activeStr)
	if r.GameState.Active {
		fmt.Printf("Turn: %s\n", r.GameState.CurrentTurn)
	}
	fmt.Printf("Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		health := r.GameState.Player1Health
		wins := r.GameState.Player1Wins
		if p.Seat == "player2" {
			health = r.GameState.Player2Health
			wins = r.GameState.Player2Wins
		}
		fmt.Printf("  - %s (%s) health=%d wins=%d\n", p.Name, p.Seat, health, wins)
	}
}

func (o *Output) printRooms(rooms []RoomResult) {
	if len(rooms) == 0 {
		fmt.Println("No live rooms")
		return
	}
	for _, r := range rooms {
		fmt.Printf("%s  players=%d round=%d active=%t\n",
			r.RoomCode, len(r.Players), r.GameState.Round, r.GameState.Active)
	}
}
