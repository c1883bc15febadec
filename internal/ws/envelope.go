package ws

import (
	"encoding/json"

	"github.com/stickfight/server/internal/model"
)

// Envelope is the wire framing for every message in both directions:
// an event name plus an event-specific JSON payload.
type Envelope struct {
	Event model.EventType `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode wraps an event and its payload into wire bytes
func Encode(event model.EventType, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

// Decode parses wire bytes into an envelope
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}
