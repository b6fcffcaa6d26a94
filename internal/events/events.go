package events

import "encoding/json"

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types published on EventsChannel.
const (
	TypeGameFinished = "game_finished"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// GameFinishedPayload is the payload for the "game_finished" event.
type GameFinishedPayload struct {
	SessionID  string `json:"session_id"`
	GameID     string `json:"game_id,omitempty"`
	PlayerName string `json:"player_name"`
	Winner     string `json:"winner"`
	Won        bool   `json:"won"`
	Rounds     int    `json:"rounds"`
}

// New wraps payload in an Event of the given type.
func New(eventType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: eventType, Payload: raw})
}
