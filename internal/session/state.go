package session

import (
	"ctchen222/Shape-Game/pkg/proto"
	"time"
)

// State is a step of the client protocol.
type State int

const (
	StateConnecting State = iota
	StateJoinSent
	StateAwaitingJoinAck
	StatePlaying
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateJoinSent:
		return "join_sent"
	case StateAwaitingJoinAck:
		return "awaiting_join_ack"
	case StatePlaying:
		return "playing"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Result summarises a finished game.
type Result struct {
	SessionID     string                   `json:"session_id"`
	PlayerName    string                   `json:"player_name"`
	GameID        string                   `json:"game_id,omitempty"`
	Winner        string                   `json:"winner"`
	CurrentRound  int                      `json:"current_round"`
	TotalRounds   int                      `json:"total_rounds"`
	PastWinners   []string                 `json:"past_winners"`
	PlayerChoices []proto.PlayerChoiceInfo `json:"player_choices"`
	Moves         []string                 `json:"moves"`
	StartedAt     time.Time                `json:"started_at"`
	FinishedAt    time.Time                `json:"finished_at"`
}

// Won reports whether the client itself won the game.
func (r *Result) Won() bool {
	return r.Winner == r.PlayerName
}

// Snapshot is a point-in-time view of a running session.
type Snapshot struct {
	SessionID   string `json:"session_id"`
	PlayerName  string `json:"player_name"`
	State       string `json:"state"`
	GameID      string `json:"game_id,omitempty"`
	Round       int    `json:"current_round"`
	TotalRounds int    `json:"total_rounds"`
	MatchNumber int    `json:"match_number"`
	Moves       int    `json:"moves"`
	LastLine    string `json:"last_line,omitempty"`
	Winner      string `json:"winner,omitempty"`
}
