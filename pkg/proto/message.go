package proto

// JoinRequest is the first line a client writes after connecting.
type JoinRequest struct {
	PlayerName string `json:"player_name" validate:"required"`
}

// JoinResponse is the acknowledgement some coordinators send after a join.
// The ack line is opaque to the protocol; this shape is only used to enrich logs.
type JoinResponse struct {
	PlayerName string   `json:"player_name"`
	Players    []string `json:"players"`
	GameID     string   `json:"game_id"`
}

// PlayerChoiceInfo records the shape one player picked in a past match.
type PlayerChoiceInfo struct {
	PlayerName string `json:"player_name"`
	Shape      string `json:"shape"`
}

// ChoiceRequest asks the client to pick a shape for one match.
type ChoiceRequest struct {
	CurrentRound  int                `json:"current_round"`
	TotalRounds   int                `json:"total_rounds"`
	PastWinners   []string           `json:"past_winners"`
	PlayerChoices []PlayerChoiceInfo `json:"player_choices"`
	Options       []string           `json:"options" validate:"min=1"`
	PlayerName    string             `json:"player_name"`
	GameID        string             `json:"game_id"`
	MatchNumber   int                `json:"match_number"`
}

// ChoiceResponse carries the client's pick back to the coordinator.
type ChoiceResponse struct {
	Shape       string `json:"shape"`
	PlayerName  string `json:"player_name"`
	GameID      string `json:"game_id"`
	MatchNumber int    `json:"match_number"`
}

// EndOfGameMessage is the terminal message of a game.
type EndOfGameMessage struct {
	Winner        string             `json:"winner"`
	CurrentRound  int                `json:"current_round"`
	TotalRounds   int                `json:"total_rounds"`
	PastWinners   []string           `json:"past_winners"`
	PlayerChoices []PlayerChoiceInfo `json:"player_choices"`
}

// NewChoiceResponse builds the reply to req. The player name is the client's
// own; game id and match number are copied from the request.
func NewChoiceResponse(req *ChoiceRequest, playerName, shape string) *ChoiceResponse {
	return &ChoiceResponse{
		Shape:       shape,
		PlayerName:  playerName,
		GameID:      req.GameID,
		MatchNumber: req.MatchNumber,
	}
}
