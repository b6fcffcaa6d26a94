package proto

import (
	"bytes"
	"ctchen222/Shape-Game/internal/validator"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrUnknownMessage is returned for a well-formed JSON object that is
	// neither a choice request nor an end-of-game message.
	ErrUnknownMessage = errors.New("unknown message")
	// ErrInvalidMessage is returned when a line is not a JSON object, or is
	// identified as a known message but fails to decode or validate.
	ErrInvalidMessage = errors.New("invalid message")
)

// Field names used to tell inbound messages apart.
const (
	FieldWinner  = "winner"
	FieldOptions = "options"
)

var jsonNull = []byte("null")

var choiceRequestFields = []string{
	"current_round", "total_rounds", "past_winners", "player_choices",
	FieldOptions, "player_name", "game_id", "match_number",
}

var endOfGameFields = []string{
	FieldWinner, "current_round", "total_rounds", "past_winners", "player_choices",
}

// Inbound is a message sent by the coordinator during play.
// It is implemented by *ChoiceRequest and *EndOfGameMessage only.
type Inbound interface {
	inbound()
}

func (*ChoiceRequest) inbound()    {}
func (*EndOfGameMessage) inbound() {}

// Decode classifies one inbound line by its fields and decodes it.
//
// A line carrying "winner" and no "options" is an end-of-game message, a line
// carrying "options" and no "winner" is a choice request. Every required field
// of the identified message must be present, non-null and well typed; empty
// strings are accepted.
func Decode(line []byte) (Inbound, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: null document", ErrInvalidMessage)
	}

	_, hasWinner := fields[FieldWinner]
	_, hasOptions := fields[FieldOptions]

	switch {
	case hasWinner && !hasOptions:
		var msg EndOfGameMessage
		if err := decodeKnown(line, fields, endOfGameFields, &msg); err != nil {
			return nil, err
		}
		return &msg, nil
	case hasOptions && !hasWinner:
		var msg ChoiceRequest
		if err := decodeKnown(line, fields, choiceRequestFields, &msg); err != nil {
			return nil, err
		}
		return &msg, nil
	default:
		return nil, fmt.Errorf("%w: fields %v", ErrUnknownMessage, slices.Sorted(maps.Keys(fields)))
	}
}

func decodeKnown(line []byte, fields map[string]json.RawMessage, required []string, v any) error {
	for _, name := range required {
		raw, ok := fields[name]
		if !ok {
			return fmt.Errorf("%w: missing field %q", ErrInvalidMessage, name)
		}
		if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
			return fmt.Errorf("%w: field %q is null", ErrInvalidMessage, name)
		}
	}
	if err := json.Unmarshal(line, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if err := validator.GetValidator().Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return nil
}

// ParseJoinResponse reports whether a join acknowledgement line happens to be
// a JoinResponse object. Any other content is fine and simply yields false.
func ParseJoinResponse(line []byte) (*JoinResponse, bool) {
	var resp JoinResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, false
	}
	if resp.GameID == "" && len(resp.Players) == 0 {
		return nil, false
	}
	return &resp, true
}
