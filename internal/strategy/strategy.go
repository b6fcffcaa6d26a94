package strategy

import (
	"ctchen222/Shape-Game/internal/game"
	"ctchen222/Shape-Game/pkg/proto"
	"errors"
	"math/rand/v2"
	"slices"
)

var (
	// ErrNoOptions means the coordinator offered nothing to choose from.
	ErrNoOptions = errors.New("choice request has no options")
	// ErrInvalidChoice means a strategy returned a shape outside the offered options.
	ErrInvalidChoice = errors.New("chosen shape is not among the options")
)

//go:generate mockgen -source=strategy.go -destination=../mocks/mock_strategy.go -package=mocks

// Strategy picks a shape for a choice request. The returned shape must be
// one of req.Options.
type Strategy interface {
	Decide(req *proto.ChoiceRequest) (string, error)
}

// Func adapts an ordinary function to the Strategy interface.
type Func func(req *proto.ChoiceRequest) (string, error)

// Decide calls f(req).
func (f Func) Decide(req *proto.ChoiceRequest) (string, error) {
	return f(req)
}

// Mirror replays the most recent shape picked by any other player.
type Mirror struct{}

// Decide returns the last opponent shape in scan order, or the first option
// when there is no opponent history.
func (Mirror) Decide(req *proto.ChoiceRequest) (string, error) {
	if len(req.Options) == 0 {
		return "", ErrNoOptions
	}
	if shape, ok := lastOpponentShape(req); ok && slices.Contains(req.Options, shape) {
		return shape, nil
	}
	return req.Options[0], nil
}

// Counter plays a shape that defeats the opponent's last pick.
type Counter struct {
	Rules game.Rules
}

// NewCounter returns a Counter using rules, or the classic rules when nil.
func NewCounter(rules game.Rules) *Counter {
	if rules == nil {
		rules = game.Classic()
	}
	return &Counter{Rules: rules}
}

// Decide returns the first option that beats the opponent's last shape.
// Without a winning option it mirrors; without history it plays the first option.
func (c *Counter) Decide(req *proto.ChoiceRequest) (string, error) {
	if len(req.Options) == 0 {
		return "", ErrNoOptions
	}
	shape, ok := lastOpponentShape(req)
	if !ok {
		return req.Options[0], nil
	}
	counters := c.Rules.CountersOf(game.Shape(shape))
	for _, option := range req.Options {
		if slices.Contains(counters, game.Shape(option)) {
			return option, nil
		}
	}
	return Mirror{}.Decide(req)
}

// Random picks uniformly among the options.
type Random struct{}

func (Random) Decide(req *proto.ChoiceRequest) (string, error) {
	if len(req.Options) == 0 {
		return "", ErrNoOptions
	}
	return req.Options[rand.IntN(len(req.Options))], nil
}

// First always plays the first option.
type First struct{}

func (First) Decide(req *proto.ChoiceRequest) (string, error) {
	if len(req.Options) == 0 {
		return "", ErrNoOptions
	}
	return req.Options[0], nil
}

// lastOpponentShape scans the history in the order given and keeps the last
// entry whose player is not the requesting player.
func lastOpponentShape(req *proto.ChoiceRequest) (shape string, found bool) {
	for _, choice := range req.PlayerChoices {
		if choice.PlayerName != req.PlayerName {
			shape, found = choice.Shape, true
		}
	}
	return shape, found
}
