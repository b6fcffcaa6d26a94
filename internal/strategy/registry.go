package strategy

import (
	"ctchen222/Shape-Game/internal/game"
	"errors"
	"fmt"
)

// Strategy names accepted by New.
const (
	NameMirror      = "mirror"
	NameCounter     = "counter"
	NameRandom      = "random"
	NameFirst       = "first"
	NameHuman       = "human"
	NameInteractive = "interactive"
)

var (
	// ErrInteractiveNotSupported is returned when a human-driven strategy is
	// requested. This build only plays automatically.
	ErrInteractiveNotSupported = errors.New("interactive play is not supported")
	// ErrUnknownStrategy is returned for a name New does not recognise.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Names lists the strategies New can build.
func Names() []string {
	return []string{NameMirror, NameCounter, NameRandom, NameFirst}
}

// New builds the named strategy. Rules are only used by the counter strategy.
func New(name string, rules game.Rules) (Strategy, error) {
	switch name {
	case NameMirror, "":
		return Mirror{}, nil
	case NameCounter:
		return NewCounter(rules), nil
	case NameRandom:
		return Random{}, nil
	case NameFirst:
		return First{}, nil
	case NameHuman, NameInteractive:
		return nil, ErrInteractiveNotSupported
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
