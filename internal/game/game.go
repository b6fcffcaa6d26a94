package game

import (
	"ctchen222/Shape-Game/internal/validator"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
)

// Shape is a move a player can pick in a match.
type Shape string

const (
	Rock     Shape = "rock"
	Paper    Shape = "paper"
	Scissors Shape = "scissors"
)

// Rules maps every shape to the shapes it defeats.
type Rules map[Shape][]Shape

// Config is the game configuration file shared with the coordinator.
type Config struct {
	NumPlayers int                 `json:"numplayers" validate:"gte=2"`
	Rules      map[string][]string `json:"rules" validate:"min=1"`
	Rounds     int                 `json:"rounds" validate:"gte=1"`
}

// Classic returns the rock-paper-scissors rules.
func Classic() Rules {
	return Rules{
		Rock:     {Scissors},
		Paper:    {Rock},
		Scissors: {Paper},
	}
}

// LoadConfig reads and validates a game configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if _, err := cfg.GameRules(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadRules returns the rules from the config at path, or Classic when path is empty.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return Classic(), nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg.GameRules()
}

// GameRules converts the config's rule table, rejecting references to shapes
// that are not declared as keys.
func (c *Config) GameRules() (Rules, error) {
	rules := make(Rules, len(c.Rules))
	for name, defeated := range c.Rules {
		shapes := make([]Shape, 0, len(defeated))
		for _, d := range defeated {
			if _, ok := c.Rules[d]; !ok {
				return nil, fmt.Errorf("invalid game config: %q defeats undeclared shape %q", name, d)
			}
			shapes = append(shapes, Shape(d))
		}
		rules[Shape(name)] = shapes
	}
	return rules, nil
}

// Shapes returns every declared shape in lexical order.
func (r Rules) Shapes() []Shape {
	return slices.Sorted(maps.Keys(r))
}

// Beats reports whether a defeats b.
func (r Rules) Beats(a, b Shape) bool {
	return slices.Contains(r[a], b)
}

// CountersOf returns the shapes that defeat s, in lexical order.
func (r Rules) CountersOf(s Shape) []Shape {
	var counters []Shape
	for _, shape := range r.Shapes() {
		if r.Beats(shape, s) {
			counters = append(counters, shape)
		}
	}
	return counters
}
