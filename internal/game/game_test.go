package game

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gameconfig.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestBeats(t *testing.T) {
	rules := Classic()
	tests := []struct {
		name string
		a, b Shape
		want bool
	}{
		{name: "Rock beats scissors", a: Rock, b: Scissors, want: true},
		{name: "Paper beats rock", a: Paper, b: Rock, want: true},
		{name: "Scissors beats paper", a: Scissors, b: Paper, want: true},
		{name: "Rock does not beat paper", a: Rock, b: Paper, want: false},
		{name: "No shape beats itself", a: Rock, b: Rock, want: false},
		{name: "Unknown shape beats nothing", a: Shape("lizard"), b: Paper, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.Beats(tt.a, tt.b); got != tt.want {
				t.Errorf("Beats(%s, %s) got = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCountersOf(t *testing.T) {
	rules := Rules{
		"rock":     {"scissors", "lizard"},
		"paper":    {"rock", "spock"},
		"scissors": {"paper", "lizard"},
		"lizard":   {"spock", "paper"},
		"spock":    {"scissors", "rock"},
	}

	got := rules.CountersOf("rock")
	want := []Shape{"paper", "spock"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("CountersOf(rock) got = %v, want %v", got, want)
	}

	if got := rules.CountersOf("unknown"); len(got) != 0 {
		t.Errorf("CountersOf(unknown) got = %v, want none", got)
	}
}

func TestShapes(t *testing.T) {
	got := Classic().Shapes()
	want := []Shape{Paper, Rock, Scissors}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Shapes() got = %v, want %v", got, want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{"numplayers":2,"rounds":3,"rules":{"rock":["scissors"],"paper":["rock"],"scissors":["paper"]}}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.NumPlayers != 2 || cfg.Rounds != 3 {
		t.Errorf("LoadConfig() got players=%d rounds=%d, want 2 and 3", cfg.NumPlayers, cfg.Rounds)
	}

	rules, err := cfg.GameRules()
	if err != nil {
		t.Fatalf("GameRules() error = %v", err)
	}
	if !rules.Beats(Paper, Rock) {
		t.Error("expected paper to beat rock")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "Malformed JSON", content: `{"numplayers":`},
		{name: "Too few players", content: `{"numplayers":1,"rounds":3,"rules":{"rock":[]}}`},
		{name: "No rounds", content: `{"numplayers":2,"rounds":0,"rules":{"rock":[]}}`},
		{name: "Empty rules", content: `{"numplayers":2,"rounds":3,"rules":{}}`},
		{name: "Undeclared shape", content: `{"numplayers":2,"rounds":3,"rules":{"rock":["lizard"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadConfig() expected an error, got nil")
			}
		})
	}
}

func TestLoadRules_DefaultsToClassic(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if len(rules) != 3 || !rules.Beats(Rock, Scissors) {
		t.Errorf("LoadRules(\"\") got = %v, want classic rules", rules)
	}
}
