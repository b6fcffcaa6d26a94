package strategy

import (
	"ctchen222/Shape-Game/internal/game"
	"ctchen222/Shape-Game/pkg/proto"
	"errors"
	"slices"
	"testing"
)

var classicOptions = []string{"rock", "paper", "scissors"}

func choices(pairs ...string) []proto.PlayerChoiceInfo {
	var out []proto.PlayerChoiceInfo
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, proto.PlayerChoiceInfo{PlayerName: pairs[i], Shape: pairs[i+1]})
	}
	return out
}

func request(player string, history []proto.PlayerChoiceInfo, options ...string) *proto.ChoiceRequest {
	return &proto.ChoiceRequest{
		CurrentRound:  1,
		TotalRounds:   3,
		PlayerChoices: history,
		Options:       options,
		PlayerName:    player,
		GameID:        "g1",
		MatchNumber:   1,
	}
}

func TestMirror_Decide(t *testing.T) {
	tests := []struct {
		name string
		req  *proto.ChoiceRequest
		want string
	}{
		{
			name: "No history - first option",
			req:  request("A", nil, classicOptions...),
			want: "rock",
		},
		{
			name: "Only own choices - first option",
			req:  request("A", choices("A", "paper", "A", "scissors"), classicOptions...),
			want: "rock",
		},
		{
			name: "Most recent opponent entry wins",
			req:  request("A", choices("A", "rock", "B", "paper", "A", "scissors"), classicOptions...),
			want: "paper",
		},
		{
			name: "Scan order matters - last of several opponents",
			req:  request("A", choices("B", "paper", "C", "scissors", "A", "rock"), classicOptions...),
			want: "scissors",
		},
		{
			name: "Same opponent twice - later entry",
			req:  request("A", choices("B", "paper", "B", "rock"), classicOptions...),
			want: "rock",
		},
		{
			name: "Opponent shape outside options - first option",
			req:  request("A", choices("B", "lizard"), classicOptions...),
			want: "rock",
		},
		{
			name: "Different first option",
			req:  request("A", nil, "scissors", "rock"),
			want: "scissors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mirror{}.Decide(tt.req)
			if err != nil {
				t.Fatalf("Decide() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Decide() got = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCounter_Decide(t *testing.T) {
	counter := NewCounter(nil)
	tests := []struct {
		name string
		req  *proto.ChoiceRequest
		want string
	}{
		{
			name: "No history - first option",
			req:  request("A", nil, classicOptions...),
			want: "rock",
		},
		{
			name: "Beats opponent rock with paper",
			req:  request("A", choices("B", "rock"), classicOptions...),
			want: "paper",
		},
		{
			name: "Beats most recent opponent shape",
			req:  request("A", choices("B", "rock", "A", "paper", "B", "paper"), classicOptions...),
			want: "scissors",
		},
		{
			name: "No winning option offered - mirrors",
			req:  request("A", choices("B", "rock"), "rock", "scissors"),
			want: "rock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := counter.Decide(tt.req)
			if err != nil {
				t.Fatalf("Decide() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Decide() got = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCounter_CustomRules(t *testing.T) {
	rules := game.Rules{
		"rock":   {"lizard"},
		"lizard": {"spock"},
		"spock":  {"rock"},
	}
	counter := NewCounter(rules)

	got, err := counter.Decide(request("A", choices("B", "lizard"), "spock", "lizard", "rock"))
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if got != "rock" {
		t.Errorf("Decide() got = %q, want %q", got, "rock")
	}
}

func TestCounter_PrefersOptionOrder(t *testing.T) {
	// Both spock and paper defeat rock; the coordinator's option order decides.
	rules := game.Rules{
		"rock":     {"scissors"},
		"paper":    {"rock"},
		"spock":    {"rock", "scissors"},
		"scissors": {"paper"},
	}
	counter := NewCounter(rules)

	got, err := counter.Decide(request("A", choices("B", "rock"), "spock", "paper", "scissors"))
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if got != "spock" {
		t.Errorf("Decide() got = %q, want %q", got, "spock")
	}

	got, err = counter.Decide(request("A", choices("B", "rock"), "scissors", "paper", "spock"))
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if got != "paper" {
		t.Errorf("Decide() got = %q, want %q", got, "paper")
	}
}

func TestRandom_Decide(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		got, err := Random{}.Decide(request("A", nil, classicOptions...))
		if err != nil {
			t.Fatalf("Decide() error = %v", err)
		}
		if !slices.Contains(classicOptions, got) {
			t.Fatalf("Decide() returned %q, not an option", got)
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Errorf("Random strategy returned a single shape over 200 runs: %v", seen)
	}
}

func TestStrategies_ChoiceIsAlwaysAnOption(t *testing.T) {
	strategies := map[string]Strategy{
		NameMirror:  Mirror{},
		NameCounter: NewCounter(nil),
		NameRandom:  Random{},
		NameFirst:   First{},
	}
	requests := []*proto.ChoiceRequest{
		request("A", nil, "paper"),
		request("A", choices("B", "rock"), classicOptions...),
		request("A", choices("B", "rock", "C", "spock"), "scissors", "paper"),
		request("A", choices("A", "rock", "B", ""), classicOptions...),
	}

	for name, s := range strategies {
		t.Run(name, func(t *testing.T) {
			for _, req := range requests {
				got, err := s.Decide(req)
				if err != nil {
					t.Fatalf("Decide() error = %v", err)
				}
				if !slices.Contains(req.Options, got) {
					t.Errorf("Decide() returned %q, not in %v", got, req.Options)
				}
			}
		})
	}
}

func TestStrategies_NoOptions(t *testing.T) {
	strategies := []Strategy{Mirror{}, NewCounter(nil), Random{}, First{}}
	for _, s := range strategies {
		if _, err := s.Decide(request("A", choices("B", "rock"))); !errors.Is(err, ErrNoOptions) {
			t.Errorf("%T.Decide() error = %v, want ErrNoOptions", s, err)
		}
	}
}

func TestFunc_Decide(t *testing.T) {
	f := Func(func(req *proto.ChoiceRequest) (string, error) {
		return req.Options[len(req.Options)-1], nil
	})
	got, err := f.Decide(request("A", nil, classicOptions...))
	if err != nil || got != "scissors" {
		t.Errorf("Func.Decide() got = (%q, %v), want (\"scissors\", nil)", got, err)
	}
}
