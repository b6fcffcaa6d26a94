package session

import (
	"bytes"
	"context"
	"ctchen222/Shape-Game/internal/mocks"
	"ctchen222/Shape-Game/internal/strategy"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrintObserver_Transcript(t *testing.T) {
	tests := []struct {
		name  string
		ack   string
		lines []string
		want  string
	}{
		{
			name:  "Single round",
			ack:   `"joined"`,
			lines: []string{choiceLine, endLine},
			want:  "\"joined\"\n" + choiceLine + "\n" + endLine + "\n[END] Bob wins\n",
		},
		{
			name:  "Immediate end of game",
			ack:   "welcome",
			lines: []string{endLine},
			want:  "welcome\n" + endLine + "\n[END] Bob wins\n",
		},
		{
			name:  "Two rounds",
			ack:   "ok",
			lines: []string{choiceLine, choiceLine, endLine},
			want:  "ok\n" + choiceLine + "\n" + choiceLine + "\n" + endLine + "\n[END] Bob wins\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			conn := mocks.NewMockConnection(ctrl)

			calls := []any{
				conn.EXPECT().WriteMessage([]byte(`{"player_name":"Alice"}`)).Return(nil),
				conn.EXPECT().ReadMessage().Return([]byte(tt.ack), nil),
			}
			for _, line := range tt.lines {
				calls = append(calls, conn.EXPECT().ReadMessage().Return([]byte(line), nil))
				if line == choiceLine {
					calls = append(calls, conn.EXPECT().WriteMessage(gomock.Any()).Return(nil))
				}
			}
			gomock.InOrder(calls...)
			conn.EXPECT().Close().Return(nil).AnyTimes()

			var buf bytes.Buffer
			s, err := New("Alice", strategy.Mirror{}, mockDialer(conn), WithObserver(PrintObserver{W: &buf}))
			require.NoError(t, err)

			_, err = s.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type taggingObserver struct {
	tag string
	log *[]string
}

func (o taggingObserver) OnLine(_ context.Context, _ State, line []byte) {
	*o.log = append(*o.log, o.tag+":line:"+string(line))
}

func (o taggingObserver) OnGameOver(_ context.Context, result *Result) {
	*o.log = append(*o.log, o.tag+":end:"+result.Winner)
}

func TestObservers_FanOutInOrder(t *testing.T) {
	var log []string
	obs := Observers{
		taggingObserver{tag: "a", log: &log},
		taggingObserver{tag: "b", log: &log},
	}

	ctx := context.Background()
	obs.OnLine(ctx, StatePlaying, []byte("x"))
	obs.OnGameOver(ctx, &Result{Winner: "Bob"})

	assert.Equal(t, []string{"a:line:x", "b:line:x", "a:end:Bob", "b:end:Bob"}, log)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := LogObserver{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	ctx := context.Background()

	obs.OnLine(ctx, StateAwaitingJoinAck, []byte("welcome"))
	obs.OnGameOver(ctx, &Result{SessionID: "s1", PlayerName: "Alice", Winner: "Alice", CurrentRound: 3})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], `msg="Received line"`)
	assert.Contains(t, lines[0], "session.state=awaiting_join_ack")
	assert.Contains(t, lines[0], "line=welcome")

	assert.Contains(t, lines[1], `msg="Game over"`)
	assert.Contains(t, lines[1], "session.id=s1")
	assert.Contains(t, lines[1], "game.winner=Alice")
	assert.Contains(t, lines[1], "game.won=true")
	assert.Contains(t, lines[1], "game.rounds=3")
}
