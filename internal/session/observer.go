package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Observer receives the session trace: every inbound line and the end of the game.
type Observer interface {
	OnLine(ctx context.Context, state State, line []byte)
	OnGameOver(ctx context.Context, result *Result)
}

// Observers fans out to several observers in order.
type Observers []Observer

func (o Observers) OnLine(ctx context.Context, state State, line []byte) {
	for _, obs := range o {
		obs.OnLine(ctx, state, line)
	}
}

func (o Observers) OnGameOver(ctx context.Context, result *Result) {
	for _, obs := range o {
		obs.OnGameOver(ctx, result)
	}
}

// LogObserver writes the trace to a slog logger.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o LogObserver) OnLine(ctx context.Context, state State, line []byte) {
	o.logger().InfoContext(ctx, "Received line", "session.state", state.String(), "line", string(line))
}

func (o LogObserver) OnGameOver(ctx context.Context, result *Result) {
	o.logger().InfoContext(ctx, "Game over",
		"session.id", result.SessionID,
		"game.winner", result.Winner,
		"game.won", result.Won(),
		"game.rounds", result.CurrentRound,
	)
}

// PrintObserver echoes inbound lines and the winner to w, one per line.
type PrintObserver struct {
	W io.Writer
}

func (o PrintObserver) OnLine(_ context.Context, _ State, line []byte) {
	fmt.Fprintf(o.W, "%s\n", line)
}

func (o PrintObserver) OnGameOver(_ context.Context, result *Result) {
	fmt.Fprintf(o.W, "[END] %s wins\n", result.Winner)
}
