package repository

import (
	"context"
	"ctchen222/Shape-Game/internal/session"
	"log/slog"
)

// Recorder is a session observer that saves finished games.
// Storage failures are logged and never fail the session.
type Recorder struct {
	Repo GameResultRepository
}

func (r Recorder) OnLine(context.Context, session.State, []byte) {}

func (r Recorder) OnGameOver(ctx context.Context, result *session.Result) {
	if err := r.Repo.Save(ctx, RecordFromResult(result)); err != nil {
		slog.ErrorContext(ctx, "Failed to record game result", "session.id", result.SessionID, "error", err)
	}
}
