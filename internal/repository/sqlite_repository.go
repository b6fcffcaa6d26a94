package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type gameResultRow struct {
	GameRecord
	StartedAt  int64 `db:"started_at"`
	FinishedAt int64 `db:"finished_at"`
}

type sqliteGameResultRepository struct {
	db *sqlx.DB
}

// NewSQLiteGameResultRepository creates a new SQLite-based GameResultRepository.
func NewSQLiteGameResultRepository(db *sqlx.DB) GameResultRepository {
	return &sqliteGameResultRepository{db: db}
}

// Save inserts a finished game. Saving the same session twice is an error.
func (r *sqliteGameResultRepository) Save(ctx context.Context, rec *GameRecord) error {
	ctx, span := tracer.Start(ctx, "GameResultRepository.SQLite.Save")
	defer span.End()

	row := gameResultRow{
		GameRecord: *rec,
		StartedAt:  rec.StartedAt.UnixMilli(),
		FinishedAt: rec.FinishedAt.UnixMilli(),
	}
	query := `INSERT INTO game_results
		(session_id, game_id, player_name, winner, won, rounds, total_rounds, moves, started_at, finished_at)
		VALUES (:session_id, :game_id, :player_name, :winner, :won, :rounds, :total_rounds, :moves, :started_at, :finished_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save game result: %w", err)
	}
	return nil
}

// Recent returns the latest finished games.
func (r *sqliteGameResultRepository) Recent(ctx context.Context, limit int) ([]GameRecord, error) {
	ctx, span := tracer.Start(ctx, "GameResultRepository.SQLite.Recent")
	defer span.End()

	var rows []gameResultRow
	query := `SELECT session_id, game_id, player_name, winner, won, rounds, total_rounds, moves, started_at, finished_at
		FROM game_results ORDER BY finished_at DESC, id DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list game results: %w", err)
	}

	records := make([]GameRecord, 0, len(rows))
	for _, row := range rows {
		rec := row.GameRecord
		rec.StartedAt = time.UnixMilli(row.StartedAt)
		rec.FinishedAt = time.UnixMilli(row.FinishedAt)
		records = append(records, rec)
	}
	return records, nil
}
