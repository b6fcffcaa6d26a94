package db

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

const driverName = "sqlite"

const gameResultsSchema = `
	CREATE TABLE IF NOT EXISTS game_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL UNIQUE,
		game_id TEXT NOT NULL DEFAULT '',
		player_name TEXT NOT NULL,
		winner TEXT NOT NULL,
		won INTEGER NOT NULL,
		rounds INTEGER NOT NULL,
		total_rounds INTEGER NOT NULL,
		moves TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	);`

// Open opens the SQLite database at path and makes sure the schema exists.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	pool, err := sqlx.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps ":memory:" databases shared.
	pool.SetMaxOpenConns(1)

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	slog.InfoContext(ctx, "History database ready", "db.path", path)
	return pool, nil
}

// Migrate creates the tables the client writes to.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, gameResultsSchema); err != nil {
		return fmt.Errorf("failed to create game_results table: %w", err)
	}
	return nil
}
