package repository

import (
	"context"
	"ctchen222/Shape-Game/internal/session"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository")

// GameRecord is one finished game as stored in the history.
type GameRecord struct {
	SessionID   string    `db:"session_id" json:"session_id"`
	GameID      string    `db:"game_id" json:"game_id"`
	PlayerName  string    `db:"player_name" json:"player_name"`
	Winner      string    `db:"winner" json:"winner"`
	Won         bool      `db:"won" json:"won"`
	Rounds      int       `db:"rounds" json:"rounds"`
	TotalRounds int       `db:"total_rounds" json:"total_rounds"`
	Moves       Moves     `db:"moves" json:"moves"`
	StartedAt   time.Time `db:"-" json:"started_at"`
	FinishedAt  time.Time `db:"-" json:"finished_at"`
}

// RecordFromResult converts a session result into a history record.
func RecordFromResult(r *session.Result) *GameRecord {
	return &GameRecord{
		SessionID:   r.SessionID,
		GameID:      r.GameID,
		PlayerName:  r.PlayerName,
		Winner:      r.Winner,
		Won:         r.Won(),
		Rounds:      r.CurrentRound,
		TotalRounds: r.TotalRounds,
		Moves:       Moves(r.Moves),
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
	}
}

// Moves is the list of shapes the client played, stored as a JSON array.
type Moves []string

// Value implements driver.Valuer.
func (m Moves) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(m))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (m *Moves) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case nil:
		*m = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Moves", src)
	}
	return json.Unmarshal(data, (*[]string)(m))
}

// GameResultRepository stores finished games.
type GameResultRepository interface {
	Save(ctx context.Context, rec *GameRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]GameRecord, error)
}

// Multi writes to every repository and reads from the first one.
type Multi []GameResultRepository

func (m Multi) Save(ctx context.Context, rec *GameRecord) error {
	var errs []error
	for _, repo := range m {
		if err := repo.Save(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Recent(ctx context.Context, limit int) ([]GameRecord, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return m[0].Recent(ctx, limit)
}
