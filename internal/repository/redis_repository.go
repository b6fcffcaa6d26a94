package repository

import (
	"context"
	"ctchen222/Shape-Game/internal/events"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/codes"
)

const (
	resultsKey = "game_results"
	// maxRedisResults bounds the Redis history list.
	maxRedisResults = 100
)

type redisGameResultRepository struct {
	rdb *redis.Client
}

// NewRedisGameResultRepository creates a new Redis-based GameResultRepository.
// Every saved game is also announced on the events channel.
func NewRedisGameResultRepository(rdb *redis.Client) GameResultRepository {
	return &redisGameResultRepository{rdb: rdb}
}

// Save pushes the record onto the history list and publishes a game_finished event.
func (r *redisGameResultRepository) Save(ctx context.Context, rec *GameRecord) error {
	ctx, span := tracer.Start(ctx, "GameResultRepository.Redis.Save")
	defer span.End()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal game result: %w", err)
	}
	event, err := events.New(events.TypeGameFinished, events.GameFinishedPayload{
		SessionID:  rec.SessionID,
		GameID:     rec.GameID,
		PlayerName: rec.PlayerName,
		Winner:     rec.Winner,
		Won:        rec.Won,
		Rounds:     rec.Rounds,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal game_finished event: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, resultsKey, data)
	pipe.LTrim(ctx, resultsKey, 0, maxRedisResults-1)
	pipe.Publish(ctx, events.EventsChannel, event)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save game result in redis")
		return fmt.Errorf("failed to save game result in redis: %w", err)
	}
	return nil
}

// Recent returns the newest records from the history list.
func (r *redisGameResultRepository) Recent(ctx context.Context, limit int) ([]GameRecord, error) {
	ctx, span := tracer.Start(ctx, "GameResultRepository.Redis.Recent")
	defer span.End()

	if limit <= 0 {
		return []GameRecord{}, nil
	}
	items, err := r.rdb.LRange(ctx, resultsKey, 0, int64(limit-1)).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read game results from redis: %w", err)
	}

	records := make([]GameRecord, 0, len(items))
	for _, item := range items {
		var rec GameRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game result: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
