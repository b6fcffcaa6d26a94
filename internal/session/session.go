package session

import (
	"context"
	"ctchen222/Shape-Game/internal/strategy"
	"ctchen222/Shape-Game/internal/transport"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("session")
	meter  = otel.Meter("session")
)

// ErrTerminated is returned when Run is called on a session that already ran.
var ErrTerminated = errors.New("session already terminated")

// Dialer opens the connection to the coordinator.
type Dialer func(ctx context.Context) (transport.Connection, error)

// Session drives one game from join to end of game over a single connection.
type Session struct {
	ID         string
	playerName string
	strategy   strategy.Strategy
	dial       Dialer
	observer   Observer
	now        func() time.Time
	rounds     metric.Int64Counter

	mu       sync.RWMutex
	started  bool
	state    State
	gameID   string
	round    int
	total    int
	match    int
	lastLine string
	moves    []string
	winner   string
}

// Option configures a Session.
type Option func(*Session)

// WithObserver replaces the default slog observer.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// WithID sets the session id instead of a generated one.
func WithID(id string) Option {
	return func(s *Session) {
		s.ID = id
	}
}

// New creates a session for playerName that decides with strat and
// connects with dial when run.
func New(playerName string, strat strategy.Strategy, dial Dialer, opts ...Option) (*Session, error) {
	if playerName == "" {
		return nil, errors.New("player name is required")
	}
	if strat == nil {
		return nil, errors.New("strategy is required")
	}
	if dial == nil {
		return nil, errors.New("dialer is required")
	}

	s := &Session{
		ID:         uuid.New().String(),
		playerName: playerName,
		strategy:   strat,
		dial:       dial,
		observer:   LogObserver{},
		now:        time.Now,
		state:      StateConnecting,
	}
	for _, opt := range opts {
		opt(s)
	}

	rounds, err := meter.Int64Counter("session.rounds",
		metric.WithDescription("Choice requests answered by the client"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rounds counter: %w", err)
	}
	s.rounds = rounds
	return s, nil
}

// PlayerName returns the name the client joined with.
func (s *Session) PlayerName() string {
	return s.playerName
}

// State returns the current protocol state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns a copy of the session progress, safe to call while Run is in flight.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		SessionID:   s.ID,
		PlayerName:  s.playerName,
		State:       s.state.String(),
		GameID:      s.gameID,
		Round:       s.round,
		TotalRounds: s.total,
		MatchNumber: s.match,
		Moves:       len(s.moves),
		LastLine:    s.lastLine,
		Winner:      s.winner,
	}
}

// Run connects, joins and plays until the coordinator ends the game.
// Any I/O, decode or strategy error ends the session and is returned.
// Cancelling ctx closes the connection and stops the session.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	ctx, span := tracer.Start(ctx, "session.Run", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("player.name", s.playerName),
	))
	defer span.End()

	if !s.begin() {
		return nil, ErrTerminated
	}
	startedAt := s.now()

	conn, err := s.dial(ctx)
	if err != nil {
		s.setState(ctx, StateTerminated)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to connect")
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	result, err := s.play(ctx, conn)
	s.setState(ctx, StateTerminated)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("session stopped: %w", context.Cause(ctx))
		}
		slog.ErrorContext(ctx, "Session failed", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session failed")
		return nil, err
	}

	result.StartedAt = startedAt
	s.observer.OnGameOver(ctx, result)
	span.SetAttributes(attribute.String("game.winner", result.Winner))
	return result, nil
}

func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return false
	}
	s.started = true
	return true
}

// setState records a transition and marks it on the current span, so short
// lived states such as join_sent stay visible in the trace.
func (s *Session) setState(ctx context.Context, state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	trace.SpanFromContext(ctx).AddEvent("session.state", trace.WithAttributes(
		attribute.String("session.state", state.String()),
	))
	slog.DebugContext(ctx, "Session state changed", "session.id", s.ID, "session.state", state.String())
}
