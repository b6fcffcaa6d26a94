package session

import (
	"context"
	"ctchen222/Shape-Game/internal/strategy"
	"ctchen222/Shape-Game/internal/transport"
	"ctchen222/Shape-Game/pkg/proto"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// play runs the protocol on an open connection: join, read the
// acknowledgement, then answer choice requests until the end of the game.
func (s *Session) play(ctx context.Context, conn transport.Connection) (*Result, error) {
	join, err := json.Marshal(proto.JoinRequest{PlayerName: s.playerName})
	if err != nil {
		return nil, fmt.Errorf("failed to encode join request: %w", err)
	}
	if err := conn.WriteMessage(join); err != nil {
		return nil, fmt.Errorf("failed to send join request: %w", err)
	}
	s.setState(ctx, StateJoinSent)

	s.setState(ctx, StateAwaitingJoinAck)
	ack, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read join acknowledgement: %w", err)
	}
	s.observe(ctx, ack)
	if resp, ok := proto.ParseJoinResponse(ack); ok {
		s.mu.Lock()
		s.gameID = resp.GameID
		s.mu.Unlock()
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("game.id", resp.GameID))
		slog.InfoContext(ctx, "Joined game", "game.id", resp.GameID, "game.players", resp.Players)
	}
	s.setState(ctx, StatePlaying)

	for {
		line, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("failed to read message: %w", err)
		}
		s.observe(ctx, line)

		msg, err := proto.Decode(line)
		if err != nil {
			return nil, err
		}

		switch m := msg.(type) {
		case *proto.ChoiceRequest:
			if err := s.handleChoice(ctx, conn, m); err != nil {
				return nil, err
			}
		case *proto.EndOfGameMessage:
			return s.finish(m), nil
		}
	}
}

// handleChoice asks the strategy for a shape and sends the response.
func (s *Session) handleChoice(ctx context.Context, conn transport.Connection, req *proto.ChoiceRequest) error {
	ctx, span := tracer.Start(ctx, "session.handleChoice", trace.WithAttributes(
		attribute.String("game.id", req.GameID),
		attribute.Int("game.round", req.CurrentRound),
		attribute.Int("game.match", req.MatchNumber),
	))
	defer span.End()

	s.mu.Lock()
	s.gameID = req.GameID
	s.round = req.CurrentRound
	s.total = req.TotalRounds
	s.match = req.MatchNumber
	s.mu.Unlock()

	shape, err := s.strategy.Decide(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Strategy failed")
		return fmt.Errorf("failed to decide shape for match %d: %w", req.MatchNumber, err)
	}
	if !slices.Contains(req.Options, shape) {
		err := fmt.Errorf("%w: %q not in %v", strategy.ErrInvalidChoice, shape, req.Options)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Strategy returned an invalid shape")
		return err
	}
	span.SetAttributes(attribute.String("game.shape", shape))

	data, err := json.Marshal(proto.NewChoiceResponse(req, s.playerName, shape))
	if err != nil {
		return fmt.Errorf("failed to encode choice response: %w", err)
	}
	if err := conn.WriteMessage(data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send choice response")
		return fmt.Errorf("failed to send choice response: %w", err)
	}

	s.mu.Lock()
	s.moves = append(s.moves, shape)
	s.mu.Unlock()
	s.rounds.Add(ctx, 1, metric.WithAttributes(attribute.String("player.name", s.playerName)))
	slog.DebugContext(ctx, "Sent choice", "game.id", req.GameID, "game.match", req.MatchNumber, "game.shape", shape)
	return nil
}

// finish records the end of the game and builds the result.
func (s *Session) finish(msg *proto.EndOfGameMessage) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateTerminated
	s.winner = msg.Winner
	s.round = msg.CurrentRound
	s.total = msg.TotalRounds

	return &Result{
		SessionID:     s.ID,
		PlayerName:    s.playerName,
		GameID:        s.gameID,
		Winner:        msg.Winner,
		CurrentRound:  msg.CurrentRound,
		TotalRounds:   msg.TotalRounds,
		PastWinners:   msg.PastWinners,
		PlayerChoices: msg.PlayerChoices,
		Moves:         slices.Clone(s.moves),
		FinishedAt:    s.now(),
	}
}

func (s *Session) observe(ctx context.Context, line []byte) {
	s.mu.Lock()
	s.lastLine = string(line)
	state := s.state
	s.mu.Unlock()
	s.observer.OnLine(ctx, state, line)
}
