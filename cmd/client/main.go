package main

import (
	"context"
	"ctchen222/Shape-Game/internal/api/controller"
	"ctchen222/Shape-Game/internal/config"
	"ctchen222/Shape-Game/internal/db"
	"ctchen222/Shape-Game/internal/game"
	"ctchen222/Shape-Game/internal/logger"
	"ctchen222/Shape-Game/internal/repository"
	"ctchen222/Shape-Game/internal/server"
	"ctchen222/Shape-Game/internal/session"
	"ctchen222/Shape-Game/internal/strategy"
	"ctchen222/Shape-Game/internal/telemetry"
	"ctchen222/Shape-Game/internal/transport"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(run).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "client: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Init(level, os.Stderr)

	// Initialize telemetry
	var traceWriter io.Writer
	if cfg.TraceStdout {
		traceWriter = os.Stderr
	}
	shutdown, err := telemetry.InitOtel(ctx, telemetry.Options{Endpoint: cfg.OtelEndpoint, TraceWriter: traceWriter})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	rules, err := game.LoadRules(cfg.RulesPath)
	if err != nil {
		return err
	}
	strat, err := strategy.New(cfg.Strategy, rules)
	if err != nil {
		if errors.Is(err, strategy.ErrInteractiveNotSupported) {
			return fmt.Errorf("strategy %q needs a terminal player: %w", cfg.Strategy, err)
		}
		return err
	}

	history, closeHistory, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	observers := session.Observers{
		session.LogObserver{},
		session.PrintObserver{W: os.Stdout},
	}
	if history != nil {
		observers = append(observers, repository.Recorder{Repo: history})
	}

	opts := cfg.TransportOptions()
	dial := func(ctx context.Context) (transport.Connection, error) {
		return transport.Dial(ctx, opts)
	}
	sess, err := session.New(cfg.PlayerName, strat, dial, session.WithObserver(observers))
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "Starting session",
		"session.id", sess.ID,
		"player.name", cfg.PlayerName,
		"net.peer.address", opts.Address(),
		"strategy", cfg.Strategy,
	)

	if cfg.StatusAddr != "" {
		srvCtx, cancelSrv := context.WithCancel(ctx)
		done := make(chan struct{})
		srv := server.NewServer(cfg.StatusAddr, controller.NewStatusController(sess, history))
		go func() {
			defer close(done)
			if err := srv.Run(srvCtx); err != nil {
				slog.ErrorContext(ctx, "Status server failed", "error", err)
			}
		}()
		defer func() {
			cancelSrv()
			<-done
		}()
	}

	_, err = sess.Run(ctx)
	return err
}

// openHistory opens the configured result stores. The returned repository
// is nil when none is configured.
func openHistory(ctx context.Context, cfg config.Config) (repository.GameResultRepository, func(), error) {
	var (
		repos   repository.Multi
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.HistoryDSN != "" {
		sqlDB, err := db.Open(ctx, cfg.HistoryDSN)
		if err != nil {
			return nil, closeAll, fmt.Errorf("failed to open game history: %w", err)
		}
		closers = append(closers, func() { sqlDB.Close() })
		repos = append(repos, repository.NewSQLiteGameResultRepository(sqlDB))
	}
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to initialize redis: %w", err)
		}
		closers = append(closers, func() { rdb.Close() })
		repos = append(repos, repository.NewRedisGameResultRepository(rdb))
	}

	if len(repos) == 0 {
		return nil, closeAll, nil
	}
	return repos, closeAll, nil
}
