package main

import (
	"context"
	"ctchen222/Shape-Game/internal/config"
	"ctchen222/Shape-Game/internal/strategy"
	"ctchen222/Shape-Game/internal/transport"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
)

const (
	flagName         = "name"
	flagHost         = "host"
	flagPort         = "port"
	flagTransport    = "transport"
	flagWSPath       = "ws-path"
	flagStrategy     = "strategy"
	flagRules        = "rules"
	flagDialTimeout  = "dial-timeout"
	flagReadTimeout  = "read-timeout"
	flagHistory      = "history"
	flagRedis        = "redis"
	flagOtelEndpoint = "otel-endpoint"
	flagTraceStdout  = "trace-stdout"
	flagStatusAddr   = "status-addr"
	flagLogLevel     = "log-level"
)

// newCommand builds the CLI; action receives the validated configuration.
func newCommand(action func(ctx context.Context, cfg config.Config) error) *cli.Command {
	def := config.Default()
	return &cli.Command{
		Name:      "client",
		Usage:     "play one game against a shape game coordinator",
		ArgsUsage: "[name [host [port]]]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagName, Value: def.PlayerName, Usage: "player name to join with", Sources: cli.EnvVars("SHAPE_NAME")},
			&cli.StringFlag{Name: flagHost, Value: def.Host, Usage: "coordinator host", Sources: cli.EnvVars("SHAPE_HOST")},
			&cli.IntFlag{Name: flagPort, Value: def.Port, Usage: "coordinator port", Sources: cli.EnvVars("SHAPE_PORT")},
			&cli.StringFlag{Name: flagTransport, Value: def.Transport, Usage: "tcp or ws", Sources: cli.EnvVars("SHAPE_TRANSPORT")},
			&cli.StringFlag{Name: flagWSPath, Value: def.WSPath, Usage: "websocket path when --transport=ws", Sources: cli.EnvVars("SHAPE_WS_PATH")},
			&cli.StringFlag{Name: flagStrategy, Value: def.Strategy, Usage: "one of " + strings.Join(strategy.Names(), ", "), Sources: cli.EnvVars("SHAPE_STRATEGY")},
			&cli.StringFlag{Name: flagRules, Usage: "game config JSON with the shape rules", Sources: cli.EnvVars("SHAPE_RULES")},
			&cli.DurationFlag{Name: flagDialTimeout, Value: def.DialTimeout, Usage: "connect timeout, 0 disables", Sources: cli.EnvVars("SHAPE_DIAL_TIMEOUT")},
			&cli.DurationFlag{Name: flagReadTimeout, Value: def.ReadTimeout, Usage: "per-line read timeout, 0 waits forever", Sources: cli.EnvVars("SHAPE_READ_TIMEOUT")},
			&cli.StringFlag{Name: flagHistory, Usage: "SQLite file to record finished games in", Sources: cli.EnvVars("SHAPE_HISTORY")},
			&cli.StringFlag{Name: flagRedis, Usage: "Redis address for game history and events", Sources: cli.EnvVars("SHAPE_REDIS", "REDIS_CONNSTRING")},
			&cli.StringFlag{Name: flagOtelEndpoint, Usage: "OTLP gRPC collector address", Sources: cli.EnvVars("SHAPE_OTEL_ENDPOINT")},
			&cli.BoolFlag{Name: flagTraceStdout, Usage: "print spans to stderr", Sources: cli.EnvVars("SHAPE_TRACE_STDOUT")},
			&cli.StringFlag{Name: flagStatusAddr, Usage: "serve the status API on this address", Sources: cli.EnvVars("SHAPE_STATUS_ADDR")},
			&cli.StringFlag{Name: flagLogLevel, Value: def.LogLevel, Usage: "debug, info, warn or error", Sources: cli.EnvVars("SHAPE_LOG_LEVEL")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := configFromCommand(cmd)
			if err != nil {
				return err
			}
			return action(ctx, cfg)
		},
	}
}

// configFromCommand reads flags, then lets the positional
// `<name> <host> <port>` form override them.
func configFromCommand(cmd *cli.Command) (config.Config, error) {
	cfg := config.Config{
		PlayerName:   cmd.String(flagName),
		Host:         cmd.String(flagHost),
		Port:         cmd.Int(flagPort),
		Transport:    cmd.String(flagTransport),
		WSPath:       cmd.String(flagWSPath),
		Strategy:     cmd.String(flagStrategy),
		RulesPath:    cmd.String(flagRules),
		DialTimeout:  cmd.Duration(flagDialTimeout),
		ReadTimeout:  cmd.Duration(flagReadTimeout),
		HistoryDSN:   cmd.String(flagHistory),
		RedisAddr:    cmd.String(flagRedis),
		OtelEndpoint: cmd.String(flagOtelEndpoint),
		TraceStdout:  cmd.Bool(flagTraceStdout),
		StatusAddr:   cmd.String(flagStatusAddr),
		LogLevel:     cmd.String(flagLogLevel),
	}

	args := cmd.Args()
	if args.Len() > 3 {
		return cfg, fmt.Errorf("expected at most 3 arguments, got %d", args.Len())
	}
	if name := args.Get(0); name != "" {
		cfg.PlayerName = name
	}
	if host := args.Get(1); host != "" {
		cfg.Host = host
	}
	if raw := args.Get(2); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid port %q: %w", raw, err)
		}
		cfg.Port = port
	}
	if cfg.Transport == "" {
		cfg.Transport = transport.NetworkTCP
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
