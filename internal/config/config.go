package config

import (
	"ctchen222/Shape-Game/internal/strategy"
	"ctchen222/Shape-Game/internal/transport"
	"ctchen222/Shape-Game/internal/validator"
	"fmt"
	"time"
)

// Defaults shared with the reference coordinator.
const (
	DefaultPlayerName = "GoClient"
	DefaultHost       = "localhost"
	DefaultPort       = 40000
	DefaultWSPath     = "/ws"
)

// Config holds everything the client needs to play one session.
type Config struct {
	PlayerName string `validate:"required"`
	Host       string `validate:"required,hostname_rfc1123|ip"`
	Port       int    `validate:"min=1,max=65535"`
	Transport  string `validate:"oneof=tcp ws"`
	WSPath     string `validate:"omitempty,startswith=/"`
	Strategy   string `validate:"oneof=mirror counter random first human interactive"`
	RulesPath  string `validate:"omitempty,file"`

	DialTimeout time.Duration `validate:"gte=0"`
	ReadTimeout time.Duration `validate:"gte=0"`

	// HistoryDSN is the SQLite database file game results are appended to.
	HistoryDSN string
	// RedisAddr enables the Redis history store and game_finished events.
	RedisAddr string `validate:"omitempty,hostname_port|tcp_addr"`

	OtelEndpoint string `validate:"omitempty,hostname_port|tcp_addr"`
	TraceStdout  bool
	StatusAddr   string `validate:"omitempty,hostname_port|tcp_addr"`
	LogLevel     string `validate:"oneof=debug info warn error"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		PlayerName:  DefaultPlayerName,
		Host:        DefaultHost,
		Port:        DefaultPort,
		Transport:   transport.NetworkTCP,
		WSPath:      DefaultWSPath,
		Strategy:    strategy.NameMirror,
		DialTimeout: 10 * time.Second,
		LogLevel:    "info",
	}
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validator.GetValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// TransportOptions returns the dial options for the coordinator.
func (c Config) TransportOptions() transport.Options {
	return transport.Options{
		Network:     c.Transport,
		Host:        c.Host,
		Port:        c.Port,
		Path:        c.WSPath,
		DialTimeout: c.DialTimeout,
		ReadTimeout: c.ReadTimeout,
	}
}
