package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("transport")

// Supported values for Options.Network.
const (
	NetworkTCP       = "tcp"
	NetworkWebSocket = "ws"
)

// ErrUnsupportedNetwork is returned by Dial for an unknown Options.Network.
var ErrUnsupportedNetwork = errors.New("unsupported network")

//go:generate mockgen -source=transport.go -destination=../mocks/mock_transport.go -package=mocks

// Connection abstracts a message-per-line duplex stream to the coordinator.
type Connection interface {
	// ReadMessage blocks until one complete message is available.
	ReadMessage() ([]byte, error)
	// WriteMessage sends one message; framing is added by the connection.
	WriteMessage(data []byte) error
	Close() error
}

// Options describes how to reach the coordinator.
type Options struct {
	Network     string
	Host        string
	Port        int
	Path        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// Address returns host:port.
func (o Options) Address() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// Dial opens a connection to the coordinator.
func Dial(ctx context.Context, opts Options) (Connection, error) {
	ctx, span := tracer.Start(ctx, "transport.Dial", trace.WithAttributes(
		attribute.String("net.network", opts.Network),
		attribute.String("net.peer.address", opts.Address()),
	))
	defer span.End()

	if opts.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.DialTimeout)
		defer cancel()
	}

	var (
		conn Connection
		err  error
	)
	switch opts.Network {
	case NetworkTCP, "":
		conn, err = dialTCP(ctx, opts)
	case NetworkWebSocket:
		conn, err = dialWebSocket(ctx, opts)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedNetwork, opts.Network)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to connect to coordinator")
		return nil, err
	}
	return conn, nil
}

func dialTCP(ctx context.Context, opts Options) (Connection, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", opts.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Address(), err)
	}
	return NewLineConn(conn, opts.ReadTimeout), nil
}

func dialWebSocket(ctx context.Context, opts Options) (Connection, error) {
	u := url.URL{Scheme: "ws", Host: opts.Address(), Path: opts.Path}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", u.String(), err)
	}
	return NewWebSocketConn(conn, opts.ReadTimeout), nil
}
