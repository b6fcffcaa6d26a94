package server

import (
	"context"
	"ctchen222/Shape-Game/internal/api/controller"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 5 * time.Second

// Server serves the read-only status API next to a running session.
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

func NewServer(addr string, status *controller.StatusController) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine}
	s.RegisterHandlers(status)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(engine, "status"),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// RegisterHandlers wires the status routes.
func (s *Server) RegisterHandlers(status *controller.StatusController) {
	s.engine.GET("/healthz", status.Health)
	s.engine.GET("/session", status.Session)
	s.engine.GET("/history", status.History)
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run listens until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "Status server started", "http.addr", ln.Addr().String())
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("status server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down status server: %w", err)
	}
	slog.InfoContext(ctx, "Status server stopped")
	return nil
}
