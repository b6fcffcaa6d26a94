package controller

import (
	"ctchen222/Shape-Game/internal/api/response"
	"ctchen222/Shape-Game/internal/repository"
	"ctchen222/Shape-Game/internal/session"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Snapshotter reports the live progress of a session.
type Snapshotter interface {
	Snapshot() session.Snapshot
}

// StatusController exposes the running session and the game history.
type StatusController struct {
	session Snapshotter
	history repository.GameResultRepository
}

// NewStatusController creates a new StatusController. history may be nil
// when no result store is configured.
func NewStatusController(s Snapshotter, history repository.GameResultRepository) *StatusController {
	return &StatusController{
		session: s,
		history: history,
	}
}

// Health handles the liveness endpoint.
func (sc *StatusController) Health(c *gin.Context) {
	response.SuccessResponse(c, gin.H{"status": "ok"})
}

// Session returns the current session snapshot.
func (sc *StatusController) Session(c *gin.Context) {
	if sc.session == nil {
		response.ErrorResponse(c, http.StatusServiceUnavailable, "no session running")
		return
	}
	response.SuccessResponse(c, sc.session.Snapshot())
}

// History lists the most recent finished games, newest first.
func (sc *StatusController) History(c *gin.Context) {
	if sc.history == nil {
		response.ErrorResponse(c, http.StatusNotFound, "game history is disabled")
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.ErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := sc.history.Recent(c.Request.Context(), limit)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to load game history", "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "failed to load game history")
		return
	}
	response.SuccessResponseList(c, records)
}
