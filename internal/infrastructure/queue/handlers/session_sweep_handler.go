package handlers

import (
	"context"

	"foundation-backend/internal/domains/session"
	"foundation-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// SessionSweepHandler deletes expired session registry rows.
type SessionSweepHandler struct {
	sessions session.Repository
}

func NewSessionSweepHandler(sessions session.Repository) *SessionSweepHandler {
	return &SessionSweepHandler{sessions: sessions}
}

func (h *SessionSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	deleted, err := h.sessions.DeleteExpired(ctx)
	if err != nil {
		logger.Error("session sweep failed", err)
		return err
	}

	logger.Info("session sweep completed", map[string]interface{}{
		"deleted": deleted,
	})
	return nil
}
