package handlers

import (
	"context"

	"foundation-backend/internal/domains/submission"
	"foundation-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// PendingQueueHandler logs the depth of the pending review queue so
// reviewers notice when it is backing up.
type PendingQueueHandler struct {
	submissions submission.Repository
}

func NewPendingQueueHandler(submissions submission.Repository) *PendingQueueHandler {
	return &PendingQueueHandler{submissions: submissions}
}

func (h *PendingQueueHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	pending := submission.StatusPending
	subs, err := h.submissions.ListAll(ctx, &pending)
	if err != nil {
		logger.Error("pending queue report failed", err)
		return err
	}

	logger.Info("pending review queue", map[string]interface{}{
		"count": len(subs),
	})
	return nil
}
