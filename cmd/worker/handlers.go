package main

import (
	"github.com/hibiken/asynq"

	"foundation-backend/internal/infrastructure/queue/handlers"
	"foundation-backend/internal/shared"
	"foundation-backend/pkg/container"
)

// HandlerRegistry holds the maintenance task handlers.
type HandlerRegistry struct {
	sessionSweep *handlers.SessionSweepHandler
	pendingQueue *handlers.PendingQueueHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sessionSweep: handlers.NewSessionSweepHandler(c.SessionRepo),
		pendingQueue: handlers.NewPendingQueueHandler(c.SubmissionRepo),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSweepExpiredSessions, h.sessionSweep.ProcessTask)
	mux.HandleFunc(shared.TypeReportPendingQueue, h.pendingQueue.ProcessTask)
}
