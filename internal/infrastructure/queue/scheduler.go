package queue

import (
	"encoding/json"
	"time"

	"foundation-backend/internal/shared"
	"foundation-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// Scheduler enqueues the recurring maintenance tasks. The worker process
// (cmd/worker) consumes them; the API process never touches this.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	if err := s.registerSweepExpiredSessionsJob(); err != nil {
		return err
	}

	return s.registerReportPendingQueueJob()
}

// Expired registry rows are already invisible to lookups; this reclaims
// them. Hourly is plenty.
func (s *Scheduler) registerSweepExpiredSessionsJob() error {
	payload, err := json.Marshal(shared.SweepExpiredSessionsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSweepExpiredSessions, payload)

	_, err = s.scheduler.Register(
		"0 * * * *",
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register SweepExpiredSessions job", err)
		return err
	}

	logger.Info("Registered SweepExpiredSessions: hourly", map[string]interface{}{})
	return nil
}

// Daily reviewer nudge: logs how deep the pending queue is.
func (s *Scheduler) registerReportPendingQueueJob() error {
	payload, err := json.Marshal(shared.ReportPendingQueuePayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReportPendingQueue, payload)

	_, err = s.scheduler.Register(
		"0 8 * * *",
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register ReportPendingQueue job", err)
		return err
	}

	logger.Info("Registered ReportPendingQueue: daily at 8 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
