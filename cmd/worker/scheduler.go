package main

import (
	"log"

	"foundation-backend/internal/infrastructure/queue"
)

type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(cfg *Config) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.RedisAddr)

	if err := scheduler.RegisterMaintenanceJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register: %v", err)
	}

	go func() {
		log.Println("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatalf("[Scheduler] Failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Println("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Println("[Scheduler] Stopped")
}
