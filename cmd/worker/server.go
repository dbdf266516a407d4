package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"foundation-backend/internal/shared"

	"github.com/hibiken/asynq"
)

type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(cfg *Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueMaintenance: 10,
			},
			Concurrency: 5,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Println("[Worker] Stopped")
}

// startHealthCheckServer serves liveness and readiness probes.
func startHealthCheckServer(cfg *Config) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"UP","service":"foundation-worker"}`))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"READY"}`))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HealthPort,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	log.Printf("[Health] Starting health check server on :%s", cfg.HealthPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("[Health] Failed to start: %v", err)
	}
}
