package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"foundation-backend/pkg/container"
	"foundation-backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatalf("[Container] Failed to initialize: %v", err)
	}
	defer c.Cleanup()

	logger.Init(c.Config.App.Environment)

	cfg := loadConfig()

	handlers := initializeHandlers(c)

	srv := setupAsynqServer(cfg, handlers)
	scheduler := setupScheduler(cfg)

	go startHealthCheckServer(cfg)

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[Shutdown] Gracefully stopping...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Println("[Shutdown] Stopped")
}
