package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/pkg/container"
)

func main() {
	_ = godotenv.Load()
	gin.SetMode(gin.ReleaseMode)

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}
	defer c.Cleanup()

	handlers, err := initializeHandlers(c)
	if err != nil {
		log.Fatal().Err(err).Msg("[Worker] Cannot register handlers")
	}

	srv := newAsynqServer(c, handlers)

	if err := runHealthChecks([]healthCheck{
		{"Redis connection", srv.Ping},
	}); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("[Worker] Failed to start")
	}

	health := newHealthServer(c.Config.Jobs.HealthPort, srv.Ping)
	startHealthServer(health)

	log.Info().
		Str("redis", c.Config.Redis.Host).
		Int("concurrency", c.Config.Jobs.Concurrency).
		Msg("Bookstore catalog worker started")

	waitForShutdown()

	stopHealthServer(health)
	srv.Shutdown()
}

func waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Shutdown] Gracefully stopping...")
}
