// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/procuresmart/backend-go/internal/api"
	"github.com/procuresmart/backend-go/internal/cache"
	"github.com/procuresmart/backend-go/internal/catalog"
	"github.com/procuresmart/backend-go/internal/config"
	"github.com/procuresmart/backend-go/internal/scheduler"
	"github.com/procuresmart/backend-go/internal/service"
	"github.com/procuresmart/backend-go/pkg/logger"
)

// logLevelForMode translates the gin server mode into a zerolog level.
// Explicit level names pass through for operators overriding SERVER_MODE.
func logLevelForMode(mode string) string {
	switch mode {
	case "release", "test":
		return "info"
	case "debug":
		return "debug"
	default:
		return mode
	}
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(logLevelForMode(cfg.Server.Mode))
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize forecast cache
	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("forecast cache unavailable, continuing without it")
		forecastCache = cache.NewNoopForecastCache()
	}

	// Initialize services
	loader := catalog.NewLoader(cfg.App.DataDir)
	svc := service.NewProcurementService(loader, forecastCache)

	// Initial catalog load; a failure leaves the server serving degraded
	if err := svc.Reload(context.Background()); err != nil {
		logger.Log.Error().Err(err).Msg("initial catalog load failed, serving degraded")
	}

	// Start the reminder alert poller
	poller := scheduler.NewPoller(svc)
	if err := poller.Start(cfg.Alerts.PollSeconds); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to start alert poller")
	}

	// Initialize HTTP server
	router := api.NewRouter(svc, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	poller.Stop()

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
