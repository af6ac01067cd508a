package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/api"
	"github.com/bobby-s-dev/weather-lookup/internal/config"
	"github.com/bobby-s-dev/weather-lookup/internal/scheduler"
	"github.com/bobby-s-dev/weather-lookup/internal/services"
)

func main() {
	// Initialize logger
	zapConfig := zap.NewProductionConfig()
	logger, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Weather API Server")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if level, err := zap.ParseAtomicLevel(cfg.Server.LogLevel); err == nil {
		zapConfig.Level.SetLevel(level.Level())
	} else {
		logger.Warn("Invalid LOG_LEVEL, keeping info", zap.String("value", cfg.Server.LogLevel))
	}

	gateway := services.NewGateway(cfg, logger)

	// Demo mode has nothing to probe; record that once instead of scheduling.
	schedule := cfg.Probe.Schedule
	if !gateway.APIKeyConfigured() {
		schedule = ""
	}
	probe := scheduler.NewScheduler(gateway, schedule, cfg.Probe.City, logger)
	if !gateway.APIKeyConfigured() {
		probe.ForceRun()
	}

	handler := api.NewHandler(gateway, probe, logger)
	app := api.NewApp(cfg, handler)

	if err := probe.Start(); err != nil {
		logger.Fatal("Invalid probe schedule", zap.String("schedule", schedule), zap.Error(err))
	}

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server",
			zap.String("address", addr),
			zap.Bool("api_key_configured", gateway.APIKeyConfigured()))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	if !gateway.APIKeyConfigured() {
		logger.Warn("To use real weather data set WEATHER_API_KEY (https://openweathermap.org/api) and restart")
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	probe.Stop()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
