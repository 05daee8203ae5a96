// Package main is the entry point for the Pulse wellness summary service.
//
// Startup order:
// 1. Configuration from environment variables (.env supported)
// 2. Structured logger
// 3. Data source (CSV file, SQLite database or S3 object)
// 4. Summary service with prometheus collectors
// 5. HTTP server and, when PULSE_DIGEST_SCHEDULE is set, the digest scheduler
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/pulse/internal/config"
	"github.com/aristath/pulse/internal/metrics"
	"github.com/aristath/pulse/internal/modules/healthdata"
	"github.com/aristath/pulse/internal/modules/wellness"
	"github.com/aristath/pulse/internal/scheduler"
	"github.com/aristath/pulse/internal/server"
	"github.com/aristath/pulse/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("source", cfg.DataSource).
		Int("week_days", cfg.Analysis.WeekDays).
		Float64("z_threshold", cfg.Analysis.ZThreshold).
		Int("min_baseline_days", cfg.Analysis.MinBaselineDays).
		Msg("Starting Pulse")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, closer, err := healthdata.Open(ctx, cfg.SourceOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open data source")
	}
	defer closer.Close()

	summarizer, err := wellness.NewSummarizer(cfg.Analysis)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid analysis configuration")
	}

	registry := metrics.NewRegistry()
	metricsManager := metrics.NewManager("pulse", "", registry)

	service := wellness.NewService(source, summarizer, metricsManager, log)
	log.Info().Str("source", service.SourceName()).Msg("Data source ready")

	srv := server.New(server.Config{
		Log:      log,
		Port:     cfg.Port,
		DevMode:  cfg.DevMode,
		Summary:  service,
		Registry: registry,
	})

	var sched *scheduler.Scheduler
	if cfg.DigestSchedule != "" {
		sched = scheduler.New(log)

		digest := scheduler.NewDigestJob(service)
		digest.SetLogger(log)
		digest.SetTimeout(cfg.DigestTimeout)
		if err := sched.AddJob(cfg.DigestSchedule, digest); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.DigestSchedule).Msg("Failed to register digest job")
		}
		sched.Start()
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
