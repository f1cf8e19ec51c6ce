package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chubberlisk/crypto-tech/internal/adapters/harvest"
	"github.com/chubberlisk/crypto-tech/internal/adapters/slack"
	"github.com/chubberlisk/crypto-tech/internal/config"
	httpapi "github.com/chubberlisk/crypto-tech/internal/http"
	"github.com/chubberlisk/crypto-tech/internal/jobs"
	"github.com/chubberlisk/crypto-tech/internal/logger"
	"github.com/chubberlisk/crypto-tech/internal/metrics"
	"github.com/chubberlisk/crypto-tech/internal/services"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg)

	// Adapters
	hv := harvest.NewClient(cfg, log)
	sl := slack.NewClient(cfg, log)

	// Metrics
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	// Service
	svc := services.New(cfg, log, hv, hv, sl, sl, services.SystemClock{}, collector)

	// Cron
	cr := jobs.NewCron(cfg, log, svc)
	cr.Start()
	defer cr.Stop()

	// HTTP surface
	router := httpapi.NewRouter(cfg, log, svc, reg)
	errCh := make(chan error, 1)
	go func() { errCh <- router.Run(cfg.HTTPAddr) }()
	log.Info().Str("addr", cfg.HTTPAddr).Str("cron", cfg.CronSpec).Msg("timesheet reminder started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info().Msg("shutting down...")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	}

	time.Sleep(500 * time.Millisecond)
}
