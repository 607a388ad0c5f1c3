// Command upload sweeps the data directory once, converting each raw
// neutron-probe file and uploading the raw and L1 pair to HIEv.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/gdevine/face-neutronprobe-hiev/internal/adapter/hiev"
	httpadapter "github.com/gdevine/face-neutronprobe-hiev/internal/adapter/http"
	kafkaadapter "github.com/gdevine/face-neutronprobe-hiev/internal/adapter/kafka"
	"github.com/gdevine/face-neutronprobe-hiev/internal/config"
	"github.com/gdevine/face-neutronprobe-hiev/internal/converter"
	"github.com/gdevine/face-neutronprobe-hiev/internal/observability"
	"github.com/gdevine/face-neutronprobe-hiev/internal/uploader"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateUpload(); err != nil {
		slog.Error("invalid upload config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stderr)
	metrics := observability.NewMetrics()

	// Receipt publishing is feature-flagged via KAFKA_BROKERS.
	var receipts uploader.ReceiptPublisher
	var kafkaWriter *kafkaadapter.Writer
	if cfg.ReceiptsEnabled() {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		receipts = kafkaWriter
		logger.Info("upload receipts enabled", "topic", cfg.KafkaReceiptTopic)
	} else {
		logger.Info("upload receipts disabled")
	}

	// Metrics endpoint is feature-flagged via METRICS_ADDR.
	var srv *httpadapter.Server
	if cfg.MetricsAddr != "" {
		srv = httpadapter.NewServer(cfg.MetricsAddr, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	store := hiev.NewClient(cfg.HievBaseURL, cfg.HievAPIKey, cfg.HievTimeout, logger)
	conv := converter.New(cfg, logger, metrics)
	u := uploader.New(cfg, conv, store, receipts, clockwork.NewRealClock(), logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sum, err := u.Run(ctx)

	if kafkaWriter != nil {
		if cerr := kafkaWriter.Close(); cerr != nil {
			logger.Error("kafka writer close error", "error", cerr)
		}
	}
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			logger.Error("metrics server shutdown error", "error", serr)
		}
	}

	if err != nil {
		logger.Error("sweep aborted", "error", err)
		os.Exit(1)
	}
	if sum.Failed > 0 {
		os.Exit(1)
	}
}
