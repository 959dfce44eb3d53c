package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gastos/internal/config"
	"gastos/internal/events"
	"gastos/internal/export"
	applog "gastos/internal/log"
	"gastos/internal/storage"
	"gastos/internal/worker"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo, Component: "exporter"})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the exporter")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var sheets worker.SummaryAppender
	if cfg.GoogleSpreadsheetID != "" {
		client, err := export.NewSheetsClient(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Sheets client", "error", err)
			os.Exit(1)
		}
		sheets = client
		logger.Info("Sheets summary export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Sheets summary export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	w := worker.NewExportWorker(repo, repo, cfg.ExportDir, sheets)

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP broker", "error", err)
		os.Exit(1)
	}

	logger.Info("Exporter started", "queue", cfg.AMQPQueue, "export_dir", cfg.ExportDir)
	for {
		err := w.Run(ctx, client)
		client.Close()

		if err == nil || errors.Is(err, context.Canceled) {
			break
		}
		logger.Warn("Consumer stopped, reconnecting", "error", err)

		client, err = events.Reconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Reconnect failed", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("Exporter stopped")
}
