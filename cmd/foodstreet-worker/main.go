// Command foodstreet-worker keeps the SQLite mirror (and optionally a
// Google Sheet) in step with the CSV ledger. It consumes change events
// published by the admin tool and resyncs periodically to catch anything
// missed while it was down.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"foodstreet/internal/amqp"
	"foodstreet/internal/cli"
	"foodstreet/internal/export/google"
	"foodstreet/internal/ledger"
	"foodstreet/internal/storage"
	"foodstreet/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting foodstreet-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	source := ledger.NewFileSource(cfg.CSVPath)

	mirror, err := storage.NewMirror(cfg.MirrorDBPath)
	if err != nil {
		logger.Error("Failed to initialize mirror", "error", err, "path", cfg.MirrorDBPath)
		os.Exit(1)
	}
	defer mirror.Close()

	// Google Sheets export is optional
	var exporter worker.SnapshotExporter
	if cfg.GoogleSpreadsheetID != "" {
		gexp, err := google.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets exporter", "error", err)
			os.Exit(1)
		}
		exporter = gexp
		logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	// AMQP consumption is optional; without it the worker falls back to
	// resync on a timer only.
	var consumer worker.Consumer
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		consumer = amqpClient
		logger.Info("Consuming change events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - resyncing on interval only", "interval", cfg.ResyncInterval)
	}

	w := worker.NewMirrorWorker(source, mirror, exporter)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	if err := w.Run(ctx, consumer, cfg.ResyncInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
