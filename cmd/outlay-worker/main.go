package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"outlay/internal/amqp"
	"outlay/internal/config"
	"outlay/internal/log"
	"outlay/internal/services"
	"outlay/internal/sheets/google"
	"outlay/internal/storage"
	"outlay/internal/store"
	"outlay/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	kv, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open store", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer kv.Close()

	st := store.New(kv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var mirror services.ExpenseMirror
	if cfg.SheetsEnabled() {
		client, err := google.New(ctx, google.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleServiceAccountFile,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
		})
		if err != nil {
			logger.Error("Failed to initialize Sheets mirror", log.FieldError, err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Sheets mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Sheets mirror disabled, backups stay local")
	}

	backups := services.NewBackupService(st, cfg.BackupDir, mirror)
	backupWorker := worker.NewBackupWorker(backups)

	// Recover a month-end window missed while the worker was down.
	if err := backupWorker.StartupCheck(ctx); err != nil {
		logger.Error("Startup backup check failed", log.FieldError, err)
	}

	// The broker is optional here too: without it the periodic tick alone
	// drives the month-end backup.
	var amqpClient *amqp.Client
	if client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue); err != nil {
		logger.Warn("AMQP unavailable, relying on periodic checks only", log.FieldError, err)
	} else {
		amqpClient = client
		defer amqpClient.Close()
	}

	g, ctx := errgroup.WithContext(ctx)
	if amqpClient != nil {
		g.Go(func() error {
			err := amqpClient.ConsumeStoreEvents(ctx, func(msg *amqp.StoreEventMessage) error {
				return backupWorker.HandleStoreEvent(ctx, msg)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
	g.Go(func() error {
		err := backupWorker.RunPeriodic(ctx, cfg.BackupCheckInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	logger.Info("Worker started",
		"backup_dir", cfg.BackupDir,
		"check_interval", cfg.BackupCheckInterval.String())

	if err := g.Wait(); err != nil {
		logger.Error("Worker error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
