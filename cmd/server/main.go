package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vbofuh/back-savvy/internal/category"
	"github.com/vbofuh/back-savvy/internal/config"
	"github.com/vbofuh/back-savvy/internal/email"
	"github.com/vbofuh/back-savvy/internal/secret"
	"github.com/vbofuh/back-savvy/internal/store"
)

var (
	version      = "dev"
	showVersion  = flag.Bool("version", false, "Show version information")
	runOnce      = flag.Bool("once", false, "Run a single sync pass and exit")
	syncInterval = flag.Duration("interval", time.Hour, "Time between sync passes")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("back-savvy version %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	// Set log level
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting receipt sync service")

	cipher, err := secret.NewCipher(cfg.EncryptionKey)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize credential cipher")
	}

	// Open receipt database
	db, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open receipt database")
	}
	defer db.Close()

	receiptStore := store.NewStore(db, logger)

	if err := receiptStore.SeedCategories(category.Names()); err != nil {
		logger.WithError(err).Fatal("Failed to seed categories")
	}

	// Register accounts in the store
	for i := range cfg.Accounts {
		if _, err := receiptStore.UpsertAccount(&cfg.Accounts[i]); err != nil {
			logger.WithError(err).WithField("account", cfg.Accounts[i].Name).Warn("Failed to register account")
		}
	}

	// Initialize sync manager
	manager, err := email.NewManager(cfg, cipher, receiptStore, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create sync manager")
	}
	defer manager.Close()

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
	}()

	manager.SyncAll(ctx)

	if !*runOnce {
		ticker := time.NewTicker(*syncInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("Shutting down receipt sync service")
				return
			case <-ticker.C:
				manager.SyncAll(ctx)
			}
		}
	}

	logger.Info("Sync pass complete")
}
