// Command sheets-init creates the money-manager tabs on the configured
// spreadsheet. Safe to run repeatedly; existing tabs are left untouched.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"finboard/internal/backend"
	"finboard/internal/config"
	"finboard/internal/ledger"
	"finboard/internal/log"
	"finboard/internal/setup"
)

func main() {
	_ = godotenv.Load()

	logger := log.New("sheets-init", log.Config{})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	store, err := backend.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	tabs := ledger.Tabs{
		Accounts:     cfg.AccountsTab,
		Transactions: cfg.TransactionsTab,
		Categories:   cfg.CategoriesTab,
	}

	created, err := setup.NewManager(store, tabs).Bootstrap(ctx)
	if err != nil {
		logger.Error("Bootstrap failed", "error", err, "created", created)
		os.Exit(1)
	}
	if len(created) == 0 {
		logger.Info("All tabs already present")
		return
	}
	logger.Info("Created tabs", "tabs", created)
}
