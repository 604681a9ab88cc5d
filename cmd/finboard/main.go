package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"finboard/internal/backend"
	"finboard/internal/cache"
	"finboard/internal/cashflow"
	"finboard/internal/classify"
	"finboard/internal/config"
	apphttp "finboard/internal/http"
	"finboard/internal/ledger"
	"finboard/internal/log"
	"finboard/internal/portfolio"
	"finboard/internal/quote"
	"finboard/internal/setup"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	logger := log.New("finboard", log.Config{})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn("Sentry initialization failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := backend.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	logger.Info("Initialized data backend", "backend", cfg.DataBackend)

	sectorCache := cache.NewLRU[string](cfg.SectorCacheSize, cfg.SectorCacheTTL)
	go startCacheCleanup(ctx, sectorCache, logger)

	classifier := classify.New(
		classify.DefaultSectorMap(),
		quote.NewClient(cfg.QuoteBaseURL, cfg.QuoteTimeout),
		sectorCache,
	)

	tabs := ledger.Tabs{
		Accounts:     cfg.AccountsTab,
		Transactions: cfg.TransactionsTab,
		Categories:   cfg.CategoriesTab,
	}

	pf := portfolio.NewService(store, classifier, cfg.PortfolioTab, cfg.TradesTab, portfolio.DefaultLayout(), cfg.ClassifyConcurrency)
	cf := cashflow.NewService(store, cfg.CashFlowTab)
	lg := ledger.NewService(store, tabs)
	st := setup.NewManager(store, tabs)

	srv := apphttp.NewServer(":"+cfg.Port, pf, cf, lg, st, logger.WithComponent("http"))
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting finboard server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

// startCacheCleanup runs periodic cleanup for the sector cache.
func startCacheCleanup(ctx context.Context, c *cache.LRU[string], logger *log.Logger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.CleanExpired(); n > 0 {
				logger.Debug("Cache cleanup completed", "entries_removed", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
