package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/advisordash/rebalancer/internal/clients/finnhub"
	"github.com/advisordash/rebalancer/internal/clients/tiingo"
	"github.com/advisordash/rebalancer/internal/config"
	"github.com/advisordash/rebalancer/internal/database"
	"github.com/advisordash/rebalancer/internal/events"
	"github.com/advisordash/rebalancer/internal/modules/backtest"
	"github.com/advisordash/rebalancer/internal/modules/books"
	"github.com/advisordash/rebalancer/internal/modules/classification"
	"github.com/advisordash/rebalancer/internal/modules/marketdata"
	"github.com/advisordash/rebalancer/internal/modules/rebalance"
	"github.com/advisordash/rebalancer/internal/scheduler"
	"github.com/advisordash/rebalancer/internal/server"
	"github.com/advisordash/rebalancer/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{Level: "info"})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Int("port", cfg.Port).
		Str("database", cfg.DatabasePath).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting rebalancer")

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	eventManager := events.NewManager(log)

	// Repositories
	clientRepo := books.NewClientRepository(db.Conn(), log)
	accountRepo := books.NewAccountRepository(db.Conn(), log)
	positionRepo := books.NewPositionRepository(db.Conn(), log)

	// Market data
	finnhubClient := finnhub.NewClient(cfg.FinnhubAPIKeys, log)
	marketService := marketdata.NewService(finnhubClient, positionRepo, eventManager, log)

	// Book
	bookService := books.NewService(clientRepo, accountRepo, positionRepo, marketService, eventManager, log)
	if err := bookService.SeedDemo(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed demo data")
	}

	// Rebalancing
	rebalanceService := rebalance.NewService(bookService, accountRepo, positionRepo, log)

	// Classification
	classifier := classification.NewGeminiClassifier(cfg.GeminiAPIKey, log)
	classificationService := classification.NewService(positionRepo, classifier, eventManager, log)

	// Backtesting
	tiingoClient := tiingo.NewClient(cfg.TiingoAPIKey, log)
	backtestService := backtest.NewService(accountRepo, positionRepo, tiingoClient, eventManager, log)

	// Background price refresh
	sched := scheduler.New(log)
	refreshJob := marketdata.NewRefreshJob(marketService, log)
	if err := sched.AddJob(cfg.PriceRefreshSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.PriceRefreshSchedule).Msg("Failed to register refresh job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DevMode: cfg.DevMode,
		Modules: []server.RouteRegistrar{
			books.NewHandlers(bookService, log),
			rebalance.NewHandlers(rebalanceService, log),
			marketdata.NewHandlers(marketService, log),
			classification.NewHandlers(classificationService, log),
			backtest.NewHandlers(backtestService, log),
		},
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("Server failed")
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
