package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MinisterHD/Assets-Value-App/internal/config"
	"github.com/MinisterHD/Assets-Value-App/internal/db"
	"github.com/MinisterHD/Assets-Value-App/internal/handlers"
	"github.com/MinisterHD/Assets-Value-App/internal/logger"
	"github.com/MinisterHD/Assets-Value-App/internal/scraper"
	"github.com/MinisterHD/Assets-Value-App/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.New()

	database, err := db.Connect(db.NewConfig())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	if err := database.Health(); err != nil {
		log.Fatal("database health check failed", zap.Error(err))
	}
	log.Info("database connection established")

	// Ingestion side: the fixed source set and the loop driving it.
	client := scraper.NewClient(cfg.FetchTimeout)
	sources := scraper.Tracked(client, cfg.BrsAPIKey)
	ingestion := services.NewIngestion(database.DB, sources, log)
	scheduler := services.NewScheduler(ingestion, cfg.ScrapeInterval, cfg.CycleTimeout, log)

	// Read side.
	history := services.NewPriceHistory(database)
	rate := services.NewReferenceRate(database.DB, history, cfg.RateTTL, log)
	query := services.NewQuery(database.DB, history)
	valuation := services.NewValuation(database.DB, history, rate)

	router := handlers.NewRouter(
		handlers.NewAssetHandler(query, history, rate),
		handlers.NewPriceHandler(history),
		handlers.NewAnalyticsHandler(history, services.Analytics{}),
		handlers.NewPortfolioHandler(valuation),
		handlers.NewIngestHandler(ingestion),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go scheduler.Run(ctx)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}
}
