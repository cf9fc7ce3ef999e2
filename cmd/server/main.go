package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HSAR/GamesInCommon/internal/api"
	"github.com/HSAR/GamesInCommon/internal/config"
	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/logging"
	"github.com/HSAR/GamesInCommon/internal/repository/gormdb"
	"github.com/HSAR/GamesInCommon/internal/service"
	"github.com/HSAR/GamesInCommon/internal/steam"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.Environment, cfg.LogLevel)

	// Initialize database
	db, err := gormdb.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Initialize repositories and seed the filter catalog
	repos := gormdb.NewRepositories(db)
	if err := repos.GameFilter.SeedFilters(context.Background(), domain.AllFilterKinds()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed filters")
	}
	logger.Info().Msg("database initialised")

	// Initialize Steam client and services
	client := steam.NewClient(steam.Options{
		ThrottleWait:      cfg.ThrottleWait,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, logger)
	services := service.NewServices(repos, client, logger)

	// Initialize router
	router := api.NewRouter(services, repos, logger)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
