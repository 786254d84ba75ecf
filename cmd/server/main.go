package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrianguereque/accounts-api/internal/api"
	"github.com/adrianguereque/accounts-api/internal/infrastructure/config"
	"github.com/adrianguereque/accounts-api/internal/infrastructure/db/postgres"
	"github.com/adrianguereque/accounts-api/pkg/logger"
)

// @title        Accounts API
// @version      1.0
// @description  User account service: registration, login and session-cookie based account management.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	e := api.NewRouter(db, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
