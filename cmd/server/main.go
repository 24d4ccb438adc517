package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cadastroweb/portal/internal/api"
	"github.com/cadastroweb/portal/internal/api/session"
	"github.com/cadastroweb/portal/internal/core/service"
	"github.com/cadastroweb/portal/internal/hashing"
	"github.com/cadastroweb/portal/internal/infrastructure/config"
	"github.com/cadastroweb/portal/internal/infrastructure/db/sqlite"
	"github.com/cadastroweb/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") != "production",
	})

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := sqlite.Open(ctx, cfg.SQLite.DSN)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", cfg.SQLite.DSN).Msg("failed to open database")
	}
	defer db.Close()

	repo := sqlite.NewUserRepository(db)
	authService := service.NewAuthService(repo, hashing.NewBcrypt(hashing.DefaultCost))
	store := session.NewStore(cfg.SessionSecret, cfg.SessionDir)

	e := api.NewRouter(db, store, authService, session.NewManager(), log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
