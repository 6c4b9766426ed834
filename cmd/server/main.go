package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/profissa/marketplace-api/internal/api"
	"github.com/profissa/marketplace-api/internal/core/domain"
	"github.com/profissa/marketplace-api/internal/infrastructure/db/memory"
	mongodb "github.com/profissa/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/profissa/marketplace-api/internal/infrastructure/db/redis"
	"github.com/profissa/marketplace-api/internal/pkg/config"
	"github.com/profissa/marketplace-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := domain.ValidateRules(); err != nil {
		log.Fatal().Err(err).Msg("ownership rule table is inconsistent")
	}
	if cfg.JWTSecret == "" {
		if cfg.Env != "development" {
			log.Fatal().Msg("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = "dev-secret"
		log.Warn().Msg("JWT_SECRET not set, using development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Log:       log,
	}

	switch cfg.Store {
	case "memory":
		deps.Store = memory.NewRecordStore()
		log.Warn().Msg("using in-memory record store, data will not survive restarts")
	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		deps.Store = mongodb.NewRecordStore(db)
		deps.Mongo = db

		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		deps.Redis = rdb
		deps.Denylist = redisdb.NewTokenDenylist(rdb)
	}

	e := api.NewRouter(deps)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
