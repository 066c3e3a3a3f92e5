package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodcort/foodcort/internal/api"
	"github.com/foodcort/foodcort/internal/core/service"
	"github.com/foodcort/foodcort/internal/infrastructure/config"
	mongodb "github.com/foodcort/foodcort/internal/infrastructure/db/mongo"
	redisdb "github.com/foodcort/foodcort/internal/infrastructure/db/redis"
	"github.com/foodcort/foodcort/internal/infrastructure/mail"
	"github.com/foodcort/foodcort/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	accountRepo := mongodb.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	otpLimiter := redisdb.NewOTPLimiter(rdb, cfg.OTP.TTL, cfg.OTP.MaxRequests)
	otpSender := mail.NewSender(nil, log)
	otpSender.Start(ctx)

	accounts := service.NewAccountService(accountRepo, cfg.JWTSecret, cfg.SessionTTL, log)
	recovery := service.NewRecoveryService(accountRepo, otpLimiter, otpSender, cfg.OTP.TTL, log)

	e := api.NewRouter(api.RouterConfig{
		Accounts:   accounts,
		Recovery:   recovery,
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		Log:        log,
		Mongo:      db,
		Redis:      rdb,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
