package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careerstack/identity-federation/internal/api"
	"github.com/careerstack/identity-federation/internal/infrastructure/config"
	mongostore "github.com/careerstack/identity-federation/internal/infrastructure/db/mongo"
	redisstore "github.com/careerstack/identity-federation/internal/infrastructure/db/redis"
	"github.com/careerstack/identity-federation/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One connection per backing store: master identity plus each platform.
	masterClient, masterDB, err := mongostore.Connect(ctx, mongostore.Config{
		URI: cfg.Master.URI, Database: cfg.Master.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to master store")
	}
	defer func() { _ = masterClient.Disconnect(context.Background()) }()

	freelancerClient, freelancerDB, err := mongostore.Connect(ctx, mongostore.Config{
		URI: cfg.Freelancer.URI, Database: cfg.Freelancer.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to freelancer store")
	}
	defer func() { _ = freelancerClient.Disconnect(context.Background()) }()

	careerClient, careerDB, err := mongostore.Connect(ctx, mongostore.Config{
		URI: cfg.Career.URI, Database: cfg.Career.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to career store")
	}
	defer func() { _ = careerClient.Disconnect(context.Background()) }()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr, DB: cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	e := api.NewRouter(cfg, api.Databases{
		Master:     masterDB,
		Freelancer: freelancerDB,
		Career:     careerDB,
	}, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity federation service started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("identity federation service stopped")
}
