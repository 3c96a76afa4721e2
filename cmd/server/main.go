package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/auth"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/cache"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/config"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/events"
	internalhttp "github.com/seyedali-rafazi/urbam-state-backend/internal/http"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/repository"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	cfg := config.Load()
	log.Info().
		Str("port", cfg.HTTPPort).
		Str("mongo", cfg.MongoURI).
		Str("redis", cfg.RedisAddr).
		Msg("starting cart service")

	ctx := context.Background()

	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	userRepo := repository.NewMongoUserRepository(mongoDB)
	productRepo := repository.NewMongoProductRepository(mongoDB)
	couponRepo := repository.NewMongoCouponRepository(mongoDB)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}

	detailCache := cache.NewBreakerCache(cache.NewRedisCache(redisClient))

	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers...)
	defer publisher.Close()

	carts := service.NewCartService(
		userRepo, productRepo, couponRepo,
		detailCache, publisher, log.Logger,
	)

	tokens := auth.NewTokens(auth.Config{
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		CookieSecret:  cfg.CookieSecret,
		Env:           cfg.Env,
	}, userRepo)

	router := internalhttp.NewRouter(
		carts, tokens, internalhttp.NewAuthHandler(tokens),
		log.Logger, cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("mongo disconnect failed")
	}

	log.Info().Msg("server exited")
}
