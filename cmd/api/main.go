// Command api runs the social HTTP API.
//
//	@title						Social API
//	@version					1.0
//	@description				Users, posts, likes and comments behind bearer-token auth.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/postwall/social-api/internal/api"
	"github.com/postwall/social-api/internal/api/handler"
	"github.com/postwall/social-api/internal/core/ports"
	"github.com/postwall/social-api/internal/core/service"
	"github.com/postwall/social-api/internal/infrastructure/db/memory"
	"github.com/postwall/social-api/internal/infrastructure/db/mongo"
	"github.com/postwall/social-api/internal/infrastructure/db/redis"
	"github.com/postwall/social-api/internal/infrastructure/queue"
	"github.com/postwall/social-api/internal/pkg/config"
	"github.com/postwall/social-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "social-api"})
		log := logger.Get()
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "social-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	tokens, err := service.NewTokenService([]byte(cfg.JWTSecret))
	if err != nil {
		return err
	}

	deps := api.Dependencies{
		Tokens:    tokens,
		Hasher:    service.NewBcryptHasher(cfg.BcryptCost),
		Readiness: map[string]handler.PingFunc{},
		Logger:    log,
	}

	var activities ports.ActivityRepository
	switch cfg.StoreDriver {
	case config.DriverMemory:
		deps.Users = memory.NewUserRepository()
		deps.Posts = memory.NewPostRepository()
		deps.Idempotency = memory.NewIdempotencyStore()
		activities = memory.NewActivityRepository()
		log.Warn().Msg("using in-memory storage; data is lost on restart")

	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()

		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return err
		}

		deps.Users = mongo.NewUserRepository(db)
		deps.Posts = mongo.NewPostRepository(db)
		activities = mongo.NewActivityRepository(db)
		deps.Readiness["mongodb"] = mongo.Pinger(client)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()

		deps.Idempotency = redis.NewIdempotencyStore(rdb)
		deps.Readiness["redis"] = redis.Pinger(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	dispatcher := queue.NewDispatcher(
		cfg.ActivityWorkers,
		service.NewActivityService(activities, logger.Component("activity_service")),
		logger.Component("activity_dispatcher"),
	)
	dispatcher.Start(ctx)
	deps.Activity = dispatcher

	e := api.NewRouter(deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
