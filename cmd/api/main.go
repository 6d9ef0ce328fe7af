// Command api serves the care-services REST API.
//
//	@title						Care Services API
//	@version					1.0
//	@description				Bookings, rosters and accounts for a home-care agency.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carebook/care-services/internal/api"
	"github.com/carebook/care-services/internal/core/service"
	"github.com/carebook/care-services/internal/infrastructure/config"
	mongorepo "github.com/carebook/care-services/internal/infrastructure/db/mongo"
	redisstore "github.com/carebook/care-services/internal/infrastructure/db/redis"
	"github.com/carebook/care-services/internal/infrastructure/queue"
	"github.com/carebook/care-services/internal/infrastructure/seed"
	"github.com/carebook/care-services/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "care-services",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "care-services",
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable; booking idempotency disabled")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, mongorepo.NewActivityRepository(db), logger.Component("activity"))
	dispatcher.Start(ctx)

	if cfg.SeedFile != "" {
		if err := applySeed(ctx, cfg.SeedFile, db, dispatcher, log); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Config{
		DB:             db,
		Redis:          rdb,
		Activity:       dispatcher,
		Logger:         log,
		JWTSecret:      cfg.Auth.JWTSecret,
		TokenTTL:       cfg.Auth.TokenTTL,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		Location:       loc,
		WebDir:         cfg.WebDir,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("activity log not fully drained")
	}
	return nil
}

func applySeed(ctx context.Context, path string, db *mongo.Database, dispatcher *queue.Dispatcher, log zerolog.Logger) error {
	f, err := seed.Load(path)
	if err != nil {
		return err
	}
	users := service.NewUserService(mongorepo.NewUserRepository(db), dispatcher, log)
	catalog := service.NewCatalogService(mongorepo.NewServiceRepository(db), dispatcher, log)

	res, err := seed.Apply(ctx, f, users, catalog, log)
	if err != nil {
		return err
	}
	log.Info().
		Int("admins_created", res.AdminsCreated).
		Int("admins_skipped", res.AdminsSkipped).
		Int("services_synced", res.ServicesSynced).
		Msg("seed applied")
	return nil
}
