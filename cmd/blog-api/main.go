package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bloglist/blog-api/internal/api"
	"github.com/bloglist/blog-api/internal/api/handler"
	"github.com/bloglist/blog-api/internal/core/ports"
	"github.com/bloglist/blog-api/internal/infrastructure/config"
	"github.com/bloglist/blog-api/internal/infrastructure/db/mongo"
	"github.com/bloglist/blog-api/internal/infrastructure/db/redis"
	"github.com/bloglist/blog-api/internal/infrastructure/db/sqlite"
	"github.com/bloglist/blog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// store is the backend selected by STORE_DRIVER.
type store struct {
	users ports.UserRepository
	posts ports.PostRepository
	ping  handler.Check
	close func(ctx context.Context) error
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "blog-api",
	})
	log := logger.Component("main")

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("open store")
	}
	log.Info().Str("driver", cfg.Store.Driver).Msg("store ready")

	checks := map[string]handler.Check{cfg.Store.Driver: st.ping}

	var (
		idem ports.IdempotencyStore
		rdb  *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
		}
		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		checks["redis"] = redis.Pinger(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys enabled")
	}

	e := api.NewRouter(api.Dependencies{
		Users:       st.users,
		Posts:       st.posts,
		Idempotency: idem,
		Secret:      cfg.Secret,
		TokenTTL:    cfg.TokenTTL,
		Checks:      checks,
		Logger:      logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}
	if err := st.close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("close store")
	}
	log.Info().Msg("stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return &store{
			users: s.Users,
			posts: s.Posts,
			ping:  s.Ping,
			close: func(context.Context) error { return s.Close() },
		}, nil
	default:
		s, err := mongo.Open(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		return &store{
			users: s.Users,
			posts: s.Posts,
			ping:  s.Ping,
			close: s.Close,
		}, nil
	}
}
