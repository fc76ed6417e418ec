package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-boarding/internal/adapters/auth/jwtauth"
	rediscache "pet-boarding/internal/adapters/cache/redis"
	"pet-boarding/internal/adapters/notify/kafka"
	"pet-boarding/internal/adapters/notify/rabbitmq"
	pg "pet-boarding/internal/adapters/storage/postgres"
	"pet-boarding/internal/platform/config"
	"pet-boarding/internal/platform/logger"
	"pet-boarding/internal/ports/auth"
	"pet-boarding/internal/ports/notify"
	"pet-boarding/internal/router"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.New(logger.Options{Level: logger.Error}).Error("config load failed", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return err
	}

	var verifier auth.AuthVerifier // nil = modo dev (X-Debug-*)
	if cfg.Auth.JWTSecret != "" {
		v, err := jwtauth.NewVerifier(cfg.Auth.JWTSecret)
		if err != nil {
			return err
		}
		verifier = v
	} else {
		log.Warn("JWT_SECRET not set: running in dev auth mode", nil)
	}

	var db *sql.DB
	if cfg.Database.DSN != "" {
		db, err = pg.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.Database.Migrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := pg.Migrate(ctx, db)
			cancel()
			if err != nil {
				return err
			}
		}
		log.Info("using postgres storage", nil)
	} else {
		log.Info("using in-memory storage", nil)
	}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb = rediscache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, status cache will fall back to storage", map[string]any{"error": err})
		}
		cancel()
	}

	publisher, err := newPublisher(cfg.Notify)
	if err != nil {
		return err
	}
	defer publisher.Close()

	h := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Logger:       log,
		AdminRoles:   cfg.Auth.AdminRoles,
		Redis:        rdb,
		RedisTTL:     cfg.Redis.TTL,
		Publisher:    publisher,
		SeedStatuses: cfg.Booking.SeedStatuses,
		Location:     loc,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", map[string]any{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func newPublisher(cfg config.NotifyConfig) (notify.Publisher, error) {
	switch cfg.Driver {
	case config.NotifyRabbitMQ:
		return rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPQueue)
	case config.NotifyKafka:
		return kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	default:
		return notify.Noop{}, nil
	}
}
