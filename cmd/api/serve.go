package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/config"
	dbpkg "github.com/DevAlex-full/barbeflow-scheduler/internal/db"
	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/domain/booking"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/infra/memory"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/infra/repository"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/infra/session"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/logging"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/notify"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/routes"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
)

const shutdownTimeout = 10 * time.Second

type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return &app{cfg: cfg, logger: logger}, nil
}

func openDB(a *app) (*gorm.DB, error) {
	db, err := dbpkg.NewDB(a.cfg)
	if err != nil {
		return nil, err
	}
	if err := dbpkg.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			return serve(cmd.Context(), a, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "Migrate the schema before serving (postgres driver)")
	return cmd
}

func serve(ctx context.Context, a *app, migrate bool) error {
	cfg, logger := a.cfg, a.logger

	var (
		repo  domain.Repository
		sinks = []notify.Sink{notify.NewLogSink(logger)}
	)

	switch cfg.StoreDriver {
	case config.DriverMemory:
		store := memory.New()
		shop := memory.SeedDemo(store)
		logger.Warn("using in-memory store, data is lost on restart", zap.String("demo_slug", shop.Slug))
		repo = store

	default:
		var (
			db  *gorm.DB
			err error
		)
		if migrate {
			db, err = openDB(a)
		} else {
			db, err = dbpkg.NewDB(cfg)
		}
		if err != nil {
			return err
		}
		repo = repository.NewAppointmentGormRepository(db)
		sinks = append(sinks, notify.NewAuditSink(db))
	}

	var sessions booking.SessionStore = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisSessionDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		sessions = session.NewRedisStore(rdb)

		queue := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
		defer queue.Close()
		sinks = append(sinks, notify.NewReminderQueueSink(queue, ""))
	} else {
		logger.Warn("REDIS_ADDR not set, booking sessions are kept in memory")
	}

	if cfg.KafkaBrokers != "" {
		writer := notify.NewKafkaWriter(cfg.KafkaBrokers)
		defer writer.Close()
		sinks = append(sinks, notify.NewKafkaSink(writer, cfg.KafkaTopicPrefix))
	}

	dispatcher := notify.NewDispatcher(logger, cfg.NotifyQueueSize, sinks...)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logging.Middleware(logger), gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Repo:     repo,
		Sessions: sessions,
		Notifier: dispatcher,
		Clock:    timezone.System(),
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error("notification dispatcher did not drain", zap.Error(err))
	}
	return nil
}
