package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"docshare/internal/auth"
	"docshare/internal/config"
	"docshare/internal/database"
	"docshare/internal/database/migration"
	handlers "docshare/internal/http/handler"
	"docshare/internal/http/middleware"
	"docshare/internal/logger"
	"docshare/internal/notify"
	"docshare/internal/otel"
	"docshare/internal/repository"
	"docshare/internal/repository/memory"
	"docshare/internal/repository/postgres"
	"docshare/internal/service"
	"docshare/internal/sharelink"
	"docshare/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// @title Docshare API
// @version 1.0
// @description Upload PDFs, share them by link and discuss them in comments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Production)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("server_exited", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	db, docRepo, commentRepo, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	objStore, err := openObjectStorage(ctx, cfg, log)
	if err != nil {
		return err
	}

	tokens, err := auth.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Hour)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	minter, err := sharelink.NewMinter(cfg.BaseURL, sharelink.DefaultTokenBytes)
	if err != nil {
		return fmt.Errorf("init link minter: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	backend, closeBackend, err := openNotifier(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeBackend()
	dispatcher, err := notify.NewDispatcher(backend, log, reg, notify.Options{
		MaxAttempts:     cfg.Notify.MaxAttempts,
		InitialInterval: time.Duration(cfg.Notify.InitialIntervalMs) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("init notifications: %w", err)
	}

	docSvc := service.NewDocumentService(objStore, docRepo, service.DocumentOptions{
		MaxUploadBytes: int64(cfg.MaxUploadBytes),
		PresignTTL:     time.Duration(cfg.PresignTTLSec) * time.Second,
	})
	sharingSvc := service.NewSharingService(docRepo, minter, dispatcher, log)
	resolver := service.NewAccessResolver(docRepo)
	commentSvc := service.NewCommentService(docRepo, commentRepo)

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("init http metrics: %w", err)
	}

	app := fiber.New(handlers.AppConfig(cfg.MaxUploadBytes))
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:           db,
		Documents:    docSvc,
		Sharing:      sharingSvc,
		Resolver:     resolver,
		Comments:     commentSvc,
		Authenticate: middleware.Authenticate(tokens),
		Metrics:      reg,
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info("server_listening", zap.String("addr", ":"+cfg.Port), zap.String("store", cfg.Store))
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("server_shutting_down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Warn("http_shutdown_failed", zap.Error(err))
	}

	wctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := dispatcher.Wait(wctx); err != nil {
		log.Warn("notifications_abandoned", zap.Error(err))
	}
	return nil
}

// openStore returns the repositories for cfg.Store. db is nil for the in-memory store.
func openStore(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*sql.DB, repository.DocumentRepository, repository.CommentRepository, error) {
	switch cfg.Store {
	case "memory":
		log.Warn("using_memory_store", zap.String("reason", "APP_STORE=memory; data is lost on restart"))
		s := memory.NewStore()
		return nil, s.Documents(), s.Comments(), nil
	case "postgres":
		db, err := database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		return db, postgres.NewDocumentPostgres(db), postgres.NewCommentPostgres(db), nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown APP_STORE %q", cfg.Store)
	}
}

// openObjectStorage returns nil when no MinIO endpoint is configured; only external
// storage references can then be registered.
func openObjectStorage(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (storage.Storage, error) {
	if cfg.MinIO.Endpoint == "" {
		log.Warn("object_storage_disabled")
		return nil, nil
	}
	s, err := storage.NewMinIO(ctx, cfg.MinIO, log)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	return s, nil
}

func openNotifier(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (notify.Notifier, func(), error) {
	switch cfg.Notify.Backend {
	case "log":
		return notify.NewLogNotifier(log), func() {}, nil
	case "redis":
		client, err := notify.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		closeClient := func() {
			if err := client.Close(); err != nil {
				log.Warn("redis_close_failed", zap.Error(err))
			}
		}
		return notify.NewRedisOutbox(client, cfg.Notify.OutboxKey), closeClient, nil
	default:
		return nil, nil, errors.New("NOTIFY_BACKEND must be log or redis")
	}
}
