package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignatzorin/freelance-bidding/internal/config"
	"github.com/ignatzorin/freelance-bidding/internal/db"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/goroutine"
	httpRouter "github.com/ignatzorin/freelance-bidding/internal/http/router"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/events"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/memory"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/persistence"
	"github.com/ignatzorin/freelance-bidding/internal/logger"
	"github.com/ignatzorin/freelance-bidding/internal/service"
	"github.com/ignatzorin/freelance-bidding/internal/validation"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: config: %v", err)
	}

	logger.Init(cfg.LogLevel, !cfg.IsProduction())
	appLog := logger.L()

	if err := validation.RegisterBindings(); err != nil {
		log.Fatalf("main: %v", err)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("main: storage: %v", err)
	}
	defer safeClose("storage", closeStore)

	// События уходят в Redis, если он настроен, иначе только в лог.
	var sink repository.EventPublisher = events.NewLogPublisher(appLog)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer safeClose("redis", client)

		if err := client.Ping(ctx).Err(); err != nil {
			appLog.WithError(err).Warn("main: redis is unavailable, events will be retried per publish")
		}
		sink = events.NewRedisPublisher(client, cfg.Redis.Channel)
	}

	background := goroutine.NewGroup(appLog)
	publisher := events.NewAsyncPublisher(sink, background, appLog)

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	handlers, err := httpRouter.NewHandlers(cfg, store, publisher, tokenManager)
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	engine := httpRouter.SetupRouter(cfg, handlers, tokenManager, appLog)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("main: http server shutdown")
		}
		if err := background.Wait(shutdownCtx); err != nil {
			appLog.WithError(err).Warn("main: background publishers did not finish")
		}
	}()

	appLog.WithField("port", cfg.HTTPPort).WithField("storage", cfg.StorageDriver).Info("main: http server started")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("main: http server: %v", err)
	}
	<-shutdownDone
}

// openStore поднимает хранилище выбранного драйвера. Для PostgreSQL применяются миграции.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, io.Closer, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.L().Warn("main: in-memory storage, data is lost on restart")
		return memory.NewStore(), io.NopCloser(nil), nil
	}

	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.PoolConfig{
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := db.MigrateUp(conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return persistence.NewStore(conn), conn, nil
}

func safeClose(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("main: close %s: %v", name, err)
	}
}
