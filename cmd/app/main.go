package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/takeyourtrade/collection-service/internal/auth"
	"github.com/takeyourtrade/collection-service/internal/collection"
	"github.com/takeyourtrade/collection-service/internal/config"
	"github.com/takeyourtrade/collection-service/internal/database"
	"github.com/takeyourtrade/collection-service/internal/database/postgres"
	"github.com/takeyourtrade/collection-service/internal/handler"
	"github.com/takeyourtrade/collection-service/internal/logger"
	"github.com/takeyourtrade/collection-service/internal/server"
)

const (
	dbMaxConns        = 10
	dbMaxConnIdleTime = 5 * time.Minute
	dbMaxConnLifetime = 30 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.GetDBConnString()
	if err := database.Migrate(ctx, dsn); err != nil {
		slog.Error("Migrations failed", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:      dsn,
		MaxConns:        dbMaxConns,
		MaxConnIdleTime: dbMaxConnIdleTime,
		MaxConnLifetime: dbMaxConnLifetime,
	})
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewItemRepository(pool)
	collectionService := collection.NewService(repo)

	keySet := auth.NewKeySetCache(auth.DefaultKeySetTTL, nil)
	verifier := auth.NewVerifier(keySet, cfg.JWKSURL, cfg.JWTAudience, cfg.JWTIssuer)

	handler.InitValidator()

	srv := server.NewServer(server.Config{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
	}, pool, verifier, collectionService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
