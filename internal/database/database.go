// Package database owns the pgx connection pool and schema migrations.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the subset of pgxpool.Pool the rest of the service depends on.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// Pool sizing fallbacks for PoolConfig fields left at zero.
const (
	defaultMaxConns = 10
	defaultMinConns = 2
)

// PoolConfig describes the connection pool to open.
type PoolConfig struct {
	ConnString      string
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
}

// NewPool opens a connection pool and verifies it with a ping before
// handing it out.
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	pgxCfg, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	pgxCfg.MaxConns = cfg.MaxConns
	if pgxCfg.MaxConns < 1 {
		pgxCfg.MaxConns = defaultMaxConns
	}
	pgxCfg.MinConns = cfg.MinConns
	if pgxCfg.MinConns < 1 {
		pgxCfg.MinConns = defaultMinConns
	}
	pgxCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	pgxCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Default().Info("Database connection pool ready",
		"max_conns", pgxCfg.MaxConns,
		"min_conns", pgxCfg.MinConns)
	return pool, nil
}
