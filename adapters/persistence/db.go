package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// ErrDatabaseUnreachable marks a failed startup ping. Callers keep serving from
// memory; any other ConnectAndProvision error is a schema failure.
var ErrDatabaseUnreachable = errors.New("database unreachable")

// NewPostgresPool builds the pool without requiring the database to be up:
// an unreachable server is reported by Ping and handled by the fallback store.
func NewPostgresPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("do not create connection pool: %w", err)
	}
	return pool, nil
}

// ConnectAndProvision pings the database and provisions the schema.
func ConnectAndProvision(ctx context.Context, pool *pgxpool.Pool, log logger.Logger) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseUnreachable, err)
	}
	log.Info("Connect PostgreSQL successfully.")

	if err := ProvisionSchema(ctx, pool); err != nil {
		return err
	}
	log.Info("Database schema provisioned.")
	return nil
}
