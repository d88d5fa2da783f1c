package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/config"
)

// PostgresDB wraps the pgx connection pool and its lifecycle.
type PostgresDB struct {
	Pool   *pgxpool.Pool
	Config *config.DatabaseConfig
}

func NewPostgresDB(cfg *config.DatabaseConfig) *PostgresDB {
	return &PostgresDB{Config: cfg}
}

func (db *PostgresDB) buildConnectionString() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		db.Config.User,
		db.Config.Password,
		db.Config.Host,
		db.Config.Port,
		db.Config.Database,
		db.Config.SSLMode,
	)
}

func (db *PostgresDB) configurePool() (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(db.buildConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolCfg.MaxConns = int32(db.Config.MaxConns)
	poolCfg.MinConns = int32(db.Config.MinConns)
	poolCfg.MaxConnLifetime = db.Config.MaxConnLifetime
	poolCfg.MaxConnIdleTime = db.Config.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = db.Config.HealthCheckPeriod
	poolCfg.ConnConfig.ConnectTimeout = db.Config.ConnectTimeout

	return poolCfg, nil
}

// Connect establishes the pool, retrying with exponential backoff.
func (db *PostgresDB) Connect(ctx context.Context) error {
	poolCfg, err := db.configurePool()
	if err != nil {
		return err
	}

	var pool *pgxpool.Pool
	var lastErr error
	delay := db.Config.RetryDelay

	for attempt := 1; attempt <= db.Config.MaxRetries; attempt++ {
		connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
		pool, lastErr = pgxpool.NewWithConfig(connectCtx, poolCfg)
		cancel()

		if lastErr == nil {
			if err := pool.Ping(ctx); err != nil {
				pool.Close()
				lastErr = err
			} else {
				db.Pool = pool
				return nil
			}
		}

		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Int("max_retries", db.Config.MaxRetries).
			Msg("database connection attempt failed")

		if attempt < db.Config.MaxRetries {
			select {
			case <-time.After(delay):
				delay *= 2
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", db.Config.MaxRetries, lastErr)
}

func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
