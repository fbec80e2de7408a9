// Package store is the relational persistence layer: account state plus an
// append-only transaction log, with atomic read-modify-write under row locks.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/rs/zerolog"

	"github.com/yashasviy/overdraft-ledger-api/config"
)

const connectAttempts = 3

// Store wraps the Postgres connection pool. All operations bound themselves
// with the configured command timeout.
type Store struct {
	db         *sql.DB
	cmdTimeout time.Duration
	log        zerolog.Logger
}

// Connect opens the pool and verifies the connection, retrying with doubling
// backoff before giving up. Pool exhaustion at runtime blocks callers until a
// connection frees or their context expires.
func Connect(cfg config.Config, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DatabasePoolMaxSize)
	db.SetMaxIdleConns(cfg.DatabasePoolMinSize)
	db.SetConnMaxLifetime(30 * time.Minute)

	var pingErr error
	delay := time.Second
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.ConnectionTimeout)
		pingErr = db.PingContext(pingCtx)
		cancel()
		if pingErr == nil {
			break
		}
		if attempt < connectAttempts {
			log.Warn().Err(pingErr).Int("attempt", attempt).Dur("retry_in", delay).Msg("postgres not ready")
			time.Sleep(delay)
			delay *= 2
		}
	}
	if pingErr != nil {
		db.Close()
		return nil, fmt.Errorf("connect postgres after %d attempts: %w", connectAttempts, pingErr)
	}

	log.Info().Int("pool_max", cfg.DatabasePoolMaxSize).Int("pool_min", cfg.DatabasePoolMinSize).Msg("postgres connected")
	return &Store{db: db, cmdTimeout: cfg.CommandTimeout, log: log}, nil
}

// Stats exposes the connection pool gauges for the metrics endpoint.
func (s *Store) Stats() sql.DBStats {
	return s.db.Stats()
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cmdTimeout)
}
