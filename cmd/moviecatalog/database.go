package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// retryPolicy bounds how long start-up waits for the database.
type retryPolicy struct {
	PingTimeout    time.Duration
	MaxWait        time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

var defaultRetryPolicy = retryPolicy{
	PingTimeout:    5 * time.Second,
	MaxWait:        30 * time.Second,
	InitialBackoff: 500 * time.Millisecond,
	MaxBackoff:     5 * time.Second,
}

// openDatabase opens a pool for the configured driver and blocks until the
// server answers a ping.
func openDatabase(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := waitForDatabase(ctx, db, defaultRetryPolicy); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// waitForDatabase pings with exponential backoff until the database responds,
// policy.MaxWait elapses or ctx is cancelled.
func waitForDatabase(ctx context.Context, db pinger, policy retryPolicy) error {
	deadline := time.Now().Add(policy.MaxWait)
	backoff := policy.InitialBackoff

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, policy.PingTimeout)
		err := db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}

		if ctx.Err() != nil || time.Now().After(deadline) {
			return fmt.Errorf("ping database after %d attempts: %w", attempt, err)
		}

		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", backoff).Msg("database not ready")

		select {
		case <-ctx.Done():
			return fmt.Errorf("ping database: %w", ctx.Err())
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, policy.MaxBackoff)
	}
}
