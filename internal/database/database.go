// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// It specifically handles *database pooling* (maintaining
// active connections for efficiency) and integrating
// the logger/tracer with the database driver (PGX).
//
// It handles:
//   - building the pool config from DB_URL and the credential overrides
//   - creating a pgx connection pool (pgxpool)
//   - wiring query tracing/logging (pgx tracelog, slow queries)
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	pgxzero "github.com/jackc/pgx-zerolog"

	"github.com/deppfellow/account-service/internal/config"
	loggerConfig "github.com/deppfellow/account-service/internal/logger"
)

// Database wraps the pgx connection pool and a logger.
//
// Pool is the shared connection pool.
// log is used for lifecycle logs (connect/close, etc.).
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// New creates a PostgreSQL connection pool with query tracing.
//
// Behavior:
//   - Parse DB_URL (a leading "jdbc:" is accepted and dropped)
//   - Override user/password when DB_USER/DB_PASSWORD are set
//   - In local env: attach the SQL tracelogger
//   - Attach the slow query tracer unless the threshold is 0
//   - Create pool, ping it within DB_PING_TIMEOUT, and return Database
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	pgxPoolConfig, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	var tracers []pgx.QueryTracer

	// Per-query SQL logging is very noisy, which is why it's only in local.
	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	if cfg.Logging.SlowQueryThreshold > 0 {
		tracers = append(tracers, newSlowQueryTracer(logger, cfg.Logging.SlowQueryThreshold))
	}

	// pgx has a single tracer slot. Chain when more than one is configured.
	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	database := &Database{
		Pool: pool,
		log:  logger,
	}

	// Ping the DB with a timeout, so startup fails fast if DB is down.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.PingTimeout)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", pgxPoolConfig.ConnConfig.Host).
		Str("database", pgxPoolConfig.ConnConfig.Database).
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Msg("connected to the database")

	return database, nil
}

// poolConfig parses DB_URL and applies credentials and pool tuning.
//
// The password is set on the parsed config instead of being spliced into the
// URL, so it needs no escaping.
func poolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	dsn := strings.TrimPrefix(cfg.Database.URL, "jdbc:")

	pgxPoolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		// The parse error may echo the URL, which can hold credentials.
		return nil, errors.New("failed to parse pgx pool config from DB_URL")
	}

	if cfg.Database.User != "" {
		pgxPoolConfig.ConnConfig.User = cfg.Database.User
	}
	if cfg.Database.Password != "" {
		pgxPoolConfig.ConnConfig.Password = cfg.Database.Password
	}

	pgxPoolConfig.MaxConns = cfg.Database.MaxConns
	pgxPoolConfig.MinConns = cfg.Database.MinConns
	pgxPoolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	pgxPoolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	return pgxPoolConfig, nil
}

// Ping verifies a connection can be acquired and used.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close closes the database connection pool.
//
// Returns nil currently because pgxpool.Close doesn't return error.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
