package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names for the two supported backends.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// DB wraps database/sql with the dialect it was opened for.
type DB struct {
	*sql.DB
	Dialect string
}

// Open connects to the database selected by the DSN. Postgres DSNs go through
// a pgx pool wrapped for database/sql; anything else is treated as a sqlite
// path (optionally prefixed with "sqlite:"). The returned closer releases the
// pool as well as the sql.DB.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, func(), error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return openPostgres(ctx, cfg, logger)
	}
	return openSQLite(cfg, logger)
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, func(), error) {
	logger.Info("connecting to database", "dialect", DialectPostgres)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database DSN", "error", err)
		return nil, nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "deliverydesk"

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	closer := func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
		pool.Close()
	}
	logger.Info("successfully connected to database")
	return &DB{DB: db, Dialect: DialectPostgres}, closer, nil
}

func openSQLite(cfg Config, logger *slog.Logger) (*DB, func(), error) {
	path := strings.TrimPrefix(cfg.DSN, "sqlite:")
	logger.Info("opening database", "dialect", DialectSQLite, "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, nil, err
	}
	// A single connection keeps in-memory databases coherent and sidesteps
	// sqlite write contention.
	db.SetMaxOpenConns(1)

	closer := func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	return &DB{DB: db, Dialect: DialectSQLite}, closer, nil
}

// HealthCheck pings the database to catch DSN issues early.
func HealthCheck(ctx context.Context, db *DB, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		return err
	}
	logger.Debug("database ping successful")
	return nil
}
