// Package db подготавливает базу данных сервиса: применяет миграции и открывает пул соединений.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"geoprofiles/internal/api/config"
	"geoprofiles/internal/api/resilience"
	"geoprofiles/pkg/db/postgres"
	"geoprofiles/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing profiles database"
	LogDBInitialized     = "profiles database initialized successfully"
	LogMigrationStarting = "starting database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBInit       = "failed to initialize profiles database"
	ErrDBMigrations = "failed to apply database migrations"
	ErrDBConnection = "failed to connect to profiles database"
	ErrGetPath      = "failed to get path"
)

// DB представляет соединение с базой данных сервиса профилей.
type DB struct {
	database *postgres.Database
}

// New применяет миграции и открывает пул. База может подниматься дольше сервиса,
// поэтому обе операции повторяются cfg.ConnectRetries раз.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsURL, err := migrationsSource(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.ConnectRetries
	retry := resilience.NewRetry("postgres-startup", retryCfg)

	database, err := resilience.ExecuteWithResult(ctx, retry, func() (*postgres.Database, error) {
		log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsURL))
		if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsURL); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
		}

		database, err := postgres.New(ctx, cfg.GetDSN(), postgres.PoolOptions{
			MinConns:        cfg.MinConn,
			MaxConns:        cfg.MaxConn,
			MaxConnLifetime: cfg.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
		}
		return database, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBInit, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{
		database: database,
	}, nil
}

// migrationsSource строит URL источника миграций для golang-migrate.
func migrationsSource(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + filepath.ToSlash(dir), nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + filepath.ToSlash(absPath), nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
