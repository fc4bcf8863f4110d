package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq" // PostgreSQL driver
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"filmix-backend/internal/config"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Connect opens the configured database and applies the schema.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driver, dsn := DSN(cfg)

	db, err := Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Connected to database", zap.String("driver", driver))
	return db, nil
}

// DSN returns the driver name and data source for cfg.
func DSN(cfg *config.Config) (string, string) {
	if cfg.DBDriver == config.DriverPostgres {
		return config.DriverPostgres, fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
	}

	return config.DriverSQLite, fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", cfg.DBPath)
}

// Open connects with an explicit driver and DSN and migrates the schema.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == config.DriverSQLite {
		// SQLite serializes writers; a single connection avoids SQLITE_BUSY under load.
		db.SetMaxOpenConns(1)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates missing tables and indexes. Statements are idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	name := "schema/sqlite.sql"
	if db.DriverName() == config.DriverPostgres {
		name = "schema/postgres.sql"
	}

	schema, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err comes from a UNIQUE constraint,
// for either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

// ViolatesColumn reports whether err is a unique violation that names column.
// Postgres reports the constraint name (users_email_key), SQLite the
// qualified column (users.email); both contain the column name.
func ViolatesColumn(err error, column string) bool {
	if !IsUniqueViolation(err) {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return strings.Contains(pqErr.Constraint, column) || strings.Contains(pqErr.Detail, "("+column+")")
	}

	return strings.Contains(err.Error(), "."+column)
}
