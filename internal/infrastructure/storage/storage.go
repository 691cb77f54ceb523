// Package storage opens the server database. Both SQLite (the default, good
// for single-host deployments) and PostgreSQL via pgx are supported; every
// repository speaks database/sql so the choice stays a config knob.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"budgetkeeper/internal/app/server/config"
	"budgetkeeper/internal/infrastructure/migration"
)

// Open connects to the configured database, applies pending migrations and
// returns the handle.
func Open(cfg *config.Config) (*sql.DB, error) {
	driver, dsn, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == "sqlite3" {
		// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	mg := migration.NewMigration(cfg, migration.DefaultEngine)
	if err := mg.Up(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return db, nil
}

func resolve(cfg *config.Config) (driver, dsn string, err error) {
	switch cfg.DB.Driver {
	case "sqlite3", "":
		return "sqlite3", cfg.DB.DatabaseURI + "?_foreign_keys=on&_journal_mode=WAL", nil
	case "postgres", "pgx":
		return "pgx", cfg.DB.DatabaseURI, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}
