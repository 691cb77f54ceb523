package migration

import (
	"errors"
	"fmt"
	"path"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the migration drivers for both supported databases.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"budgetkeeper/internal/app/server/config"
)

// Migrator mirrors the migrate.Migrate surface this package needs.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine builds a migrator; injectable so tests stay away from the
// filesystem and the database.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	cfg    *config.Config
	engine MigrationEngine
}

func NewMigration(conf *config.Config, engine MigrationEngine) *Migration {
	return &Migration{
		cfg:    conf,
		engine: engine,
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up applies all pending migrations. The DDL dialects differ, so each driver
// reads its own subdirectory of the migrations path.
func (mg *Migration) Up() (err error) {
	driver := mg.cfg.DB.Driver
	if driver == "" {
		driver = "sqlite3"
	}
	sourceURL := "file://" + path.Join(mg.cfg.DB.Migrations, driver)

	databaseURL := mg.cfg.DB.DatabaseURI
	if driver == "sqlite3" {
		databaseURL = "sqlite3://" + databaseURL
	}

	var m Migrator
	m, err = mg.engine(sourceURL, databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w; migration up error", err)
	}
	return nil
}
