// Package database applies the embedded schema migrations.
package database

import (
	"embed"
	"errors"
	"fmt"

	"media-report/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations
var migrations embed.FS

// Migrate brings the schema up to date for the dialect behind db.
func Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	var (
		dst migratedb.Driver
		dir string
	)
	dialect := db.Dialector.Name()
	switch dialect {
	case "mysql":
		dst, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
		dir = "migrations/mysql"
	case "sqlite":
		dst, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
		dir = "migrations/sqlite3"
	default:
		return fmt.Errorf("no migrations for dialect %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrations, dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, dst)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}

	// m.Close would close the shared *sql.DB, so it is not called
	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Debug("db.migrate: up to date", "dialect", dialect)
	case err != nil:
		return fmt.Errorf("migrate up: %w", err)
	default:
		logger.Info("db.migrate: applied", "dialect", dialect)
	}
	return nil
}
