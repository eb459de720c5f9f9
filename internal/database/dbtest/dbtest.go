// Package dbtest opens migrated in-memory stores for tests.
package dbtest

import (
	"testing"

	"media-report/internal/config"
	"media-report/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
