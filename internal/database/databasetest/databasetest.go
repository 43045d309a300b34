// Package databasetest provides throwaway migrated databases for store tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"github.com/MrJamesThe3rd/invoicely/internal/database"
)

// NewSQLite returns a freshly migrated sqlite database that is closed when the test ends.
func NewSQLite(t testing.TB) *database.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	if err := database.Migrate(database.DriverSQLite, path); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	db, err := database.New(database.DriverSQLite, path)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
