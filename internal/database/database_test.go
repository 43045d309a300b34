package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicely/internal/database"
)

func TestDB_Rebind(t *testing.T) {
	query := "UPDATE clients SET name = ? WHERE id = ? AND user_id = ?"

	pg := &database.DB{Driver: database.DriverPostgres}
	assert.Equal(t, "UPDATE clients SET name = $1 WHERE id = $2 AND user_id = $3", pg.Rebind(query))

	lite := &database.DB{Driver: database.DriverSQLite}
	assert.Equal(t, query, lite.Rebind(query))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := database.New(database.DriverMemory, "")
	assert.Error(t, err)
}

func TestMigrate_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoicely.db")

	require.NoError(t, database.Migrate(database.DriverSQLite, path))
	// Second run is a no-op.
	require.NoError(t, database.Migrate(database.DriverSQLite, path))

	db, err := database.New(database.DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"clients", "invoices", "time_entries"} {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n), table)
		assert.Zero(t, n, table)
	}
}
