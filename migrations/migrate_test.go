package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func TestUpSQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, Up(db, "sqlite3"))

	for _, table := range []string{
		"users", "patients", "clinicians", "appointments",
		"consultations", "payments", "clinical_histories",
	} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoErrorf(t, err, "table %s should exist", table)
	}

	// applying an already-applied schema is a no-op
	require.NoError(t, Up(db, "sqlite3"))
}

func TestUpUnknownDriver(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = Up(db, "oracle")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no migrations")
}
