package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenSQLiteReport opens a SQLite report written by the exporter
func OpenSQLiteReport(t *testing.T, path string) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open SQLite report %s: %v", path, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CountRows counts the rows of a table
func CountRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}
