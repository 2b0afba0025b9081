// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habits/internal/db"
)

// New returns a migrated SQLite database stored in the test's temp dir.
// It is closed automatically when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "habits.db") +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	database, err := db.Init("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}
