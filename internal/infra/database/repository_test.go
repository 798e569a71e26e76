package database

import (
	"database/sql"
	"os"
	"testing"
)

// testDB opens a pool against TEST_DATABASE_URL. Repository tests that need
// a real Postgres skip when the variable is unset.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := NewDBConnection(url)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
