package testutil

import (
	"database/sql"
	_ "embed"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// schema mirrors the tables and views the portal reads from.
//
//go:embed schema.sql
var schema string

// OpenDB connects to TEST_DATABASE_URL, skipping the test when it is not set.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	if err = db.Ping(); err != nil {
		t.Fatalf("OpenDB() ping failed: %v", err)
	}
	return db
}

// PrepareDB creates a throwaway schema holding the portal tables and returns a pool bound to it.
// The schema is dropped when the test ends.
func PrepareDB(t *testing.T) *sql.DB {
	t.Helper()

	admin := OpenDB(t)
	name := "test_" + strings.ReplaceAll(uuid.New().String(), "-", "_")
	if _, err := admin.Exec(`CREATE SCHEMA ` + name); err != nil {
		t.Fatalf("PrepareDB() create schema failed: %v", err)
	}

	u, err := url.Parse(os.Getenv("TEST_DATABASE_URL"))
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	q := u.Query()
	q.Set("search_path", name)
	u.RawQuery = q.Encode()

	db, err := sql.Open("postgres", u.String())
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
		if _, err := admin.Exec(`DROP SCHEMA ` + name + ` CASCADE`); err != nil {
			t.Errorf("PrepareDB() drop schema failed: %v", err)
		}
		_ = admin.Close()
	})

	if _, err = db.Exec(schema); err != nil {
		t.Fatalf("PrepareDB() schema failed: %v", err)
	}
	return db
}

// Exec runs a fixture statement.
func Exec(t *testing.T, db *sql.DB, query string, args ...interface{}) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("Exec(%q) failed: %v", query, err)
	}
}
