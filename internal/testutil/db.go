// Package testutil opens throwaway migrated databases for tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/okrledger/internal/db"
)

// NewDB returns a migrated SQLite database living in t.TempDir().
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	database, err := db.Open("sqlite", dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}

// InsertUser writes a user row and returns its ID.
func InsertUser(t *testing.T, database *sqlx.DB, email, role string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := database.Exec(`INSERT INTO users (id, email, name, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, email, email, role, time.Now().UTC())
	require.NoError(t, err)
	return id
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
