// Package dbtest opens a migrated Postgres database for integration tests.
package dbtest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/FransiTsena/fitme-sub001/internal/db"
)

// Open connects to TEST_DSN, applies migrations and empties every table.
// The test is skipped under -short or when TEST_DSN is unset.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}
	dsn := os.Getenv("TEST_DSN")
	if dsn == "" {
		t.Skip("TEST_DSN not set")
	}

	conn, err := db.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(conn, migrationsDir()))

	_, err = conn.Exec(`TRUNCATE trainer_promotions, session_bookings, training_sessions, trainers,
		user_memberships, payments, membership_plans, gyms, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return conn
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

// MustInsert runs a seed INSERT ... RETURNING id and returns the id.
func MustInsert(t *testing.T, conn *sqlx.DB, query string, args ...interface{}) int {
	t.Helper()

	var id int
	require.NoError(t, conn.Get(&id, query, args...))
	return id
}
