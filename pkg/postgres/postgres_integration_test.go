//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationDB(t *testing.T) *DB {
	t.Helper()
	connString := os.Getenv("CREWPLAN_TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("CREWPLAN_TEST_DATABASE_URL not set, skipping integration test")
	}
	db, err := NewDB(context.Background(), connString)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestRunMigrations_AppliedOnceAndRecorded(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()

	require.NoError(t, db.RunMigrations(ctx))

	var count int
	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count)
	require.NoError(t, err)
	assert.Greater(t, count, 0)

	// A second run sees every migration recorded and applies nothing.
	require.NoError(t, db.RunMigrations(ctx))

	var recount int
	err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&recount)
	require.NoError(t, err)
	assert.Equal(t, count, recount)

	// The recorded migrations left the schema behind.
	var workers int
	err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM worker`).Scan(&workers)
	assert.NoError(t, err)
}
