package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cimillas/event-tickets/internal/testutil"
	"github.com/cimillas/event-tickets/migrations"
)

func TestNames_Sorted(t *testing.T) {
	names, err := migrations.Names()
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, "0001_create_events.sql", names[0])
	assert.Equal(t, "0002_create_tickets.sql", names[1])
}

func TestApply_RecordsMigrations(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `DROP TABLE IF EXISTS tickets, events, schema_migrations`)
	require.NoError(t, err, "drop tables")

	require.NoError(t, migrations.Apply(ctx, pool))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 2, count)

	require.NoError(t, migrations.Apply(ctx, pool), "re-apply migrations")

	var count2 int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count2))
	assert.Equal(t, count, count2, "migration count should be unchanged")
}
