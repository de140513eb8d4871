package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexExists(t *testing.T, store *SQLiteStore, name string) bool {
	t.Helper()
	var count int
	err := store.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?`, name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestOpenRepositories_Migrates(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := OpenRepositories(ctx, store)
	require.NoError(t, err)

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
	assert.True(t, indexExists(t, store, "idx_expense_date"))
	assert.True(t, indexExists(t, store, "idx_expense_category"))
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := OpenRepositories(ctx, store)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	_, err = OpenRepositories(ctx, store)
	require.NoError(t, err)

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, "PRAGMA user_version = 99")
	require.NoError(t, err)

	_, err = OpenRepositories(ctx, store)
	assert.ErrorContains(t, err, "newer than supported")
}

func TestMigrate_NilContext(t *testing.T) {
	store := createTestStorage(t)
	//nolint:staticcheck // testing nil context handling
	assert.ErrorIs(t, store.Migrate(nil), ErrNilContext)
}
