// Package testutil provides shared fixtures and the repository contract suite.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alwaysmad/bookkeeper/internal/storage"
)

// SetupTestDB opens a fresh SQLite file under t.TempDir and returns the
// repositories of every entity kind. The store is closed on cleanup.
func SetupTestDB(t *testing.T) (*storage.SQLiteStore, *storage.Repositories) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "bookkeeper.db"))
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = store.Close() })

	repos, err := storage.OpenRepositories(context.Background(), store)
	require.NoError(t, err, "failed to create repositories")

	return store, repos
}
