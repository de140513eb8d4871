package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alwaysmad/bookkeeper/internal/repository"
)

// Equaler is implemented by every entity kind.
type Equaler[T any] interface {
	Equal(other T) bool
}

// Contract describes one entity kind for RunContract.
type Contract[T Equaler[T]] struct {
	// New returns an empty repository.
	New func(t *testing.T) repository.Repository[T]
	// Modify returns a copy of item with every non-key field changed.
	Modify func(item T) T
	// Filter returns a filter on a non-key field that matches item.
	Filter  func(item T) repository.Filter
	Desc    repository.Descriptor[T]
	Samples []T
}

// RunContract checks that a repository implementation honors the repository contract.
// It is run against every implementation so that they stay interchangeable.
func RunContract[T Equaler[T]](t *testing.T, c Contract[T]) {
	t.Helper()
	require.GreaterOrEqual(t, len(c.Samples), 2, "contract needs at least two samples")
	ctx := context.Background()

	addAll := func(t *testing.T, repo repository.Repository[T]) []T {
		t.Helper()
		added := make([]T, 0, len(c.Samples))
		for _, s := range c.Samples {
			item, err := repo.Add(ctx, s)
			require.NoError(t, err)
			added = append(added, item)
		}
		return added
	}

	t.Run("add assigns unique keys", func(t *testing.T) {
		repo := c.New(t)
		added := addAll(t, repo)
		seen := map[int64]bool{}
		for i, item := range added {
			pk := c.Desc.PK(item)
			assert.NotZero(t, pk)
			assert.False(t, seen[pk], "key %d issued twice", pk)
			seen[pk] = true
			assert.Zero(t, c.Desc.PK(c.Samples[i]), "sample must not be mutated")
		}
	})

	t.Run("get returns the added value", func(t *testing.T) {
		repo := c.New(t)
		for i, item := range addAll(t, repo) {
			got, err := repo.Get(ctx, c.Desc.PK(item))
			require.NoError(t, err)
			want := c.Desc.WithPK(c.Samples[i], c.Desc.PK(item))
			assert.True(t, want.Equal(got), "want %v, got %v", want, got)
		}
	})

	t.Run("add with key fails", func(t *testing.T) {
		repo := c.New(t)
		_, err := repo.Add(ctx, c.Desc.WithPK(c.Samples[0], 42))
		assert.ErrorIs(t, err, repository.ErrInvalidState)
	})

	t.Run("get missing key fails", func(t *testing.T) {
		repo := c.New(t)
		_, err := repo.Get(ctx, 9999)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("get all keeps insertion order", func(t *testing.T) {
		repo := c.New(t)
		empty, err := repo.GetAll(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)

		added := addAll(t, repo)
		all, err := repo.GetAll(ctx, nil)
		require.NoError(t, err)
		require.Len(t, all, len(added))
		for i := range added {
			assert.True(t, added[i].Equal(all[i]), "position %d: want %v, got %v", i, added[i], all[i])
		}
	})

	t.Run("get all filters on exact match", func(t *testing.T) {
		repo := c.New(t)
		added := addAll(t, repo)
		filter := c.Filter(added[0])

		var want []T
		for _, item := range added {
			if assert.ObjectsAreEqual(filter, c.Filter(item)) {
				want = append(want, item)
			}
		}

		got, err := repo.GetAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			assert.True(t, want[i].Equal(got[i]))
		}
	})

	t.Run("get all filters on key", func(t *testing.T) {
		repo := c.New(t)
		added := addAll(t, repo)
		pk := c.Desc.PK(added[1])

		got, err := repo.GetAll(ctx, repository.Filter{repository.PKColumn: pk})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, added[1].Equal(got[0]))
	})

	t.Run("get all rejects unknown field", func(t *testing.T) {
		repo := c.New(t)
		_, err := repo.GetAll(ctx, repository.Filter{"no_such_field": 1})
		assert.ErrorIs(t, err, repository.ErrInvalidFilter)
	})

	t.Run("update replaces the row", func(t *testing.T) {
		repo := c.New(t)
		added := addAll(t, repo)
		changed := c.Modify(added[0])
		require.NoError(t, repo.Update(ctx, changed))

		got, err := repo.Get(ctx, c.Desc.PK(added[0]))
		require.NoError(t, err)
		assert.True(t, changed.Equal(got), "want %v, got %v", changed, got)

		other, err := repo.Get(ctx, c.Desc.PK(added[1]))
		require.NoError(t, err)
		assert.True(t, added[1].Equal(other), "unrelated row changed")
	})

	t.Run("update missing key fails", func(t *testing.T) {
		repo := c.New(t)
		err := repo.Update(ctx, c.Desc.WithPK(c.Samples[0], 9999))
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete removes the row once", func(t *testing.T) {
		repo := c.New(t)
		added := addAll(t, repo)
		pk := c.Desc.PK(added[0])

		require.NoError(t, repo.Delete(ctx, pk))
		_, err := repo.Get(ctx, pk)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, pk), repository.ErrNotFound)

		all, err := repo.GetAll(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, len(added)-1)
	})

	t.Run("deleted keys are not reused", func(t *testing.T) {
		repo := c.New(t)
		added := addAll(t, repo)
		last := c.Desc.PK(added[len(added)-1])
		require.NoError(t, repo.Delete(ctx, last))

		again, err := repo.Add(ctx, c.Samples[0])
		require.NoError(t, err)
		assert.Greater(t, c.Desc.PK(again), last)
	})
}
