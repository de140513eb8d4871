// Package repository defines the storage-agnostic CRUD contract every entity kind is accessed through.
package repository

import (
	"context"
	"errors"
)

// Contract errors.
var (
	// ErrNotFound is returned when a primary key does not reference a stored row.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState is returned when Add is called with a primary key already assigned.
	ErrInvalidState = errors.New("primary key already assigned")
	// ErrInvalidFilter is returned when a filter names a field the entity does not have.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Filter restricts GetAll to rows where every named field equals the given value.
// A nil or empty filter matches every row.
type Filter map[string]any

// Repository is the CRUD contract shared by all storage implementations.
//
// Implementations must be behaviorally interchangeable: a primary key of 0 means
// "not yet persisted", Add assigns a fresh key exactly once, keys are never
// reused after deletion and GetAll returns rows in insertion order.
type Repository[T any] interface {
	// Add persists item and returns it with its newly assigned primary key.
	Add(ctx context.Context, item T) (T, error)
	// Get returns the row with the given primary key.
	Get(ctx context.Context, pk int64) (T, error)
	// GetAll returns every row matching filter.
	GetAll(ctx context.Context, filter Filter) ([]T, error)
	// Update replaces the whole row identified by the item's primary key.
	Update(ctx context.Context, item T) error
	// Delete removes the row with the given primary key.
	Delete(ctx context.Context, pk int64) error
}
