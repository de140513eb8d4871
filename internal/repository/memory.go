package repository

import (
	"context"
	"fmt"
	"sync"
)

// Memory is a map-backed Repository. Rows are kept in column-encoded form so
// values round-trip exactly as they would through the relational engine.
type Memory[T any] struct {
	rows   map[int64][]any
	desc   Descriptor[T]
	order  []int64
	lastPK int64
	mu     sync.Mutex
}

// NewMemory creates an empty in-memory repository for the given entity kind.
func NewMemory[T any](desc Descriptor[T]) (*Memory[T], error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &Memory[T]{
		desc: desc,
		rows: make(map[int64][]any),
	}, nil
}

// Add stores item under a fresh primary key.
func (m *Memory[T]) Add(ctx context.Context, item T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if pk := m.desc.PK(item); pk != 0 {
		return zero, fmt.Errorf("%w: %s %d", ErrInvalidState, m.desc.Name, pk)
	}
	row, err := m.desc.EncodeRow(item)
	if err != nil {
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPK++
	m.rows[m.lastPK] = row
	m.order = append(m.order, m.lastPK)
	return m.desc.WithPK(item, m.lastPK), nil
}

// Get returns the item stored under pk.
func (m *Memory[T]) Get(ctx context.Context, pk int64) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	m.mu.Lock()
	row, ok := m.rows[pk]
	m.mu.Unlock()
	if !ok {
		return zero, fmt.Errorf("%w: %s %d", ErrNotFound, m.desc.Name, pk)
	}
	return m.desc.DecodeRow(pk, row)
}

// GetAll returns the items matching filter in insertion order.
func (m *Memory[T]) GetAll(ctx context.Context, filter Filter) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pred, err := m.desc.CompileFilter(filter)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]T, 0, len(m.order))
	for _, pk := range m.order {
		row := m.rows[pk]
		if !m.matches(pk, row, pred) {
			continue
		}
		item, err := m.desc.DecodeRow(pk, row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Update replaces the row identified by the item's primary key.
func (m *Memory[T]) Update(ctx context.Context, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pk := m.desc.PK(item)
	row, err := m.desc.EncodeRow(item)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[pk]; !ok {
		return fmt.Errorf("%w: %s %d", ErrNotFound, m.desc.Name, pk)
	}
	m.rows[pk] = row
	return nil
}

// Delete removes the row stored under pk.
func (m *Memory[T]) Delete(ctx context.Context, pk int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[pk]; !ok {
		return fmt.Errorf("%w: %s %d", ErrNotFound, m.desc.Name, pk)
	}
	delete(m.rows, pk)
	for i, id := range m.order {
		if id == pk {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory[T]) matches(pk int64, row []any, pred Predicate) bool {
	for i, col := range pred.Columns {
		var got any = pk
		if col != PKColumn {
			got = row[m.columnIndex(col)]
		}
		if got != pred.Values[i] {
			return false
		}
	}
	return true
}

func (m *Memory[T]) columnIndex(name string) int {
	for i, f := range m.desc.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
