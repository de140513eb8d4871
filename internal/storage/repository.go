package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alwaysmad/bookkeeper/internal/repository"
)

// Repository implements repository.Repository for one entity kind on a shared store.
// All queries are derived from the descriptor's field list.
type Repository[T any] struct {
	store      *SQLiteStore
	desc       repository.Descriptor[T]
	insertSQL  string
	selectSQL  string
	updateSQL  string
	deleteSQL  string
	columnList string
}

var _ repository.Repository[struct{}] = (*Repository[struct{}])(nil)

// NewRepository binds an entity kind to the store, creating its table if needed.
func NewRepository[T any](ctx context.Context, store *SQLiteStore, desc repository.Descriptor[T]) (*Repository[T], error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNilStore
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if err := store.ensureTable(ctx, desc.Name, createTableSQL(desc)); err != nil {
		return nil, err
	}

	names := make([]string, len(desc.Fields))
	sets := make([]string, len(desc.Fields))
	marks := make([]string, len(desc.Fields))
	for i, f := range desc.Fields {
		names[i] = f.Name
		sets[i] = f.Name + " = ?"
		marks[i] = "?"
	}
	columns := strings.Join(names, ", ")

	return &Repository[T]{
		store:      store,
		desc:       desc,
		columnList: columns,
		insertSQL:  fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", desc.Name, columns, strings.Join(marks, ", ")),
		selectSQL:  fmt.Sprintf("SELECT %s, %s FROM %s", repository.PKColumn, columns, desc.Name),
		updateSQL:  fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", desc.Name, strings.Join(sets, ", "), repository.PKColumn),
		deleteSQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = ?", desc.Name, repository.PKColumn),
	}, nil
}

// Add inserts item and returns it with the key assigned by the store.
func (r *Repository[T]) Add(ctx context.Context, item T) (T, error) {
	var zero T
	if err := validateContext(ctx); err != nil {
		return zero, err
	}
	if pk := r.desc.PK(item); pk != 0 {
		return zero, fmt.Errorf("%w: %s %d", repository.ErrInvalidState, r.desc.Name, pk)
	}
	row, err := r.desc.EncodeRow(item)
	if err != nil {
		return zero, err
	}

	result, err := r.store.db.ExecContext(ctx, r.insertSQL, row...)
	if err != nil {
		return zero, fmt.Errorf("failed to insert %s: %w", r.desc.Name, err)
	}
	pk, err := result.LastInsertId()
	if err != nil {
		return zero, fmt.Errorf("failed to get %s ID: %w", r.desc.Name, err)
	}

	slog.Debug("inserted row", "table", r.desc.Name, "pk", pk)
	return r.desc.WithPK(item, pk), nil
}

// Get returns the row with the given primary key.
func (r *Repository[T]) Get(ctx context.Context, pk int64) (T, error) {
	var zero T
	if err := validateContext(ctx); err != nil {
		return zero, err
	}

	query := r.selectSQL + " WHERE " + repository.PKColumn + " = ?"
	item, err := r.scan(r.store.db.QueryRowContext(ctx, query, pk))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%w: %s %d", repository.ErrNotFound, r.desc.Name, pk)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to query %s: %w", r.desc.Name, err)
	}
	return item, nil
}

// GetAll returns the rows matching every field of filter, in key order.
func (r *Repository[T]) GetAll(ctx context.Context, filter repository.Filter) ([]T, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	pred, err := r.desc.CompileFilter(filter)
	if err != nil {
		return nil, err
	}

	query := r.selectSQL
	if len(pred.Columns) > 0 {
		conds := make([]string, len(pred.Columns))
		for i, col := range pred.Columns {
			conds[i] = col + " = ?"
		}
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + repository.PKColumn

	rows, err := r.store.db.QueryContext(ctx, query, pred.Values...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.desc.Name, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.desc.Name, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", r.desc.Name, err)
	}

	slog.Debug("retrieved rows", "table", r.desc.Name, "count", len(items), "filter", filter)
	return items, nil
}

// Update replaces every column of the row identified by the item's primary key.
func (r *Repository[T]) Update(ctx context.Context, item T) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	pk := r.desc.PK(item)
	row, err := r.desc.EncodeRow(item)
	if err != nil {
		return err
	}

	result, err := r.store.db.ExecContext(ctx, r.updateSQL, append(row, pk)...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", r.desc.Name, err)
	}
	return r.expectOne(result, pk)
}

// Delete removes the row with the given primary key.
func (r *Repository[T]) Delete(ctx context.Context, pk int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := r.store.db.ExecContext(ctx, r.deleteSQL, pk)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.desc.Name, err)
	}
	return r.expectOne(result, pk)
}

func (r *Repository[T]) expectOne(result sql.Result, pk int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", repository.ErrNotFound, r.desc.Name, pk)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository[T]) scan(s scanner) (T, error) {
	var (
		zero T
		pk   int64
	)
	row := make([]any, len(r.desc.Fields))
	dest := make([]any, len(row)+1)
	dest[0] = &pk
	for i := range row {
		dest[i+1] = &row[i]
	}
	if err := s.Scan(dest...); err != nil {
		return zero, err
	}
	return r.desc.DecodeRow(pk, row)
}
