package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alwaysmad/bookkeeper/internal/repository"
)

var columnTypes = map[repository.FieldKind]string{
	repository.KindInt:   "INTEGER",
	repository.KindFloat: "REAL",
	repository.KindText:  "TEXT",
	repository.KindTime:  "TEXT",
}

// createTableSQL derives the table of an entity kind from its field list.
// AUTOINCREMENT keeps deleted keys from being issued again.
func createTableSQL[T any](desc repository.Descriptor[T]) string {
	cols := make([]string, 0, len(desc.Fields)+1)
	cols = append(cols, repository.PKColumn+" INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, f := range desc.Fields {
		cols = append(cols, f.Name+" "+columnTypes[f.Kind])
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", desc.Name, strings.Join(cols, ", "))
}

// ensureTable creates the table of an entity kind if it does not exist yet.
func (s *SQLiteStore) ensureTable(ctx context.Context, name, ddl string) error {
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}
	slog.Debug("ensured table", "table", name)
	return nil
}

// Columns returns the column names of a table in declaration order.
func (s *SQLiteStore) Columns(ctx context.Context, table string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read table info: %w", err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	return cols, nil
}
