package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// PKColumn is the name of the primary key column of every entity kind.
const PKColumn = "pk"

// TimeLayout is the textual format datetime fields take at the storage boundary.
const TimeLayout = "2006-01-02 15:04:05"

// FieldKind is the scalar type of an entity field.
type FieldKind int

const (
	// KindInt is an integer field.
	KindInt FieldKind = iota
	// KindFloat is a floating point field.
	KindFloat
	// KindText is a string field.
	KindText
	// KindTime is a datetime field, stored as TimeLayout text.
	KindTime
)

// String returns the kind name.
func (k FieldKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// Field is one non-key field of an entity kind.
type Field struct {
	Name string
	Kind FieldKind
}

// Descriptor is the static shape of an entity kind: its name, its fields in
// declaration order and the functions moving values in and out of T.
//
// Encode must return one value per field, in Fields order, using int64,
// float64, string or time.Time according to the field kind. Decode receives
// values of the same types and builds a T with the given primary key.
type Descriptor[T any] struct {
	Decode func(pk int64, values []any) T
	Encode func(item T) []any
	PK     func(item T) int64
	WithPK func(item T, pk int64) T
	Name   string
	Fields []Field
}

// Descriptor validation errors.
var (
	ErrEmptyName     = errors.New("descriptor name cannot be empty")
	ErrNoFields      = errors.New("descriptor has no fields")
	ErrMissingFunc   = errors.New("descriptor function missing")
	ErrInvalidColumn = errors.New("invalid column name")
)

// Validate checks that the descriptor is complete and its names are usable as SQL identifiers.
func (d Descriptor[T]) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if !isIdentifier(d.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidColumn, d.Name)
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("%w: %s", ErrNoFields, d.Name)
	}
	if d.Decode == nil || d.Encode == nil || d.PK == nil || d.WithPK == nil {
		return fmt.Errorf("%w: %s", ErrMissingFunc, d.Name)
	}
	seen := map[string]bool{PKColumn: true}
	for _, f := range d.Fields {
		if !isIdentifier(f.Name) || seen[f.Name] {
			return fmt.Errorf("%w: %s.%s", ErrInvalidColumn, d.Name, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// Field returns the field with the given name. The primary key is reported as a KindInt field.
func (d Descriptor[T]) Field(name string) (Field, bool) {
	if name == PKColumn {
		return Field{Name: PKColumn, Kind: KindInt}, true
	}
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// EncodeRow converts item into column values, in Fields order.
func (d Descriptor[T]) EncodeRow(item T) ([]any, error) {
	values := d.Encode(item)
	if len(values) != len(d.Fields) {
		return nil, fmt.Errorf("%s: encoded %d values for %d fields", d.Name, len(values), len(d.Fields))
	}
	row := make([]any, len(values))
	for i, f := range d.Fields {
		v, err := ToColumn(f.Kind, values[i])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.Name, f.Name, err)
		}
		row[i] = v
	}
	return row, nil
}

// DecodeRow builds an item from column values produced by EncodeRow or read from storage.
func (d Descriptor[T]) DecodeRow(pk int64, row []any) (T, error) {
	var zero T
	if len(row) != len(d.Fields) {
		return zero, fmt.Errorf("%s: got %d columns for %d fields", d.Name, len(row), len(d.Fields))
	}
	values := make([]any, len(row))
	for i, f := range d.Fields {
		v, err := FromColumn(f.Kind, row[i])
		if err != nil {
			return zero, fmt.Errorf("%s.%s: %w", d.Name, f.Name, err)
		}
		values[i] = v
	}
	return d.Decode(pk, values), nil
}

// Predicate is a filter resolved against a descriptor: column names in a
// stable order and the matching column-encoded values.
type Predicate struct {
	Columns []string
	Values  []any
}

// CompileFilter validates filter against d and converts its values to column form.
func (d Descriptor[T]) CompileFilter(filter Filter) (Predicate, error) {
	names := make([]string, 0, len(filter))
	for name := range filter {
		names = append(names, name)
	}
	sort.Strings(names)

	p := Predicate{Columns: names, Values: make([]any, len(names))}
	for i, name := range names {
		f, ok := d.Field(name)
		if !ok {
			return Predicate{}, fmt.Errorf("%w: %s has no field %q", ErrInvalidFilter, d.Name, name)
		}
		v, err := ToColumn(f.Kind, filter[name])
		if err != nil {
			return Predicate{}, fmt.Errorf("%w: %s.%s: %v", ErrInvalidFilter, d.Name, name, err)
		}
		p.Values[i] = v
	}
	return p, nil
}

// ToColumn converts a field value to the value stored in its column:
// int64 for KindInt, float64 for KindFloat, string for KindText and KindTime.
func ToColumn(kind FieldKind, v any) (any, error) {
	switch kind {
	case KindInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case KindText:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindTime:
		switch t := v.(type) {
		case time.Time:
			// The text carries no zone; it is always local wall time.
			return t.In(time.Local).Format(TimeLayout), nil
		case string:
			if _, err := time.ParseInLocation(TimeLayout, t, time.Local); err != nil {
				return nil, err
			}
			return t, nil
		}
	}
	return nil, fmt.Errorf("cannot store %T as %s", v, kind)
}

// FromColumn converts a stored column value back to its field value.
func FromColumn(kind FieldKind, v any) (any, error) {
	switch kind {
	case KindInt:
		switch n := v.(type) {
		case int64:
			return n, nil
		case nil:
			return int64(0), nil
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		case nil:
			return float64(0), nil
		}
	case KindText:
		switch s := v.(type) {
		case string:
			return s, nil
		case []byte:
			return string(s), nil
		case nil:
			return "", nil
		}
	case KindTime:
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case []byte:
			s = string(t)
		case nil:
			return time.Time{}, nil
		default:
			return nil, fmt.Errorf("cannot read %T as %s", v, kind)
		}
		t, err := time.ParseInLocation(TimeLayout, s, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse datetime %q: %w", s, err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("cannot read %T as %s", v, kind)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
