package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/alwaysmad/bookkeeper/internal/model"
	"github.com/alwaysmad/bookkeeper/internal/repository"
)

// Resolution errors. Both specific errors also match ErrAmbiguousResolution.
var (
	ErrAmbiguousResolution = errors.New("category name does not resolve to exactly one category")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrAmbiguousCategory   = errors.New("duplicate category name")
)

// ResolutionError reports a category name that matched zero or several categories.
type ResolutionError struct {
	Name    string
	Matches int
}

func (e *ResolutionError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("category %q not found", e.Name)
	}
	return fmt.Sprintf("category name %q matches %d categories", e.Name, e.Matches)
}

// Is matches the resolution sentinels.
func (e *ResolutionError) Is(target error) bool {
	switch target {
	case ErrAmbiguousResolution:
		return true
	case ErrCategoryNotFound:
		return e.Matches == 0
	case ErrAmbiguousCategory:
		return e.Matches > 1
	}
	return false
}

// ResolveCategory looks up the single category named name.
func ResolveCategory(ctx context.Context, categories repository.Repository[model.Category], name string) (model.Category, error) {
	found, err := categories.GetAll(ctx, repository.Filter{"name": name})
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to look up category %q: %w", name, err)
	}
	if len(found) != 1 {
		return model.Category{}, &ResolutionError{Name: name, Matches: len(found)}
	}
	return found[0], nil
}

// CategoryNames maps category keys to names.
func CategoryNames(categories []model.Category) map[int64]string {
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.PK] = c.Name
	}
	return names
}
