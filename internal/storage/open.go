package storage

import (
	"context"
	"fmt"

	"github.com/alwaysmad/bookkeeper/internal/model"
)

// Repositories bundles the repositories of every entity kind on one store.
type Repositories struct {
	Categories *Repository[model.Category]
	Budgets    *Repository[model.Budget]
	Expenses   *Repository[model.Expense]
}

// OpenRepositories ensures the schema of every entity kind, applies pending
// migrations and returns the repositories.
func OpenRepositories(ctx context.Context, store *SQLiteStore) (*Repositories, error) {
	categories, err := NewRepository(ctx, store, model.CategoryShape)
	if err != nil {
		return nil, fmt.Errorf("category repository: %w", err)
	}
	budgets, err := NewRepository(ctx, store, model.BudgetShape)
	if err != nil {
		return nil, fmt.Errorf("budget repository: %w", err)
	}
	expenses, err := NewRepository(ctx, store, model.ExpenseShape)
	if err != nil {
		return nil, fmt.Errorf("expense repository: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return &Repositories{
		Categories: categories,
		Budgets:    budgets,
		Expenses:   expenses,
	}, nil
}
