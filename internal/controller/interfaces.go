package controller

import (
	"context"
	"time"

	"github.com/alwaysmad/bookkeeper/internal/model"
)

// Handlers for the user intents a view can raise. Each runs to completion
// before returning and reports failures to the view instead of panicking.
type (
	ExpenseEditedFunc   func(ctx context.Context, amount float64, categoryName string, at time.Time, comment string, pk int64) error
	ExpenseAddedFunc    func(ctx context.Context, amount float64, categoryName string, at time.Time) error
	CategoryDeletedFunc func(ctx context.Context, name string) error
	CategoryAddedFunc   func(ctx context.Context, category model.Category) error
	BudgetChangedFunc   func(ctx context.Context, budget model.Budget) error
)

// View is the presentation collaborator driven by the Bookkeeper.
type View interface {
	OnExpenseEdited(handler ExpenseEditedFunc)
	OnExpenseAdded(handler ExpenseAddedFunc)
	OnCategoryDeleted(handler CategoryDeletedFunc)
	OnCategoryAdded(handler CategoryAddedFunc)
	OnBudgetChanged(handler BudgetChangedFunc)

	// InitLayout builds the view before any data is pushed.
	InitLayout()
	// Present shows the view and blocks until the user session ends.
	Present(ctx context.Context) error

	ShowBudgets(budgets []model.Budget)
	ShowCategories(categories []model.Category)
	// ShowExpenses receives the category names keyed by primary key; expenses
	// whose key is missing reference a deleted category.
	ShowExpenses(expenses []model.Expense, categoryNames map[int64]string)
	ShowTotals(totals model.Totals)
	ClearExpenses()
}
