// Package controller keeps categories, expenses and spending totals consistent
// and drives a View with them.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alwaysmad/bookkeeper/internal/model"
	"github.com/alwaysmad/bookkeeper/internal/repository"
)

// Seed holds the rows created on first run, when a repository is empty.
type Seed struct {
	Budgets    []model.Budget
	Categories []string
}

// DefaultSeed returns the day, week and month budgets and the starter categories.
func DefaultSeed() Seed {
	return Seed{
		Budgets: []model.Budget{
			model.NewBudget(1000, model.PeriodDay),
			model.NewBudget(7000, model.PeriodWeek),
			model.NewBudget(30000, model.PeriodMonth),
		},
		Categories: []string{"Groceries", "Home", "Other"},
	}
}

// Bookkeeper wires a View to the repositories and recomputes totals after every mutation.
type Bookkeeper struct {
	view       View
	categories repository.Repository[model.Category]
	budgets    repository.Repository[model.Budget]
	expenses   repository.Repository[model.Expense]
	now        func() time.Time
	log        *slog.Logger
	seed       Seed
}

// Option customizes a Bookkeeper.
type Option func(*Bookkeeper)

// WithClock sets the clock used for totals and expense creation times.
func WithClock(now func() time.Time) Option {
	return func(b *Bookkeeper) { b.now = now }
}

// WithSeed replaces the first-run rows.
func WithSeed(seed Seed) Option {
	return func(b *Bookkeeper) { b.seed = seed }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bookkeeper) { b.log = logger }
}

// New creates a Bookkeeper. Nothing is read or written until Start.
func New(
	view View,
	categories repository.Repository[model.Category],
	budgets repository.Repository[model.Budget],
	expenses repository.Repository[model.Expense],
	opts ...Option,
) *Bookkeeper {
	b := &Bookkeeper{
		view:       view,
		categories: categories,
		budgets:    budgets,
		expenses:   expenses,
		now:        time.Now,
		log:        slog.Default(),
		seed:       DefaultSeed(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start registers the handlers, seeds empty repositories and pushes the
// current state to the view. The order of these steps is part of the View contract.
func (b *Bookkeeper) Start(ctx context.Context) error {
	b.view.OnExpenseEdited(b.ChangeExpense)
	b.view.OnExpenseAdded(b.AddExpense)
	b.view.OnCategoryDeleted(b.DeleteCategory)
	b.view.OnCategoryAdded(b.AddCategory)
	b.view.OnBudgetChanged(b.ChangeBudget)
	b.view.InitLayout()

	if err := b.seedBudgets(ctx); err != nil {
		return err
	}
	if err := b.showBudgets(ctx); err != nil {
		return err
	}
	if err := b.seedCategories(ctx); err != nil {
		return err
	}
	if err := b.showCategories(ctx); err != nil {
		return err
	}
	if err := b.syncExpenses(ctx); err != nil {
		return err
	}
	return b.refreshTotals(ctx)
}

// Run starts the Bookkeeper and presents the view until the session ends.
func (b *Bookkeeper) Run(ctx context.Context) error {
	if err := b.Start(ctx); err != nil {
		return err
	}
	return b.view.Present(ctx)
}

// AddExpense records a new expense in the category named categoryName.
func (b *Bookkeeper) AddExpense(ctx context.Context, amount float64, categoryName string, at time.Time) error {
	category, err := ResolveCategory(ctx, b.categories, categoryName)
	if err != nil {
		return err
	}

	expense := model.NewExpense(amount, category.PK, at, model.WithAddedDate(b.now()))
	added, err := b.expenses.Add(ctx, expense)
	if err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}
	b.log.Info("added expense", "pk", added.PK, "amount", amount, "category", categoryName)

	if err := b.syncExpenses(ctx); err != nil {
		return err
	}
	return b.refreshSpending(ctx)
}

// ChangeExpense replaces the expense identified by pk. The deleted-category
// label maps to model.NoCategory; the creation time of the expense is kept.
func (b *Bookkeeper) ChangeExpense(ctx context.Context, amount float64, categoryName string, at time.Time, comment string, pk int64) error {
	categoryPK := model.NoCategory
	if categoryName != model.DeletedCategoryLabel {
		category, err := ResolveCategory(ctx, b.categories, categoryName)
		if err != nil {
			return err
		}
		categoryPK = category.PK
	}

	current, err := b.expenses.Get(ctx, pk)
	if err != nil {
		return fmt.Errorf("failed to load expense: %w", err)
	}
	updated := model.NewExpense(amount, categoryPK, at,
		model.WithComment(comment),
		model.WithPK(pk),
		model.WithAddedDate(current.AddedDate),
	)
	if err := b.expenses.Update(ctx, updated); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	b.log.Info("changed expense", "pk", pk, "amount", amount, "category", categoryName)

	if err := b.syncExpenses(ctx); err != nil {
		return err
	}
	return b.refreshSpending(ctx)
}

// AddCategory persists category. Duplicate names are not checked here.
func (b *Bookkeeper) AddCategory(ctx context.Context, category model.Category) error {
	added, err := b.categories.Add(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}
	b.log.Info("added category", "pk", added.PK, "name", added.Name)
	return b.showCategories(ctx)
}

// DeleteCategory removes the category named name and moves its expenses to model.NoCategory.
func (b *Bookkeeper) DeleteCategory(ctx context.Context, name string) error {
	category, err := ResolveCategory(ctx, b.categories, name)
	if err != nil {
		return err
	}
	if err := b.categories.Delete(ctx, category.PK); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := b.syncExpenses(ctx); err != nil {
		return err
	}

	repaired, err := b.detachExpenses(ctx, category.PK)
	if err != nil {
		return err
	}
	b.log.Info("deleted category", "pk", category.PK, "name", name, "expenses_detached", repaired)

	if err := b.showCategories(ctx); err != nil {
		return err
	}
	return b.syncExpenses(ctx)
}

// ChangeBudget replaces the stored budget.
func (b *Bookkeeper) ChangeBudget(ctx context.Context, budget model.Budget) error {
	if err := b.budgets.Update(ctx, budget); err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	b.log.Info("changed budget", "pk", budget.PK, "amount", budget.Amount, "period_days", budget.PeriodDays)
	return b.showBudgets(ctx)
}

// Totals recomputes the spending totals from every stored expense.
func (b *Bookkeeper) Totals(ctx context.Context) (model.Totals, error) {
	expenses, err := b.expenses.GetAll(ctx, nil)
	if err != nil {
		return model.Totals{}, fmt.Errorf("failed to load expenses: %w", err)
	}
	return ComputeTotals(expenses, b.now()), nil
}

// detachExpenses rewrites every expense of categoryPK to model.NoCategory.
func (b *Bookkeeper) detachExpenses(ctx context.Context, categoryPK int64) (int, error) {
	expenses, err := b.expenses.GetAll(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to load expenses: %w", err)
	}

	repaired := 0
	for _, e := range expenses {
		if e.Category != categoryPK {
			continue
		}
		e.Category = model.NoCategory
		if err := b.expenses.Update(ctx, e); err != nil {
			return repaired, fmt.Errorf("failed to detach expense %d: %w", e.PK, err)
		}
		repaired++
	}
	return repaired, nil
}

func (b *Bookkeeper) seedBudgets(ctx context.Context) error {
	budgets, err := b.budgets.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}
	if len(budgets) > 0 {
		return nil
	}
	for _, budget := range b.seed.Budgets {
		if _, err := b.budgets.Add(ctx, budget); err != nil {
			return fmt.Errorf("failed to seed budget: %w", err)
		}
	}
	b.log.Info("seeded default budgets", "count", len(b.seed.Budgets))
	return nil
}

func (b *Bookkeeper) seedCategories(ctx context.Context) error {
	categories, err := b.categories.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) > 0 {
		return nil
	}
	for _, name := range b.seed.Categories {
		if _, err := b.categories.Add(ctx, model.NewCategory(name)); err != nil {
			return fmt.Errorf("failed to seed category: %w", err)
		}
	}
	b.log.Info("seeded default categories", "count", len(b.seed.Categories))
	return nil
}

func (b *Bookkeeper) showBudgets(ctx context.Context) error {
	totals, err := b.Totals(ctx)
	if err != nil {
		return err
	}
	return b.pushBudgets(ctx, totals)
}

// pushBudgets shows the stored budgets with Spent taken from totals.
func (b *Bookkeeper) pushBudgets(ctx context.Context, totals model.Totals) error {
	budgets, err := b.budgets.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}
	for i := range budgets {
		budgets[i].Spent = totals.ForPeriod(budgets[i].PeriodDays)
	}
	b.view.ShowBudgets(budgets)
	return nil
}

func (b *Bookkeeper) showCategories(ctx context.Context) error {
	categories, err := b.categories.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	b.view.ShowCategories(categories)
	return nil
}

// syncExpenses replaces the expense list of the view with the stored one.
func (b *Bookkeeper) syncExpenses(ctx context.Context) error {
	b.view.ClearExpenses()
	expenses, err := b.expenses.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}
	categories, err := b.categories.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	b.view.ShowExpenses(expenses, CategoryNames(categories))
	return nil
}

func (b *Bookkeeper) refreshTotals(ctx context.Context) error {
	totals, err := b.Totals(ctx)
	if err != nil {
		return err
	}
	b.log.Debug("recomputed totals", "day", totals.Day, "week", totals.Week, "month", totals.Month)
	b.view.ShowTotals(totals)
	return nil
}

// refreshSpending recomputes the totals once and pushes them together with
// the budgets, so every Spent value matches the totals shown.
func (b *Bookkeeper) refreshSpending(ctx context.Context) error {
	totals, err := b.Totals(ctx)
	if err != nil {
		return err
	}
	if err := b.pushBudgets(ctx, totals); err != nil {
		return err
	}
	b.log.Debug("recomputed totals", "day", totals.Day, "week", totals.Week, "month", totals.Month)
	b.view.ShowTotals(totals)
	return nil
}
