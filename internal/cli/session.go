package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/alwaysmad/bookkeeper/internal/common"
	"github.com/alwaysmad/bookkeeper/internal/controller"
	"github.com/alwaysmad/bookkeeper/internal/model"
)

// Session errors.
var (
	ErrNotStarted        = errors.New("view has no registered handlers")
	ErrDuplicateCategory = fmt.Errorf("%w: category already exists", common.ErrInvalidInput)
	ErrReservedCategory  = fmt.Errorf("%w: category name is reserved", common.ErrInvalidInput)
	ErrUnknownExpense    = fmt.Errorf("%w: no such expense", common.ErrInvalidInput)
	ErrUnknownBudget     = fmt.Errorf("%w: no budget for period", common.ErrInvalidInput)
)

// Snapshot is the state last pushed by the bookkeeper.
type Snapshot struct {
	Names      map[int64]string
	Budgets    []model.Budget
	Categories []model.Category
	Expenses   []model.Expense
	Totals     model.Totals
}

// Label returns the category name shown for e. Expenses of deleted
// categories get model.DeletedCategoryLabel.
func (s Snapshot) Label(e model.Expense) string {
	if name, ok := s.Names[e.Category]; ok {
		return name
	}
	return model.DeletedCategoryLabel
}

// Expense returns the shown expense with primary key pk.
func (s Snapshot) Expense(pk int64) (model.Expense, bool) {
	i := slices.IndexFunc(s.Expenses, func(e model.Expense) bool { return e.PK == pk })
	if i < 0 {
		return model.Expense{}, false
	}
	return s.Expenses[i], true
}

// Budget returns the budget for a period in days. Any period of 28 days
// or more matches the month budget.
func (s Snapshot) Budget(period int) (model.Budget, bool) {
	for _, b := range s.Budgets {
		if b.PeriodDays == period || (period >= 28 && b.PeriodDays >= 28) {
			return b, true
		}
	}
	return model.Budget{}, false
}

// Session implements the handler registration and state-keeping half of
// controller.View and turns parsed commands into handler calls. Terminal
// views embed it and add rendering.
type Session struct {
	expenseEdited   controller.ExpenseEditedFunc
	expenseAdded    controller.ExpenseAddedFunc
	categoryDeleted controller.CategoryDeletedFunc
	categoryAdded   controller.CategoryAddedFunc
	budgetChanged   controller.BudgetChangedFunc
	now             func() time.Time
	state           Snapshot
	mu              sync.RWMutex
}

// NewSession creates a session. now dates the expenses added through it.
func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{now: now, state: Snapshot{Names: map[int64]string{}}}
}

// OnExpenseEdited registers the edit handler.
func (s *Session) OnExpenseEdited(h controller.ExpenseEditedFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenseEdited = h
}

// OnExpenseAdded registers the add handler.
func (s *Session) OnExpenseAdded(h controller.ExpenseAddedFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenseAdded = h
}

// OnCategoryDeleted registers the category delete handler.
func (s *Session) OnCategoryDeleted(h controller.CategoryDeletedFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryDeleted = h
}

// OnCategoryAdded registers the category add handler.
func (s *Session) OnCategoryAdded(h controller.CategoryAddedFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryAdded = h
}

// OnBudgetChanged registers the budget handler.
func (s *Session) OnBudgetChanged(h controller.BudgetChangedFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgetChanged = h
}

// ShowBudgets keeps the pushed budgets.
func (s *Session) ShowBudgets(budgets []model.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Budgets = budgets
}

// ShowCategories keeps the pushed categories.
func (s *Session) ShowCategories(categories []model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Categories = categories
}

// ShowExpenses keeps the pushed expenses and category names.
func (s *Session) ShowExpenses(expenses []model.Expense, names map[int64]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Expenses = expenses
	s.state.Names = names
}

// ShowTotals keeps the pushed totals.
func (s *Session) ShowTotals(totals model.Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Totals = totals
}

// ClearExpenses drops the shown expenses.
func (s *Session) ClearExpenses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Expenses = nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Execute runs cmd through the registered handlers and returns a short
// confirmation. Handlers must not be called with the lock held since they
// push state back into the session.
func (s *Session) Execute(ctx context.Context, cmd Command) (string, error) {
	s.mu.RLock()
	state := s.state
	edited, added, deleted, catAdded, budgetChanged := s.expenseEdited, s.expenseAdded, s.categoryDeleted, s.categoryAdded, s.budgetChanged
	s.mu.RUnlock()

	switch cmd.Kind {
	case CommandHelp:
		return Usage, nil
	case CommandQuit:
		return "", nil
	case CommandAddExpense:
		if added == nil {
			return "", ErrNotStarted
		}
		if err := added(ctx, cmd.Amount, cmd.Name, s.now()); err != nil {
			return "", describe(err)
		}
		return fmt.Sprintf("Added %s to %s", FormatAmount(cmd.Amount), cmd.Name), nil

	case CommandEditExpense:
		if edited == nil {
			return "", ErrNotStarted
		}
		e, ok := state.Expense(cmd.PK)
		if !ok {
			return "", common.NewUserError(fmt.Sprintf("No expense #%d", cmd.PK), ErrUnknownExpense)
		}
		amount, label, date, comment := e.Amount, state.Label(e), e.ExpenseDate, e.Comment
		switch cmd.Name {
		case FieldAmount:
			amount = cmd.Amount
		case FieldCategory:
			label = cmd.Value
		case FieldDate:
			date = cmd.Date
		case FieldComment:
			comment = cmd.Value
		}
		if err := edited(ctx, amount, label, date, comment, cmd.PK); err != nil {
			return "", describe(err)
		}
		return fmt.Sprintf("Updated expense #%d", cmd.PK), nil

	case CommandAddCategory:
		if catAdded == nil {
			return "", ErrNotStarted
		}
		if cmd.Name == model.DeletedCategoryLabel {
			return "", common.NewUserError(fmt.Sprintf("%q is reserved for expenses of deleted categories", cmd.Name), ErrReservedCategory)
		}
		if slices.ContainsFunc(state.Categories, func(c model.Category) bool { return c.Name == cmd.Name }) {
			return "", common.NewUserError(fmt.Sprintf("Category %q already exists", cmd.Name), ErrDuplicateCategory)
		}
		if err := catAdded(ctx, model.NewCategory(cmd.Name)); err != nil {
			return "", describe(err)
		}
		return fmt.Sprintf("Created category %q", cmd.Name), nil

	case CommandDeleteCategory:
		if deleted == nil {
			return "", ErrNotStarted
		}
		if err := deleted(ctx, cmd.Name); err != nil {
			return "", describe(err)
		}
		return fmt.Sprintf("Deleted category %q", cmd.Name), nil

	case CommandSetBudget:
		if budgetChanged == nil {
			return "", ErrNotStarted
		}
		b, ok := state.Budget(cmd.Period)
		if !ok {
			return "", common.NewUserError(fmt.Sprintf("No budget for %d days", cmd.Period), ErrUnknownBudget)
		}
		b.Amount = cmd.Amount
		if err := budgetChanged(ctx, b); err != nil {
			return "", describe(err)
		}
		return fmt.Sprintf("Set %s budget to %s", b.PeriodName(), FormatAmount(cmd.Amount)), nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownCommand, cmd.Kind)
}

// describe attaches a user-facing message to a handler error.
func describe(err error) error {
	var resErr *controller.ResolutionError
	if errors.As(err, &resErr) {
		if resErr.Matches == 0 {
			return common.NewUserError(fmt.Sprintf("No category named %q", resErr.Name), err)
		}
		return common.NewUserError(fmt.Sprintf("%d categories are named %q", resErr.Matches, resErr.Name), err)
	}
	return common.NewUserError("Could not save the change", err)
}
