package controller

import (
	"context"
	"sync"

	"github.com/alwaysmad/bookkeeper/internal/model"
)

// MockView is a test implementation of the View interface. It records every
// call and keeps the last pushed state so tests can raise intents and inspect results.
type MockView struct {
	ExpenseEdited   ExpenseEditedFunc
	ExpenseAdded    ExpenseAddedFunc
	CategoryDeleted CategoryDeletedFunc
	CategoryAdded   CategoryAddedFunc
	BudgetChanged   BudgetChangedFunc

	Names      map[int64]string
	Budgets    []model.Budget
	Categories []model.Category
	Expenses   []model.Expense
	Calls      []string
	Totals     model.Totals
	mu         sync.Mutex
}

// NewMockView creates an empty mock view.
func NewMockView() *MockView {
	return &MockView{Names: map[int64]string{}}
}

func (m *MockView) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// OnExpenseEdited stores the handler.
func (m *MockView) OnExpenseEdited(h ExpenseEditedFunc) {
	m.record("OnExpenseEdited")
	m.ExpenseEdited = h
}

// OnExpenseAdded stores the handler.
func (m *MockView) OnExpenseAdded(h ExpenseAddedFunc) {
	m.record("OnExpenseAdded")
	m.ExpenseAdded = h
}

// OnCategoryDeleted stores the handler.
func (m *MockView) OnCategoryDeleted(h CategoryDeletedFunc) {
	m.record("OnCategoryDeleted")
	m.CategoryDeleted = h
}

// OnCategoryAdded stores the handler.
func (m *MockView) OnCategoryAdded(h CategoryAddedFunc) {
	m.record("OnCategoryAdded")
	m.CategoryAdded = h
}

// OnBudgetChanged stores the handler.
func (m *MockView) OnBudgetChanged(h BudgetChangedFunc) {
	m.record("OnBudgetChanged")
	m.BudgetChanged = h
}

// InitLayout records the call.
func (m *MockView) InitLayout() { m.record("InitLayout") }

// Present records the call and returns immediately.
func (m *MockView) Present(_ context.Context) error {
	m.record("Present")
	return nil
}

// ShowBudgets keeps the pushed budgets.
func (m *MockView) ShowBudgets(budgets []model.Budget) {
	m.record("ShowBudgets")
	m.Budgets = budgets
}

// ShowCategories keeps the pushed categories.
func (m *MockView) ShowCategories(categories []model.Category) {
	m.record("ShowCategories")
	m.Categories = categories
}

// ShowExpenses keeps the pushed expenses and category names.
func (m *MockView) ShowExpenses(expenses []model.Expense, names map[int64]string) {
	m.record("ShowExpenses")
	m.Expenses = expenses
	m.Names = names
}

// ShowTotals keeps the pushed totals.
func (m *MockView) ShowTotals(totals model.Totals) {
	m.record("ShowTotals")
	m.Totals = totals
}

// ClearExpenses drops the shown expenses.
func (m *MockView) ClearExpenses() {
	m.record("ClearExpenses")
	m.Expenses = nil
}

// Label returns the category label the view would show for e.
func (m *MockView) Label(e model.Expense) string {
	if name, ok := m.Names[e.Category]; ok {
		return name
	}
	return model.DeletedCategoryLabel
}

// ResetCalls forgets the recorded calls.
func (m *MockView) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
}
