package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alwaysmad/bookkeeper/internal/model"
	"github.com/alwaysmad/bookkeeper/internal/tui/themes"
)

func sampleExpenses() []model.Expense {
	at := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.Local)
	return []model.Expense{
		model.NewExpense(10, 1, at, model.WithPK(1)),
		model.NewExpense(20, 2, at, model.WithPK(2), model.WithComment("bus")),
		model.NewExpense(30, 0, at, model.WithPK(3)),
	}
}

func label(e model.Expense) string {
	if e.Category == model.NoCategory {
		return model.DeletedCategoryLabel
	}
	return "cat"
}

func TestExpenseTable_NewestFirst(t *testing.T) {
	m := NewExpenseTable(themes.Default)
	m.SetExpenses(sampleExpenses(), label)

	require.Equal(t, 3, m.Len())
	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(3), selected.PK)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	selected, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(2), selected.PK)

	view := m.View()
	assert.Contains(t, view, model.DeletedCategoryLabel)
	assert.Contains(t, view, "bus")
}

func TestExpenseTable_CursorClampedOnShrink(t *testing.T) {
	m := NewExpenseTable(themes.Default)
	m.SetExpenses(sampleExpenses(), label)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m.SetExpenses(sampleExpenses()[:1], label)
	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(1), selected.PK)

	m.SetExpenses(nil, label)
	_, ok = m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No expenses yet")
}

func TestBudgetPanel_View(t *testing.T) {
	m := NewBudgetPanel(themes.Default)
	m.Resize(60)
	over := model.NewBudget(100, model.PeriodDay, 1)
	over.Spent = 150
	m.SetBudgets([]model.Budget{over, model.NewBudget(700, model.PeriodWeek, 2)})
	m.SetTotals(model.Totals{Day: 150, Week: 150, Month: 150})

	view := m.View()
	assert.Contains(t, view, "day")
	assert.Contains(t, view, "150.00 / 100.00")
	assert.Contains(t, view, "0.00 / 700.00")
	assert.Contains(t, view, "Today 150.00")
}

func TestCategoryLine_Truncates(t *testing.T) {
	categories := []model.Category{
		model.NewCategory("Groceries", 1),
		model.NewCategory("Home", 2),
		model.NewCategory("Transport", 3),
	}

	assert.Contains(t, CategoryLine(themes.Default, categories, 80), "Groceries, Home, Transport")
	assert.Contains(t, CategoryLine(themes.Default, categories, 12), "...")
}
