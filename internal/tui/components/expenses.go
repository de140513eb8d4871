package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alwaysmad/bookkeeper/internal/cli"
	"github.com/alwaysmad/bookkeeper/internal/model"
	"github.com/alwaysmad/bookkeeper/internal/tui/themes"
)

// ExpenseTableModel lists expenses newest first.
type ExpenseTableModel struct {
	theme    themes.Theme
	expenses []model.Expense
	table    table.Model
	width    int
}

// NewExpenseTable creates an empty expense table.
func NewExpenseTable(theme themes.Theme) ExpenseTableModel {
	t := table.New(
		table.WithColumns(expenseColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return ExpenseTableModel{theme: theme, table: t, width: 80}
}

func expenseColumns(width int) []table.Column {
	comment := max(width-6-16-10-18-10, 10)
	return []table.Column{
		{Title: "#", Width: 6},
		{Title: "Date", Width: 16},
		{Title: "Amount", Width: 10},
		{Title: "Category", Width: 18},
		{Title: "Comment", Width: comment},
	}
}

// SetExpenses replaces the rows. label names the category of an expense.
// The cursor stays on the same row index when possible.
func (m *ExpenseTableModel) SetExpenses(expenses []model.Expense, label func(model.Expense) string) {
	m.expenses = make([]model.Expense, 0, len(expenses))
	rows := make([]table.Row, 0, len(expenses))
	for i := len(expenses) - 1; i >= 0; i-- {
		e := expenses[i]
		m.expenses = append(m.expenses, e)
		rows = append(rows, table.Row{
			strconv.FormatInt(e.PK, 10),
			e.ExpenseDate.Format(cli.DateLayout),
			cli.FormatAmount(e.Amount),
			label(e),
			e.Comment,
		})
	}

	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	m.table.SetCursor(max(cursor, 0))
}

// Selected returns the expense under the cursor.
func (m ExpenseTableModel) Selected() (model.Expense, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.expenses) {
		return model.Expense{}, false
	}
	return m.expenses[i], true
}

// Len returns the number of rows.
func (m ExpenseTableModel) Len() int {
	return len(m.expenses)
}

// Focus gives the table keyboard focus.
func (m *ExpenseTableModel) Focus() { m.table.Focus() }

// Blur removes keyboard focus.
func (m *ExpenseTableModel) Blur() { m.table.Blur() }

// Focused reports whether the table has focus.
func (m ExpenseTableModel) Focused() bool { return m.table.Focused() }

// Resize fits the table into width and height.
func (m *ExpenseTableModel) Resize(width, height int) {
	m.width = width
	m.table.SetColumns(expenseColumns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(height, 3))
}

// Update handles navigation keys.
func (m ExpenseTableModel) Update(msg tea.Msg) (ExpenseTableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m ExpenseTableModel) View() string {
	if len(m.expenses) == 0 {
		return m.theme.Muted.Render("No expenses yet. Try: add 12.50 Groceries")
	}
	return m.table.View()
}
