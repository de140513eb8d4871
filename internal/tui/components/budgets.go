// Package components holds the bubbletea widgets of the terminal view.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/alwaysmad/bookkeeper/internal/cli"
	"github.com/alwaysmad/bookkeeper/internal/model"
	"github.com/alwaysmad/bookkeeper/internal/tui/themes"
)

// BudgetPanelModel shows each budget with a bar of how much of it is spent,
// and the day, week and month totals.
type BudgetPanelModel struct {
	theme   themes.Theme
	budgets []model.Budget
	bar     progress.Model
	totals  model.Totals
	width   int
}

// NewBudgetPanel creates an empty budget panel.
func NewBudgetPanel(theme themes.Theme) BudgetPanelModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false
	bar.Width = 20

	return BudgetPanelModel{theme: theme, bar: bar, width: 40}
}

// SetBudgets replaces the shown budgets.
func (m *BudgetPanelModel) SetBudgets(budgets []model.Budget) {
	m.budgets = budgets
}

// SetTotals replaces the shown totals.
func (m *BudgetPanelModel) SetTotals(totals model.Totals) {
	m.totals = totals
}

// Resize sets the panel width.
func (m *BudgetPanelModel) Resize(width int) {
	m.width = width
	m.bar.Width = max(min(width-32, 30), 5)
}

// View renders the panel.
func (m BudgetPanelModel) View() string {
	lines := []string{m.theme.Subtitle.Render("Budgets")}
	if len(m.budgets) == 0 {
		lines = append(lines, m.theme.Muted.Render("no budgets"))
	}
	for _, b := range m.budgets {
		lines = append(lines, m.renderBudget(b))
	}

	lines = append(lines, "", m.theme.Subtitle.Render("Spent"), cli.RenderTotals(m.totals))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m BudgetPanelModel) renderBudget(b model.Budget) string {
	ratio := 0.0
	if b.Amount > 0 {
		ratio = min(b.Spent/b.Amount, 1)
	}

	style := m.theme.StatusSuccess
	switch cli.SpentStyle(b.Spent, b.Amount).GetForeground() {
	case cli.ErrorColor:
		style = m.theme.StatusError
	case cli.WarningColor:
		style = m.theme.StatusWarning
	}

	return fmt.Sprintf("%-6s %s %s",
		b.PeriodName(),
		m.bar.ViewAs(ratio),
		style.Render(fmt.Sprintf("%s / %s", cli.FormatAmount(b.Spent), cli.FormatAmount(b.Amount))),
	)
}

// CategoryLine renders the category names on one line, truncated to width.
func CategoryLine(theme themes.Theme, categories []model.Category, width int) string {
	text := cli.RenderCategories(categories)
	if width > 3 && lipgloss.Width(text) > width {
		text = strings.TrimRight(text[:width-3], " ,") + "..."
	}
	return theme.Subtitle.Render("Categories ") + text
}
