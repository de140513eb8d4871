package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alwaysmad/bookkeeper/internal/cli"
	"github.com/alwaysmad/bookkeeper/internal/tui/components"
)

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	tableBox, inputBox := m.theme.RoundedBox, m.theme.FocusedBox
	if m.expenses.Focused() {
		tableBox, inputBox = m.theme.FocusedBox, m.theme.RoundedBox
	}
	width := max(m.width-2, 20)

	sections := []string{
		m.theme.Title.Render(cli.LedgerIcon + " Bookkeeper"),
		m.theme.RoundedBox.Width(width).Render(m.budgets.View()),
		components.CategoryLine(m.theme, m.snapshot.Categories, width),
		tableBox.Width(width).Render(m.expenses.View()),
		inputBox.Width(width).Render(m.input.View()),
		m.renderStatus(),
	}

	m.help.ShowAll = m.showHelp
	if m.showHelp {
		sections = append(sections, m.theme.Muted.Render(cli.Usage))
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatus() string {
	switch {
	case m.statusErr:
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.status)
	case m.busy:
		return m.theme.StatusInfo.Render(m.status)
	default:
		return m.theme.StatusSuccess.Render(m.status)
	}
}
