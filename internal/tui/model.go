package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alwaysmad/bookkeeper/internal/cli"
	"github.com/alwaysmad/bookkeeper/internal/common"
	"github.com/alwaysmad/bookkeeper/internal/tui/components"
	"github.com/alwaysmad/bookkeeper/internal/tui/themes"
)

// Model holds the bubbletea state of the terminal view. The bookkeeping
// state lives in the session; the model re-reads it after every command.
type Model struct {
	ctx       context.Context
	session   *cli.Session
	theme     themes.Theme
	keymap    KeyMap
	status    string
	snapshot  cli.Snapshot
	help      help.Model
	input     textinput.Model
	expenses  components.ExpenseTableModel
	budgets   components.BudgetPanelModel
	width     int
	height    int
	statusErr bool
	busy      bool
	showHelp  bool
	quitting  bool
}

func newModel(ctx context.Context, session *cli.Session, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "add 12.50 Groceries"
	input.Prompt = "> "
	input.CharLimit = 200
	input.Focus()

	m := Model{
		ctx:      ctx,
		session:  session,
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		expenses: components.NewExpenseTable(cfg.Theme),
		budgets:  components.NewBudgetPanel(cfg.Theme),
		width:    cfg.Width,
		height:   cfg.Height,
		status:   "Type a command, or press Esc then ? for help.",
	}
	m.expenses.Blur()
	m.refresh()
	m.resize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case commandResultMsg:
		m.busy = false
		if msg.err != nil {
			slog.Debug("command failed", "command", msg.input, "error", msg.err)
			m.setStatus(common.UserMessage(msg.err), true)
		} else {
			m.setStatus(msg.message, false)
			m.input.Reset()
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		return m.updateTable(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.input.Blur()
		m.expenses.Focus()
		return m, nil
	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.resize()
		return m, nil
	case key.Matches(msg, m.keymap.Command):
		return m, m.focusInput()
	case key.Matches(msg, m.keymap.Edit):
		e, ok := m.expenses.Selected()
		if !ok {
			return m, nil
		}
		m.input.SetValue(fmt.Sprintf("edit %d ", e.PK))
		m.input.CursorEnd()
		return m, m.focusInput()
	}

	var cmd tea.Cmd
	m.expenses, cmd = m.expenses.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" || m.busy {
		return m, nil
	}

	cmd, err := cli.ParseCommand(line)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	switch cmd.Kind {
	case cli.CommandQuit:
		m.quitting = true
		return m, tea.Quit
	case cli.CommandHelp:
		m.showHelp = true
		m.input.Reset()
		m.resize()
		return m, nil
	}

	m.busy = true
	m.setStatus("Saving...", false)
	return m, m.execute(cmd, line)
}

// execute runs cmd outside the update loop. Handlers push state into the
// session, which the model reads back on commandResultMsg.
func (m Model) execute(cmd cli.Command, line string) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		message, err := session.Execute(ctx, cmd)
		return commandResultMsg{message: message, err: err, input: line}
	}
}

func (m *Model) focusInput() tea.Cmd {
	m.expenses.Blur()
	return m.input.Focus()
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func (m *Model) refresh() {
	m.snapshot = m.session.Snapshot()
	m.expenses.SetExpenses(m.snapshot.Expenses, m.snapshot.Label)
	m.budgets.SetBudgets(m.snapshot.Budgets)
	m.budgets.SetTotals(m.snapshot.Totals)
}

func (m *Model) resize() {
	inner := max(m.width-4, 20)
	m.budgets.Resize(inner)
	m.input.Width = max(inner-4, 10)
	m.help.Width = m.width

	// Title, budgets box, categories, input box, status and help.
	reserved := 1 + len(m.snapshot.Budgets) + 6 + 1 + 3 + 1 + 2
	if m.showHelp {
		reserved += strings.Count(cli.Usage, "\n") + 5
	}
	m.expenses.Resize(inner, m.height-reserved-2)
}
