package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/alwaysmad/bookkeeper/internal/model"
)

// DateLayout is how expense dates are shown.
const DateLayout = "2006-01-02 15:04"

// RenderBudgets renders every budget with the amount spent in its period.
func RenderBudgets(budgets []model.Budget) string {
	if len(budgets) == 0 {
		return SubtleStyle.Render("No budgets.")
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("Period"),
		TableHeaderStyle.Render("Spent"),
		TableHeaderStyle.Render("Budget"),
		TableHeaderStyle.Render("Left"))
	for _, budget := range budgets {
		style := SpentStyle(budget.Spent, budget.Amount)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			budget.PeriodName(),
			style.Render(FormatAmount(budget.Spent)),
			FormatAmount(budget.Amount),
			style.Render(FormatAmount(budget.Amount-budget.Spent)))
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// RenderTotals renders the day, week and month totals on one line.
func RenderTotals(totals model.Totals) string {
	return fmt.Sprintf("Today %s   Week %s   Month %s",
		FormatAmount(totals.Day), FormatAmount(totals.Week), FormatAmount(totals.Month))
}

// RenderCategories renders the category names as a comma separated list.
func RenderCategories(categories []model.Category) string {
	if len(categories) == 0 {
		return SubtleStyle.Render("No categories.")
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

// RenderExpenses renders the expenses newest first, with the category label of each.
func RenderExpenses(s Snapshot) string {
	if len(s.Expenses) == 0 {
		return SubtleStyle.Render("No expenses yet.")
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("#"),
		TableHeaderStyle.Render("Date"),
		TableHeaderStyle.Render("Amount"),
		TableHeaderStyle.Render("Category"),
		TableHeaderStyle.Render("Comment"))
	for i := len(s.Expenses) - 1; i >= 0; i-- {
		e := s.Expenses[i]
		label := s.Label(e)
		if label == model.DeletedCategoryLabel {
			label = SubtleStyle.Render(label)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.PK, e.ExpenseDate.Format(DateLayout), FormatAmount(e.Amount), label, e.Comment)
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// RenderSnapshot renders the whole state: budgets and totals side by side,
// then categories and expenses.
func RenderSnapshot(s Snapshot) string {
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderBox("Budgets", RenderBudgets(s.Budgets)),
		RenderBox("Spent", RenderTotals(s.Totals)),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		RenderBox("Categories", RenderCategories(s.Categories)),
		RenderBox("Expenses", RenderExpenses(s)),
	)
}
