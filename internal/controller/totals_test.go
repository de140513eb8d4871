package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alwaysmad/bookkeeper/internal/model"
)

func expenseOn(amount float64, year int, month time.Month, day int) model.Expense {
	return model.NewExpense(amount, 1, time.Date(year, month, day, 13, 45, 0, 0, time.Local))
}

func TestComputeTotals(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		expenses []model.Expense
		want     model.Totals
	}{
		{
			name: "no expenses",
			want: model.Totals{},
		},
		{
			name: "overlapping windows",
			expenses: []model.Expense{
				expenseOn(100, 2024, time.June, 10),
				expenseOn(50, 2024, time.June, 8),
				expenseOn(20, 2024, time.June, 1),
				expenseOn(5, 2024, time.May, 1),
			},
			want: model.Totals{Day: 100, Week: 150, Month: 170},
		},
		{
			name: "week threshold is inclusive",
			expenses: []model.Expense{
				expenseOn(7, 2024, time.June, 3),
				expenseOn(8, 2024, time.June, 2),
			},
			want: model.Totals{Day: 0, Week: 7, Month: 15},
		},
		{
			name: "month threshold is inclusive",
			expenses: []model.Expense{
				expenseOn(31, 2024, time.May, 10),
				expenseOn(32, 2024, time.May, 9),
			},
			want: model.Totals{Month: 31},
		},
		{
			name: "earlier today still counts as today",
			expenses: []model.Expense{
				model.NewExpense(3, 1, time.Date(2024, time.June, 10, 0, 0, 1, 0, time.Local)),
			},
			want: model.Totals{Day: 3, Week: 3, Month: 3},
		},
		{
			name: "future expenses count everywhere",
			expenses: []model.Expense{
				expenseOn(9, 2024, time.June, 12),
			},
			want: model.Totals{Day: 9, Week: 9, Month: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTotals(tt.expenses, now))
		})
	}
}

func TestComputeTotals_IgnoresCategory(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.Local)
	orphan := expenseOn(12, 2024, time.June, 10)
	orphan.Category = model.NoCategory

	got := ComputeTotals([]model.Expense{orphan, expenseOn(1, 2024, time.June, 10)}, now)
	assert.Equal(t, 13.0, got.Day)
}
