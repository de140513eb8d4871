package testutil

import (
	"time"

	"github.com/alwaysmad/bookkeeper/internal/model"
)

// Date returns a local timestamp at second precision, the precision the store keeps.
func Date(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

// SampleCategories returns unpersisted categories with distinct names.
func SampleCategories() []model.Category {
	return []model.Category{
		model.NewCategory("Groceries"),
		model.NewCategory("Home"),
		model.NewCategory("Transport"),
	}
}

// SampleBudgets returns unpersisted day, week and month budgets.
func SampleBudgets() []model.Budget {
	return []model.Budget{
		model.NewBudget(1000, model.PeriodDay),
		model.NewBudget(7000, model.PeriodWeek),
		model.NewBudget(30000, model.PeriodMonth),
	}
}

// SampleExpenses returns unpersisted expenses; the first two share a category
// and the last is dated in UTC.
func SampleExpenses() []model.Expense {
	added := Date(2024, time.June, 10, 9, 0)
	return []model.Expense{
		model.NewExpense(100, 1, Date(2024, time.June, 10, 8, 30), model.WithAddedDate(added)),
		model.NewExpense(50.5, 1, Date(2024, time.June, 8, 19, 15), model.WithComment("dinner"), model.WithAddedDate(added)),
		model.NewExpense(20, 2, Date(2024, time.June, 1, 12, 0), model.WithComment("bus pass"), model.WithAddedDate(added)),
		model.NewExpense(12.5, 3, time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC), model.WithComment("card, UTC"),
			model.WithAddedDate(time.Date(2024, time.June, 10, 23, 30, 0, 0, time.UTC))),
	}
}
