package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alwaysmad/bookkeeper/internal/model"
	"github.com/alwaysmad/bookkeeper/internal/repository"
	"github.com/alwaysmad/bookkeeper/internal/testutil"
)

func newMemory[T any](desc repository.Descriptor[T]) func(t *testing.T) repository.Repository[T] {
	return func(t *testing.T) repository.Repository[T] {
		t.Helper()
		repo, err := repository.NewMemory(desc)
		require.NoError(t, err)
		return repo
	}
}

func TestMemory_CategoryContract(t *testing.T) {
	testutil.RunContract(t, testutil.Contract[model.Category]{
		New:     newMemory(model.CategoryShape),
		Desc:    model.CategoryShape,
		Samples: testutil.SampleCategories(),
		Modify: func(c model.Category) model.Category {
			c.Name += " (renamed)"
			return c
		},
		Filter: func(c model.Category) repository.Filter {
			return repository.Filter{"name": c.Name}
		},
	})
}

func TestMemory_BudgetContract(t *testing.T) {
	testutil.RunContract(t, testutil.Contract[model.Budget]{
		New:     newMemory(model.BudgetShape),
		Desc:    model.BudgetShape,
		Samples: testutil.SampleBudgets(),
		Modify: func(b model.Budget) model.Budget {
			b.Amount *= 2
			b.PeriodDays = 31
			return b
		},
		Filter: func(b model.Budget) repository.Filter {
			return repository.Filter{"period_days": b.PeriodDays}
		},
	})
}

func TestMemory_ExpenseContract(t *testing.T) {
	testutil.RunContract(t, testutil.Contract[model.Expense]{
		New:     newMemory(model.ExpenseShape),
		Desc:    model.ExpenseShape,
		Samples: testutil.SampleExpenses(),
		Modify: func(e model.Expense) model.Expense {
			e.Amount += 1
			e.Category = model.NoCategory
			e.ExpenseDate = e.ExpenseDate.AddDate(0, 0, -1)
			e.Comment = "edited"
			e.AddedDate = e.AddedDate.Add(time.Hour)
			return e
		},
		Filter: func(e model.Expense) repository.Filter {
			return repository.Filter{"category": e.Category}
		},
	})
}
