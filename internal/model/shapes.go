package model

import (
	"time"

	"github.com/alwaysmad/bookkeeper/internal/repository"
)

// CategoryShape describes how categories are stored.
var CategoryShape = repository.Descriptor[Category]{
	Name:   "category",
	Fields: []repository.Field{{Name: "name", Kind: repository.KindText}},
	Encode: func(c Category) []any { return []any{c.Name} },
	Decode: func(pk int64, v []any) Category {
		return Category{PK: pk, Name: v[0].(string)}
	},
	PK:     func(c Category) int64 { return c.PK },
	WithPK: func(c Category, pk int64) Category { c.PK = pk; return c },
}

// BudgetShape describes how budgets are stored. Spent is not persisted.
var BudgetShape = repository.Descriptor[Budget]{
	Name: "budget",
	Fields: []repository.Field{
		{Name: "amount", Kind: repository.KindFloat},
		{Name: "period_days", Kind: repository.KindInt},
	},
	Encode: func(b Budget) []any { return []any{b.Amount, int64(b.PeriodDays)} },
	Decode: func(pk int64, v []any) Budget {
		return Budget{PK: pk, Amount: v[0].(float64), PeriodDays: int(v[1].(int64))}
	},
	PK:     func(b Budget) int64 { return b.PK },
	WithPK: func(b Budget, pk int64) Budget { b.PK = pk; return b },
}

// ExpenseShape describes how expenses are stored.
var ExpenseShape = repository.Descriptor[Expense]{
	Name: "expense",
	Fields: []repository.Field{
		{Name: "amount", Kind: repository.KindFloat},
		{Name: "category", Kind: repository.KindInt},
		{Name: "expense_date", Kind: repository.KindTime},
		{Name: "comment", Kind: repository.KindText},
		{Name: "added_date", Kind: repository.KindTime},
	},
	Encode: func(e Expense) []any {
		return []any{e.Amount, e.Category, e.ExpenseDate, e.Comment, e.AddedDate}
	},
	Decode: func(pk int64, v []any) Expense {
		return Expense{
			PK:          pk,
			Amount:      v[0].(float64),
			Category:    v[1].(int64),
			ExpenseDate: v[2].(time.Time),
			Comment:     v[3].(string),
			AddedDate:   v[4].(time.Time),
		}
	},
	PK:     func(e Expense) int64 { return e.PK },
	WithPK: func(e Expense, pk int64) Expense { e.PK = pk; return e },
}
