package model

import "fmt"

// Conventional budget periods, in days.
const (
	PeriodDay   = 1
	PeriodWeek  = 7
	PeriodMonth = 30
)

// Budget is a spending limit for a reporting period.
type Budget struct {
	Amount     float64
	Spent      float64 // derived from expenses, never persisted
	PK         int64
	PeriodDays int
}

// NewBudget creates a budget. The primary key is optional and stays 0 until persisted.
func NewBudget(amount float64, periodDays int, pk ...int64) Budget {
	b := Budget{Amount: amount, PeriodDays: periodDays}
	if len(pk) > 0 {
		b.PK = pk[0]
	}
	return b
}

// Equal compares the persisted fields of both budgets.
func (b Budget) Equal(other Budget) bool {
	return b.PK == other.PK && b.Amount == other.Amount && b.PeriodDays == other.PeriodDays
}

// PeriodName names the conventional periods and falls back to a day count.
func (b Budget) PeriodName() string {
	switch b.PeriodDays {
	case PeriodDay:
		return "day"
	case PeriodWeek:
		return "week"
	case PeriodMonth, 31:
		return "month"
	default:
		return fmt.Sprintf("%d days", b.PeriodDays)
	}
}

func (b Budget) String() string {
	return fmt.Sprintf("Budget(pk=%d, amount=%.2f, period=%d)", b.PK, b.Amount, b.PeriodDays)
}
