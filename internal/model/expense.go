package model

import (
	"fmt"
	"time"
)

// Expense is a single recorded spending. Category is a weak reference to
// Category.PK; NoCategory marks an expense whose category was deleted.
type Expense struct {
	ExpenseDate time.Time
	AddedDate   time.Time
	Comment     string
	Amount      float64
	Category    int64
	PK          int64
}

// ExpenseOption customizes an expense built by NewExpense.
type ExpenseOption func(*Expense)

// WithComment sets the expense comment.
func WithComment(comment string) ExpenseOption {
	return func(e *Expense) { e.Comment = comment }
}

// WithAddedDate overrides the creation timestamp.
func WithAddedDate(t time.Time) ExpenseOption {
	return func(e *Expense) { e.AddedDate = t }
}

// WithPK sets the primary key of an already persisted expense.
func WithPK(pk int64) ExpenseOption {
	return func(e *Expense) { e.PK = pk }
}

// NewExpense creates an expense added now, with an empty comment and no primary key
// unless overridden by opts.
func NewExpense(amount float64, category int64, expenseDate time.Time, opts ...ExpenseOption) Expense {
	e := Expense{
		Amount:      amount,
		Category:    category,
		ExpenseDate: expenseDate,
		AddedDate:   time.Now(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Equal reports whether both expenses hold the same values. Times are compared as instants.
func (e Expense) Equal(other Expense) bool {
	return e.PK == other.PK &&
		e.Amount == other.Amount &&
		e.Category == other.Category &&
		e.Comment == other.Comment &&
		e.ExpenseDate.Equal(other.ExpenseDate) &&
		e.AddedDate.Equal(other.AddedDate)
}

func (e Expense) String() string {
	return fmt.Sprintf("Expense(pk=%d, amount=%.2f, category=%d, date=%s, comment=%q)",
		e.PK, e.Amount, e.Category, e.ExpenseDate.Format("2006-01-02 15:04:05"), e.Comment)
}
