package controller

import (
	"time"

	"github.com/alwaysmad/bookkeeper/internal/model"
)

// Window thresholds, in days before today. A window includes its threshold day.
const (
	weekWindowDays  = 7
	monthWindowDays = 31
)

// ComputeTotals sums expenses dated today, since today-7 days and since
// today-31 days. The windows overlap: an expense from today counts in all three.
func ComputeTotals(expenses []model.Expense, now time.Time) model.Totals {
	today := dateOf(now)
	week := today.AddDate(0, 0, -weekWindowDays)
	month := today.AddDate(0, 0, -monthWindowDays)

	var totals model.Totals
	for _, e := range expenses {
		day := dateOf(e.ExpenseDate)
		if !day.Before(month) {
			totals.Month += e.Amount
		}
		if !day.Before(week) {
			totals.Week += e.Amount
		}
		if !day.Before(today) {
			totals.Day += e.Amount
		}
	}
	return totals
}

// dateOf drops the clock part, keeping the calendar date of t as written.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
