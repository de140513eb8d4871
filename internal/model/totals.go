package model

// Totals are the rolling spending sums over the day, week and month windows.
// They are derived from the expense set and never stored.
type Totals struct {
	Day   float64
	Week  float64
	Month float64
}

// ForPeriod returns the total matching a budget period.
func (t Totals) ForPeriod(days int) float64 {
	switch {
	case days <= PeriodDay:
		return t.Day
	case days <= PeriodWeek:
		return t.Week
	default:
		return t.Month
	}
}
