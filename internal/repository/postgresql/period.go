package postgresql

import "time"

// monthWindow returns the first day of the month and the first day of
// the next month, the half-open range used by every month-scoped query.
func monthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
