package attendance

import "time"

// MonthlySummary aggregates one employee's attendance rows over a
// month. Every field defaults to zero when no rows exist.
type MonthlySummary struct {
	EmployeeID        int64
	LateMinutes       int
	EarlyLeaveMinutes int
	Overtime1Minutes  int
	Overtime2Minutes  int
	Overtime3Minutes  int
}

// SpecialSession is an allowance-overtime shift recorded outside the
// regular attendance feed (weekend duty, event support). It is paid
// with the statutory two-hour tier split.
type SpecialSession struct {
	ID         int64
	EmployeeID int64
	Date       time.Time
	CheckIn    time.Time
	CheckOut   time.Time
	Note       *string
}

// DurationHours returns the session length in hours.
func (s SpecialSession) DurationHours() float64 {
	return s.CheckOut.Sub(s.CheckIn).Hours()
}
