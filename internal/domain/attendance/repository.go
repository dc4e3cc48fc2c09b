package attendance

import "context"

// AttendanceRepository is the aggregation contract over the daily
// attendance store. Attendance CRUD and calendar awareness live
// upstream; the engine only sums minutes.
type AttendanceRepository interface {
	// SummarizeMonth sums late/early-leave/overtime minutes per
	// employee across all attendance rows in the month window.
	SummarizeMonth(ctx context.Context, year, month int) (map[int64]MonthlySummary, error)

	// ListSpecialSessions returns the month's allowance-overtime
	// sessions grouped by employee.
	ListSpecialSessions(ctx context.Context, year, month int) (map[int64][]SpecialSession, error)
}
