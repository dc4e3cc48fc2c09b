package leave

import "context"

// LeaveRepository is the aggregation contract over approved leave
// requests.
type LeaveRepository interface {
	// SummarizeMonth returns, per employee, total approved leave hours
	// grouped by leave type, restricted to leave whose start falls in
	// the target month.
	SummarizeMonth(ctx context.Context, year, month int) (map[int64]map[string]float64, error)
}
