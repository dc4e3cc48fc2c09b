package postgresql

import (
	"context"
	"fmt"

	"github.com/twhr/payroll-backend-go/internal/domain/leave"
	"github.com/twhr/payroll-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) SummarizeMonth(ctx context.Context, year, month int) (map[int64]map[string]float64, error) {
	q := GetQuerier(ctx, r.db)
	monthStart, nextMonth := monthWindow(year, month)

	query := `
		SELECT employee_id, leave_type, COALESCE(SUM(hours), 0)
		FROM leave_requests
		WHERE status = $1
		  AND start_time >= $2 AND start_time < $3
		GROUP BY employee_id, leave_type
	`

	rows, err := q.Query(ctx, query, leave.StatusApproved, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize leave: %w", err)
	}
	defer rows.Close()

	summaries := make(map[int64]map[string]float64)
	for rows.Next() {
		var employeeID int64
		var leaveType string
		var hours float64
		if err := rows.Scan(&employeeID, &leaveType, &hours); err != nil {
			return nil, fmt.Errorf("failed to scan leave summary: %w", err)
		}
		if summaries[employeeID] == nil {
			summaries[employeeID] = make(map[string]float64)
		}
		summaries[employeeID][leaveType] = hours
	}

	return summaries, nil
}
