package postgresql

import (
	"context"
	"fmt"

	"github.com/twhr/payroll-backend-go/internal/domain/attendance"
	"github.com/twhr/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) SummarizeMonth(ctx context.Context, year, month int) (map[int64]attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)
	monthStart, nextMonth := monthWindow(year, month)

	query := `
		SELECT employee_id,
			   COALESCE(SUM(late_minutes), 0),
			   COALESCE(SUM(early_leave_minutes), 0),
			   COALESCE(SUM(overtime1_minutes), 0),
			   COALESCE(SUM(overtime2_minutes), 0),
			   COALESCE(SUM(overtime3_minutes), 0)
		FROM attendance_records
		WHERE work_date >= $1 AND work_date < $2
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize attendance: %w", err)
	}
	defer rows.Close()

	summaries := make(map[int64]attendance.MonthlySummary)
	for rows.Next() {
		var s attendance.MonthlySummary
		if err := rows.Scan(
			&s.EmployeeID, &s.LateMinutes, &s.EarlyLeaveMinutes,
			&s.Overtime1Minutes, &s.Overtime2Minutes, &s.Overtime3Minutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary: %w", err)
		}
		summaries[s.EmployeeID] = s
	}

	return summaries, nil
}

func (r *attendanceRepository) ListSpecialSessions(ctx context.Context, year, month int) (map[int64][]attendance.SpecialSession, error) {
	q := GetQuerier(ctx, r.db)
	monthStart, nextMonth := monthWindow(year, month)

	query := `
		SELECT id, employee_id, work_date, check_in, check_out, note
		FROM special_overtime_sessions
		WHERE work_date >= $1 AND work_date < $2
		ORDER BY employee_id, work_date
	`

	rows, err := q.Query(ctx, query, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list special overtime sessions: %w", err)
	}
	defer rows.Close()

	sessions := make(map[int64][]attendance.SpecialSession)
	for rows.Next() {
		var s attendance.SpecialSession
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.Date, &s.CheckIn, &s.CheckOut, &s.Note); err != nil {
			return nil, fmt.Errorf("failed to scan special overtime session: %w", err)
		}
		sessions[s.EmployeeID] = append(sessions[s.EmployeeID], s)
	}

	return sessions, nil
}
