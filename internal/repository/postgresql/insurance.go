package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/twhr/payroll-backend-go/internal/domain/insurance"
	"github.com/twhr/payroll-backend-go/internal/pkg/database"
)

type insuranceGradeRepository struct {
	db *database.DB
}

func NewInsuranceGradeRepository(db *database.DB) insurance.GradeRepository {
	return &insuranceGradeRepository{db: db}
}

func (r *insuranceGradeRepository) LatestScheduleStart(ctx context.Context, gradeType insurance.GradeType, asOf time.Time) (time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT MAX(schedule_start)
		FROM insurance_grades
		WHERE grade_type = $1 AND schedule_start <= $2
	`

	var start *time.Time
	if err := q.QueryRow(ctx, query, gradeType, asOf).Scan(&start); err != nil {
		return time.Time{}, fmt.Errorf("failed to resolve schedule start: %w", err)
	}
	if start == nil {
		return time.Time{}, insurance.ErrNoSchedule
	}

	return *start, nil
}

func (r *insuranceGradeRepository) ListSchedule(ctx context.Context, gradeType insurance.GradeType, scheduleStart time.Time) ([]insurance.Grade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, schedule_start, grade_type, grade_number, salary_min, salary_max,
			   employee_fee, employer_fee, government_fee, note
		FROM insurance_grades
		WHERE grade_type = $1 AND schedule_start = $2
		ORDER BY grade_number
	`

	rows, err := q.Query(ctx, query, gradeType, scheduleStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance schedule: %w", err)
	}
	defer rows.Close()

	return scanGrades(rows)
}

func (r *insuranceGradeRepository) ListAll(ctx context.Context) ([]insurance.Grade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, schedule_start, grade_type, grade_number, salary_min, salary_max,
			   employee_fee, employer_fee, government_fee, note
		FROM insurance_grades
		ORDER BY schedule_start DESC, grade_type, grade_number
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance grades: %w", err)
	}
	defer rows.Close()

	return scanGrades(rows)
}

func scanGrades(rows pgx.Rows) ([]insurance.Grade, error) {
	var grades []insurance.Grade
	for rows.Next() {
		var g insurance.Grade
		if err := rows.Scan(
			&g.ID, &g.ScheduleStart, &g.Type, &g.GradeNumber, &g.SalaryMin, &g.SalaryMax,
			&g.EmployeeFee, &g.EmployerFee, &g.GovernmentFee, &g.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan insurance grade: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, nil
}

func (r *insuranceGradeRepository) ReplaceSchedule(ctx context.Context, gradeType insurance.GradeType, scheduleStart time.Time, grades []insurance.Grade) (int, error) {
	inserted := 0
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM insurance_grades WHERE grade_type = $1 AND schedule_start = $2`,
			gradeType, scheduleStart,
		); err != nil {
			return fmt.Errorf("failed to clear insurance schedule: %w", err)
		}

		query := `
			INSERT INTO insurance_grades (
				schedule_start, grade_type, grade_number, salary_min, salary_max,
				employee_fee, employer_fee, government_fee, note
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		for _, g := range grades {
			if _, err := tx.Exec(ctx, query,
				scheduleStart, gradeType, g.GradeNumber, g.SalaryMin, g.SalaryMax,
				g.EmployeeFee, g.EmployerFee, g.GovernmentFee, g.Note,
			); err != nil {
				return fmt.Errorf("failed to insert insurance grade %d: %w", g.GradeNumber, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *insuranceGradeRepository) UpdateGrade(ctx context.Context, grade insurance.Grade) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE insurance_grades
		SET salary_min = $1, salary_max = $2, employee_fee = $3,
			employer_fee = $4, government_fee = $5, note = $6
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		grade.SalaryMin, grade.SalaryMax, grade.EmployeeFee,
		grade.EmployerFee, grade.GovernmentFee, grade.Note, grade.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update insurance grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return insurance.ErrGradeNotFound
	}

	return nil
}

func (r *insuranceGradeRepository) DeleteGrade(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM insurance_grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete insurance grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return insurance.ErrGradeNotFound
	}

	return nil
}
