package postgresql

import (
	"context"
	"fmt"

	"github.com/twhr/payroll-backend-go/internal/domain/employee"
	"github.com/twhr/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) ListActiveForMonth(ctx context.Context, year, month int) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	monthStart, nextMonth := monthWindow(year, month)

	query := `
		SELECT id, name, hr_code, nationality, entry_date, resign_date, arrival_date, company_name
		FROM employees
		WHERE (entry_date IS NULL OR entry_date < $2)
		  AND (resign_date IS NULL OR resign_date >= $1)
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.Name, &e.HRCode, &e.Nationality, &e.EntryDate, &e.ResignDate, &e.ArrivalDate, &e.CompanyName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}

func (r *employeeRepository) GetIDsByName(ctx context.Context) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name FROM employees`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee names: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan employee name: %w", err)
		}
		ids[name] = id
	}

	return ids, nil
}
