package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/twhr/payroll-backend-go/internal/domain/payroll"
	"github.com/twhr/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== ITEM CATALOG ==========

func (r *payrollRepository) ListItems(ctx context.Context, activeOnly bool) ([]payroll.SalaryItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, type, is_active FROM salary_items`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary items: %w", err)
	}
	defer rows.Close()

	var items []payroll.SalaryItem
	for rows.Next() {
		var item payroll.SalaryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Type, &item.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan salary item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *payrollRepository) GetItemTypes(ctx context.Context) (map[string]payroll.ItemType, error) {
	items, err := r.ListItems(ctx, false)
	if err != nil {
		return nil, err
	}

	types := make(map[string]payroll.ItemType, len(items))
	for _, item := range items {
		types[item.Name] = item.Type
	}
	return types, nil
}

func (r *payrollRepository) GetItemsByName(ctx context.Context) (map[string]payroll.SalaryItem, error) {
	items, err := r.ListItems(ctx, false)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]payroll.SalaryItem, len(items))
	for _, item := range items {
		byName[item.Name] = item
	}
	return byName, nil
}

func (r *payrollRepository) CreateItem(ctx context.Context, item payroll.SalaryItem) (payroll.SalaryItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_items (name, type, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, name, type, is_active
	`

	var created payroll.SalaryItem
	err := q.QueryRow(ctx, query, item.Name, item.Type, item.IsActive).Scan(
		&created.ID, &created.Name, &created.Type, &created.IsActive,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_item_name") {
			return payroll.SalaryItem{}, payroll.ErrSalaryItemNameExists
		}
		return payroll.SalaryItem{}, fmt.Errorf("failed to create salary item: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) UpdateItem(ctx context.Context, item payroll.SalaryItem) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_items
		SET name = $1, type = $2, is_active = $3
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, item.Name, item.Type, item.IsActive, item.ID)
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_item_name") {
			return payroll.ErrSalaryItemNameExists
		}
		return fmt.Errorf("failed to update salary item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSalaryItemNotFound
	}

	return nil
}

func (r *payrollRepository) DeleteItem(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_items WHERE id = $1`, id)
	if err != nil {
		// Items referenced by detail or recurring rows are deactivated
		// instead, so history keeps its labels.
		if strings.Contains(err.Error(), "foreign key") {
			if _, updErr := q.Exec(ctx, `UPDATE salary_items SET is_active = false WHERE id = $1`, id); updErr != nil {
				return fmt.Errorf("failed to deactivate salary item: %w", updErr)
			}
			return nil
		}
		return fmt.Errorf("failed to delete salary item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSalaryItemNotFound
	}

	return nil
}

// ========== BASE SALARY HISTORY ==========

func (r *payrollRepository) CurrentBase(ctx context.Context, employeeID int64, asOf time.Time) (payroll.SalaryBaseRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, base_salary, dependents, start_date, end_date, note
		FROM salary_base_history
		WHERE employee_id = $1 AND start_date <= $2
		ORDER BY start_date DESC
		LIMIT 1
	`

	var rec payroll.SalaryBaseRecord
	err := q.QueryRow(ctx, query, employeeID, asOf).Scan(
		&rec.ID, &rec.EmployeeID, &rec.BaseSalary, &rec.Dependents, &rec.StartDate, &rec.EndDate, &rec.Note,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryBaseRecord{}, payroll.ErrBaseRecordNotFound
		}
		return payroll.SalaryBaseRecord{}, fmt.Errorf("failed to get current base salary: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListBaseHistory(ctx context.Context) ([]payroll.BaseHistoryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.employee_id, b.base_salary, b.dependents, b.start_date, b.end_date, b.note, e.name
		FROM salary_base_history b
		JOIN employees e ON e.id = b.employee_id
		ORDER BY b.employee_id, b.start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list base salary history: %w", err)
	}
	defer rows.Close()

	var history []payroll.BaseHistoryRow
	for rows.Next() {
		var row payroll.BaseHistoryRow
		if err := rows.Scan(
			&row.ID, &row.EmployeeID, &row.BaseSalary, &row.Dependents,
			&row.StartDate, &row.EndDate, &row.Note, &row.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan base salary row: %w", err)
		}
		history = append(history, row)
	}

	return history, nil
}

func (r *payrollRepository) AddBaseRecord(ctx context.Context, record payroll.SalaryBaseRecord) (payroll.SalaryBaseRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_base_history (employee_id, base_salary, dependents, start_date, end_date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, base_salary, dependents, start_date, end_date, note
	`

	var created payroll.SalaryBaseRecord
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.BaseSalary, record.Dependents, record.StartDate, record.EndDate, record.Note,
	).Scan(
		&created.ID, &created.EmployeeID, &created.BaseSalary, &created.Dependents,
		&created.StartDate, &created.EndDate, &created.Note,
	)
	if err != nil {
		return payroll.SalaryBaseRecord{}, fmt.Errorf("failed to add base salary record: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) InsertBaseRecords(ctx context.Context, records []payroll.SalaryBaseRecord) (int, error) {
	inserted := 0
	for _, rec := range records {
		if _, err := r.AddBaseRecord(ctx, rec); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (r *payrollRepository) ListBelowMinimumWage(ctx context.Context, wage decimal.Decimal) ([]payroll.MinimumWageRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (b.employee_id)
			   b.employee_id, e.name, b.base_salary, b.dependents
		FROM salary_base_history b
		JOIN employees e ON e.id = b.employee_id
		WHERE b.start_date <= NOW()
		  AND e.resign_date IS NULL
		ORDER BY b.employee_id, b.start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list base salaries: %w", err)
	}
	defer rows.Close()

	var below []payroll.MinimumWageRow
	for rows.Next() {
		var row payroll.MinimumWageRow
		if err := rows.Scan(&row.EmployeeID, &row.EmployeeName, &row.BaseSalary, &row.Dependents); err != nil {
			return nil, fmt.Errorf("failed to scan base salary row: %w", err)
		}
		if row.BaseSalary.LessThan(wage) {
			below = append(below, row)
		}
	}

	return below, nil
}

// ========== RECURRING ASSIGNMENTS ==========

func (r *payrollRepository) ListRecurringForMonth(ctx context.Context, employeeID int64, monthEnd time.Time) ([]payroll.RecurringItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.employee_id, r.salary_item_id, r.amount, r.start_date, r.end_date, r.note,
			   i.name, i.type
		FROM recurring_items r
		JOIN salary_items i ON i.id = r.salary_item_id
		WHERE r.employee_id = $1
		  AND r.start_date <= $2
		  AND (r.end_date IS NULL OR r.end_date >= $2)
		ORDER BY r.id
	`

	rows, err := q.Query(ctx, query, employeeID, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring items: %w", err)
	}
	defer rows.Close()

	return scanRecurring(rows)
}

func (r *payrollRepository) ListRecurring(ctx context.Context) ([]payroll.RecurringItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.employee_id, r.salary_item_id, r.amount, r.start_date, r.end_date, r.note,
			   i.name, i.type
		FROM recurring_items r
		JOIN salary_items i ON i.id = r.salary_item_id
		ORDER BY r.employee_id, r.id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring items: %w", err)
	}
	defer rows.Close()

	return scanRecurring(rows)
}

func scanRecurring(rows pgx.Rows) ([]payroll.RecurringItem, error) {
	var items []payroll.RecurringItem
	for rows.Next() {
		var item payroll.RecurringItem
		if err := rows.Scan(
			&item.ID, &item.EmployeeID, &item.SalaryItemID, &item.Amount,
			&item.StartDate, &item.EndDate, &item.Note,
			&item.ItemName, &item.ItemType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recurring item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *payrollRepository) ReplaceRecurring(ctx context.Context, employeeIDs []int64, salaryItemID int64, amount decimal.Decimal, start time.Time, end *time.Time, note *string) (int, error) {
	assigned := 0
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM recurring_items WHERE salary_item_id = $1 AND employee_id = ANY($2)`,
			salaryItemID, employeeIDs,
		); err != nil {
			return fmt.Errorf("failed to clear recurring items: %w", err)
		}

		query := `
			INSERT INTO recurring_items (employee_id, salary_item_id, amount, start_date, end_date, note)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		for _, employeeID := range employeeIDs {
			if _, err := tx.Exec(ctx, query, employeeID, salaryItemID, amount, start, end, note); err != nil {
				return fmt.Errorf("failed to assign recurring item: %w", err)
			}
			assigned++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return assigned, nil
}

func (r *payrollRepository) RemoveRecurring(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM recurring_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to remove recurring item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecurringNotFound
	}

	return nil
}

// ========== SALARY RECORDS ==========

const recordColumns = `
	s.id, s.employee_id, s.year, s.month, s.status, s.pay_date, s.note,
	s.bank_transfer_override,
	s.total_payable, s.total_deduction, s.net_salary, s.bank_transfer, s.cash,
	e.name, e.hr_code, e.company_name, b.base_salary, b.dependents
`

const recordJoins = `
	FROM salary_records s
	JOIN employees e ON e.id = s.employee_id
	LEFT JOIN LATERAL (
		SELECT base_salary, dependents
		FROM salary_base_history
		WHERE employee_id = s.employee_id
		  AND start_date <= (make_date(s.year, s.month, 1) + INTERVAL '1 month' - INTERVAL '1 day')
		ORDER BY start_date DESC
		LIMIT 1
	) b ON true
`

func scanRecord(row pgx.Row) (payroll.SalaryRecord, error) {
	var rec payroll.SalaryRecord
	var totalPayable, totalDeduction, netSalary, bankTransfer, cash *decimal.Decimal
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Year, &rec.Month, &rec.Status, &rec.PayDate, &rec.Note,
		&rec.BankTransferOverride,
		&totalPayable, &totalDeduction, &netSalary, &bankTransfer, &cash,
		&rec.EmployeeName, &rec.HRCode, &rec.CompanyName, &rec.BaseSalary, &rec.Dependents,
	)
	if err != nil {
		return payroll.SalaryRecord{}, err
	}

	// Snapshot columns are written together at finalize time; a record
	// with any of them populated carries all of them.
	if totalPayable != nil && totalDeduction != nil && netSalary != nil && bankTransfer != nil && cash != nil {
		rec.Snapshot = &payroll.TotalsSnapshot{
			TotalPayable:   *totalPayable,
			TotalDeduction: *totalDeduction,
			NetSalary:      *netSalary,
			BankTransfer:   *bankTransfer,
			Cash:           *cash,
		}
	}

	return rec, nil
}

func (r *payrollRepository) GetRecord(ctx context.Context, employeeID int64, year, month int) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + recordJoins + `
		WHERE s.employee_id = $1 AND s.year = $2 AND s.month = $3
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListRecordsForMonth(ctx context.Context, year, month int) ([]payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + recordJoins + `
		WHERE s.year = $1 AND s.month = $2
		ORDER BY s.employee_id
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []payroll.SalaryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *payrollRepository) HasRecords(ctx context.Context, year, month int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM salary_records WHERE year = $1 AND month = $2)`,
		year, month,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check salary records: %w", err)
	}

	return exists, nil
}

func (r *payrollRepository) EnsureDraftRecord(ctx context.Context, employeeID int64, year, month int) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	// ON CONFLICT DO NOTHING so an existing record, draft or final,
	// survives untouched.
	_, err := q.Exec(ctx, `
		INSERT INTO salary_records (employee_id, year, month, status)
		VALUES ($1, $2, $3, 'draft')
		ON CONFLICT (employee_id, year, month) DO NOTHING
	`, employeeID, year, month)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to ensure salary record: %w", err)
	}

	return r.GetRecord(ctx, employeeID, year, month)
}

func (r *payrollRepository) SetBankTransferOverride(ctx context.Context, salaryID int64, amount decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE salary_records SET bank_transfer_override = $1 WHERE id = $2`,
		amount, salaryID,
	)
	if err != nil {
		return fmt.Errorf("failed to set bank transfer override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

func (r *payrollRepository) SnapshotTotals(ctx context.Context, salaryID int64, snapshot payroll.TotalsSnapshot) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET status = 'final',
			total_payable = $1, total_deduction = $2, net_salary = $3,
			bank_transfer = $4, cash = $5
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		snapshot.TotalPayable, snapshot.TotalDeduction, snapshot.NetSalary,
		snapshot.BankTransfer, snapshot.Cash, salaryID,
	)
	if err != nil {
		return fmt.Errorf("failed to snapshot salary totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

func (r *payrollRepository) RevertToDraft(ctx context.Context, year, month int, employeeIDs []int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET status = 'draft',
			total_payable = NULL, total_deduction = NULL, net_salary = NULL,
			bank_transfer = NULL, cash = NULL
		WHERE year = $1 AND month = $2 AND status = 'final'
	`
	args := []interface{}{year, month}
	if len(employeeIDs) > 0 {
		query += ` AND employee_id = ANY($3)`
		args = append(args, employeeIDs)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to revert salary records: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *payrollRepository) DeleteMonth(ctx context.Context, year, month int) (int64, error) {
	var removed int64
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM salary_details
			WHERE salary_id IN (SELECT id FROM salary_records WHERE year = $1 AND month = $2)
		`, year, month); err != nil {
			return fmt.Errorf("failed to delete salary details: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM salary_records WHERE year = $1 AND month = $2`,
			year, month,
		)
		if err != nil {
			return fmt.Errorf("failed to delete salary records: %w", err)
		}
		removed = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// ========== DETAIL ROWS ==========

func (r *payrollRepository) ReplaceDetails(ctx context.Context, salaryID int64, details []payroll.SalaryDetail) (int, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM salary_details WHERE salary_id = $1`, salaryID); err != nil {
		return 0, fmt.Errorf("failed to clear salary details: %w", err)
	}

	query := `
		INSERT INTO salary_details (salary_id, salary_item_id, amount)
		VALUES ($1, $2, $3)
	`
	inserted := 0
	for _, d := range details {
		if _, err := q.Exec(ctx, query, salaryID, d.SalaryItemID, d.Amount); err != nil {
			return inserted, fmt.Errorf("failed to insert salary detail: %w", err)
		}
		inserted++
	}

	return inserted, nil
}

func (r *payrollRepository) UpsertDetail(ctx context.Context, salaryID, salaryItemID int64, amount decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_details (salary_id, salary_item_id, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (salary_id, salary_item_id) DO UPDATE SET amount = EXCLUDED.amount
	`

	if _, err := q.Exec(ctx, query, salaryID, salaryItemID, amount); err != nil {
		return fmt.Errorf("failed to upsert salary detail: %w", err)
	}

	return nil
}

func (r *payrollRepository) DetailsForMonth(ctx context.Context, year, month int) (map[int64]map[string]decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.employee_id, i.name, d.amount
		FROM salary_details d
		JOIN salary_records s ON s.id = d.salary_id
		JOIN salary_items i ON i.id = d.salary_item_id
		WHERE s.year = $1 AND s.month = $2
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary details: %w", err)
	}
	defer rows.Close()

	details := make(map[int64]map[string]decimal.Decimal)
	for rows.Next() {
		var employeeID int64
		var itemName string
		var amount decimal.Decimal
		if err := rows.Scan(&employeeID, &itemName, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan salary detail: %w", err)
		}
		if details[employeeID] == nil {
			details[employeeID] = make(map[string]decimal.Decimal)
		}
		details[employeeID][itemName] = amount
	}

	return details, nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) ListZeroInsuranceNames(ctx context.Context, year, month int) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.name
		FROM salary_records s
		JOIN employees e ON e.id = s.employee_id
		LEFT JOIN salary_details d ON d.salary_id = s.id
			AND d.salary_item_id = (SELECT id FROM salary_items WHERE name = $3)
		WHERE s.year = $1 AND s.month = $2
		GROUP BY e.name
		HAVING COALESCE(SUM(d.amount), 0) = 0
		ORDER BY e.name
	`

	rows, err := q.Query(ctx, query, year, month, payroll.ItemInsurance)
	if err != nil {
		return nil, fmt.Errorf("failed to list zero-insurance employees: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan employee name: %w", err)
		}
		names = append(names, name)
	}

	return names, nil
}

func (r *payrollRepository) SumItemsByMonth(ctx context.Context, year int, itemIDs []int64) ([]payroll.ItemMonthlyTotal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.employee_id, e.name, e.hr_code, s.month, SUM(d.amount)
		FROM salary_details d
		JOIN salary_records s ON s.id = d.salary_id
		JOIN employees e ON e.id = s.employee_id
		WHERE s.year = $1 AND d.salary_item_id = ANY($2)
		GROUP BY s.employee_id, e.name, e.hr_code, s.month
		ORDER BY s.employee_id, s.month
	`

	rows, err := q.Query(ctx, query, year, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum salary items: %w", err)
	}
	defer rows.Close()

	var totals []payroll.ItemMonthlyTotal
	for rows.Next() {
		var t payroll.ItemMonthlyTotal
		if err := rows.Scan(&t.EmployeeID, &t.EmployeeName, &t.HRCode, &t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan item total: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, nil
}
