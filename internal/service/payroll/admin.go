package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/twhr/payroll-backend-go/internal/domain/payroll"
)

// ========== ITEM CATALOG ==========

func (s *payrollService) ListItems(ctx context.Context, activeOnly bool) ([]payroll.SalaryItem, error) {
	return s.payrollRepo.ListItems(ctx, activeOnly)
}

func (s *payrollService) CreateItem(ctx context.Context, req payroll.CreateSalaryItemRequest) (payroll.SalaryItem, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryItem{}, err
	}

	item := payroll.SalaryItem{
		Name:     req.Name,
		Type:     payroll.ItemType(req.Type),
		IsActive: true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	return s.payrollRepo.CreateItem(ctx, item)
}

func (s *payrollService) UpdateItem(ctx context.Context, item payroll.SalaryItem) error {
	if item.Name == "" {
		return payroll.ErrSalaryItemNotFound
	}
	if item.Type != payroll.ItemTypeEarning && item.Type != payroll.ItemTypeDeduction {
		return payroll.ErrInvalidItemType
	}
	return s.payrollRepo.UpdateItem(ctx, item)
}

func (s *payrollService) DeleteItem(ctx context.Context, id int64) error {
	return s.payrollRepo.DeleteItem(ctx, id)
}

// ========== BASE SALARY ADMINISTRATION ==========

func (s *payrollService) ListBaseHistory(ctx context.Context) ([]payroll.BaseHistoryRow, error) {
	return s.payrollRepo.ListBaseHistory(ctx)
}

func (s *payrollService) AddBaseRecord(ctx context.Context, record payroll.SalaryBaseRecord) (payroll.SalaryBaseRecord, error) {
	if record.EmployeeID == 0 || record.BaseSalary.IsNegative() || record.StartDate.IsZero() {
		return payroll.SalaryBaseRecord{}, payroll.ErrBaseRecordNotFound
	}
	return s.payrollRepo.AddBaseRecord(ctx, record)
}

func (s *payrollService) ListBelowMinimumWage(ctx context.Context, wage decimal.Decimal) ([]payroll.MinimumWageRow, error) {
	if !wage.IsPositive() {
		return nil, nil
	}
	return s.payrollRepo.ListBelowMinimumWage(ctx, wage)
}

// RaiseBaseSalaries appends one new history record per employee at the
// effective date, carrying each employee's current dependents forward.
func (s *payrollService) RaiseBaseSalaries(ctx context.Context, req payroll.RaiseBaseSalaryRequest) (int, error) {
	if len(req.EmployeeIDs) == 0 || !req.NewBaseSalary.IsPositive() {
		return 0, payroll.ErrInvalidPeriod
	}
	effective, err := parseDate(req.EffectiveDate)
	if err != nil {
		return 0, fmt.Errorf("invalid effective date: %w", err)
	}

	records := make([]payroll.SalaryBaseRecord, 0, len(req.EmployeeIDs))
	for _, employeeID := range req.EmployeeIDs {
		dependents := 0.0
		current, err := s.payrollRepo.CurrentBase(ctx, employeeID, effective)
		switch {
		case err == nil:
			dependents = current.Dependents
		case errors.Is(err, payroll.ErrBaseRecordNotFound):
			// First record for this employee.
		default:
			return 0, fmt.Errorf("load current base for employee %d: %w", employeeID, err)
		}
		records = append(records, payroll.SalaryBaseRecord{
			EmployeeID: employeeID,
			BaseSalary: req.NewBaseSalary,
			Dependents: dependents,
			StartDate:  effective,
			Note:       req.Note,
		})
	}

	inserted := 0
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := s.payrollRepo.InsertBaseRecords(ctx, records)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// ========== RECURRING ASSIGNMENTS ==========

func (s *payrollService) ListRecurring(ctx context.Context) ([]payroll.RecurringItem, error) {
	return s.payrollRepo.ListRecurring(ctx)
}

// AssignRecurring replaces the (employees, item) assignments with one
// new amount and validity window.
func (s *payrollService) AssignRecurring(ctx context.Context, req payroll.AssignRecurringRequest) (int, error) {
	if len(req.EmployeeIDs) == 0 || req.SalaryItemID == 0 {
		return 0, payroll.ErrRecurringNotFound
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	var end *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			return 0, fmt.Errorf("invalid end date: %w", err)
		}
		end = &parsed
	}

	return s.payrollRepo.ReplaceRecurring(ctx, req.EmployeeIDs, req.SalaryItemID, req.Amount, start, end, req.Note)
}

func (s *payrollService) RemoveRecurring(ctx context.Context, id int64) error {
	return s.payrollRepo.RemoveRecurring(ctx, id)
}
