package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twhr/payroll-backend-go/internal/config"
	"github.com/twhr/payroll-backend-go/internal/domain/attendance"
	"github.com/twhr/payroll-backend-go/internal/domain/employee"
	"github.com/twhr/payroll-backend-go/internal/domain/insurance"
	"github.com/twhr/payroll-backend-go/internal/domain/leave"
	"github.com/twhr/payroll-backend-go/internal/domain/payroll"
	"github.com/twhr/payroll-backend-go/internal/pkg/database"
)

type payrollService struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	grades         insurance.GradeLookup
	calculator     *Calculator
	tx             database.Transactor
	cfg            config.PayrollConfig
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	grades insurance.GradeLookup,
	tx database.Transactor,
	cfg config.PayrollConfig,
) payroll.PayrollService {
	return &payrollService{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		grades:         grades,
		calculator:     NewCalculator(cfg, grades),
		tx:             tx,
		cfg:            cfg,
	}
}

func (s *payrollService) ListActiveEmployees(ctx context.Context, year, month int) ([]employee.Employee, error) {
	return s.employeeRepo.ListActiveForMonth(ctx, year, month)
}

// GenerateDraft computes the wide month table without touching
// storage; the operator reviews it and saves explicitly.
func (s *payrollService) GenerateDraft(ctx context.Context, req payroll.GenerateDraftRequest) (payroll.Draft, error) {
	if err := req.Validate(); err != nil {
		return payroll.Draft{}, err
	}

	employees, err := s.employeeRepo.ListActiveForMonth(ctx, req.Year, req.Month)
	if err != nil {
		return payroll.Draft{}, fmt.Errorf("list employees: %w", err)
	}

	attSummaries, err := s.attendanceRepo.SummarizeMonth(ctx, req.Year, req.Month)
	if err != nil {
		return payroll.Draft{}, fmt.Errorf("summarize attendance: %w", err)
	}
	specialSessions, err := s.attendanceRepo.ListSpecialSessions(ctx, req.Year, req.Month)
	if err != nil {
		return payroll.Draft{}, fmt.Errorf("list special overtime: %w", err)
	}
	leaveSummaries, err := s.leaveRepo.SummarizeMonth(ctx, req.Year, req.Month)
	if err != nil {
		return payroll.Draft{}, fmt.Errorf("summarize leave: %w", err)
	}
	itemTypes, err := s.payrollRepo.GetItemTypes(ctx)
	if err != nil {
		return payroll.Draft{}, fmt.Errorf("load item catalog: %w", err)
	}

	selfInsured := make(map[string]bool, len(req.SelfInsuredNames))
	for _, name := range req.SelfInsuredNames {
		selfInsured[name] = true
	}

	monthEnd := monthEndDate(req.Year, req.Month)
	rows := make([]payroll.DraftRow, 0, len(employees))
	for _, emp := range employees {
		input := ComputeInput{
			Employee:        emp,
			Year:            req.Year,
			Month:           req.Month,
			SelfInsured:     selfInsured[emp.Name],
			Attendance:      attSummaries[emp.ID],
			SpecialSessions: specialSessions[emp.ID],
			LeaveHours:      leaveSummaries[emp.ID],
		}

		base, err := s.payrollRepo.CurrentBase(ctx, emp.ID, monthEnd)
		switch {
		case err == nil:
			input.Base = base
			input.HasBase = true
		case errors.Is(err, payroll.ErrBaseRecordNotFound):
			// Compute flags the zero base itself.
		default:
			return payroll.Draft{}, fmt.Errorf("load base salary for employee %d: %w", emp.ID, err)
		}

		recurring, err := s.payrollRepo.ListRecurringForMonth(ctx, emp.ID, monthEnd)
		if err != nil {
			return payroll.Draft{}, fmt.Errorf("load recurring items for employee %d: %w", emp.ID, err)
		}
		input.Recurring = recurring

		computed, err := s.calculator.Compute(ctx, input)
		if err != nil {
			return payroll.Draft{}, fmt.Errorf("compute salary for employee %d: %w", emp.ID, err)
		}

		rows = append(rows, payroll.DraftRow{
			EmployeeID:     emp.ID,
			EmployeeName:   emp.Name,
			HRCode:         emp.HRCode,
			CompanyName:    emp.CompanyName,
			Items:          computed.Items,
			CompanyCosts:   computed.CompanyCosts,
			Overtime1Hours: float64(input.Attendance.Overtime1Minutes) / 60,
			Overtime2Hours: float64(input.Attendance.Overtime2Minutes+input.Attendance.Overtime3Minutes) / 60,
			LateMinutes:    input.Attendance.LateMinutes,
			EarlyMinutes:   input.Attendance.EarlyLeaveMinutes,
			Warnings:       computed.Warnings,
		})
	}

	return payroll.Draft{Year: req.Year, Month: req.Month, Rows: rows, ItemTypes: itemTypes}, nil
}

// SaveDraft persists reviewed rows with replace-not-merge semantics:
// per record, all detail rows are dropped and the non-zero items of
// the submitted row inserted, inside one transaction. Finalized
// records are left untouched and reported back.
func (s *payrollService) SaveDraft(ctx context.Context, req payroll.SaveDraftRequest) (payroll.SaveDraftResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.SaveDraftResult{}, err
	}

	itemsByName, err := s.payrollRepo.GetItemsByName(ctx)
	if err != nil {
		return payroll.SaveDraftResult{}, fmt.Errorf("load item catalog: %w", err)
	}

	var result payroll.SaveDraftResult
	unknown := make(map[string]bool)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, row := range req.Rows {
			record, err := s.payrollRepo.EnsureDraftRecord(ctx, row.EmployeeID, req.Year, req.Month)
			if err != nil {
				return fmt.Errorf("ensure record for employee %d: %w", row.EmployeeID, err)
			}
			if record.IsFinal() {
				result.SkippedFinal = append(result.SkippedFinal, row.EmployeeName)
				continue
			}

			details := make([]payroll.SalaryDetail, 0, len(row.Items))
			for name, amount := range row.Items {
				item, ok := itemsByName[name]
				if !ok {
					unknown[name] = true
					continue
				}
				normalized := payroll.NormalizeAmount(item.Type, amount)
				if normalized.IsZero() {
					continue
				}
				details = append(details, payroll.SalaryDetail{SalaryItemID: item.ID, Amount: normalized})
			}

			saved, err := s.payrollRepo.ReplaceDetails(ctx, record.ID, details)
			if err != nil {
				return fmt.Errorf("save details for employee %d: %w", row.EmployeeID, err)
			}
			result.SavedRecords++
			result.SavedDetails += saved
		}
		return nil
	})
	if err != nil {
		return payroll.SaveDraftResult{}, err
	}

	for name := range unknown {
		result.UnknownNames = append(result.UnknownNames, name)
	}
	return result, nil
}

// ApplyManualEdit upserts a single cell, leaving every other detail of
// the record alone.
func (s *payrollService) ApplyManualEdit(ctx context.Context, req payroll.ManualEditRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	itemsByName, err := s.payrollRepo.GetItemsByName(ctx)
	if err != nil {
		return fmt.Errorf("load item catalog: %w", err)
	}
	item, ok := itemsByName[req.ItemName]
	if !ok {
		return payroll.ErrSalaryItemNotFound
	}

	record, err := s.payrollRepo.EnsureDraftRecord(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return fmt.Errorf("ensure record: %w", err)
	}
	if record.IsFinal() {
		return payroll.ErrRecordFinalized
	}

	return s.payrollRepo.UpsertDetail(ctx, record.ID, item.ID, payroll.NormalizeAmount(item.Type, req.Amount))
}

func (s *payrollService) RevertToDraft(ctx context.Context, req payroll.RevertRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return s.payrollRepo.RevertToDraft(ctx, req.Year, req.Month, req.EmployeeIDs)
}

func (s *payrollService) DeleteMonth(ctx context.Context, year, month int) (int64, error) {
	if err := validateYearMonth(year, month); err != nil {
		return 0, err
	}
	return s.payrollRepo.DeleteMonth(ctx, year, month)
}

// PreviousSelfInsured suggests the self-insured roster for a new run:
// everyone whose insurance item summed to zero in the prior month.
func (s *payrollService) PreviousSelfInsured(ctx context.Context, year, month int) ([]string, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}

	prevYear, prevMonth := year, month-1
	if prevMonth == 0 {
		prevYear, prevMonth = year-1, 12
	}

	hasRecords, err := s.payrollRepo.HasRecords(ctx, prevYear, prevMonth)
	if err != nil {
		return nil, fmt.Errorf("check previous month: %w", err)
	}
	if !hasRecords {
		return nil, nil
	}

	return s.payrollRepo.ListZeroInsuranceNames(ctx, prevYear, prevMonth)
}

func validateYearMonth(year, month int) error {
	if year < 2000 || month < 1 || month > 12 {
		return payroll.ErrInvalidPeriod
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
