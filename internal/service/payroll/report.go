package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/twhr/payroll-backend-go/internal/domain/insurance"
	"github.com/twhr/payroll-backend-go/internal/domain/payroll"
)

// bankFormulaItems is the canonical bank-transfer subset: statutory
// pay and statutory deductions go to the bank, ad hoc allowances are
// paid in cash.
var bankFormulaItems = []string{
	payroll.ItemBaseSalary,
	payroll.ItemOvertime1,
	payroll.ItemOvertime2,
	payroll.ItemInsurance,
	payroll.ItemPersonalLeave,
	payroll.ItemSickLeave,
	payroll.ItemLate,
	payroll.ItemEarlyLeave,
}

// GetReport returns the month as users see it: stored detail rows,
// recomputed company costs, and derived totals. Finalized records
// return their snapshot verbatim no matter what the grade tables or
// recurring items say today.
func (s *payrollService) GetReport(ctx context.Context, year, month int) (payroll.Report, error) {
	if err := validateYearMonth(year, month); err != nil {
		return payroll.Report{}, err
	}

	records, err := s.payrollRepo.ListRecordsForMonth(ctx, year, month)
	if err != nil {
		return payroll.Report{}, fmt.Errorf("list records: %w", err)
	}
	details, err := s.payrollRepo.DetailsForMonth(ctx, year, month)
	if err != nil {
		return payroll.Report{}, fmt.Errorf("list details: %w", err)
	}
	itemTypes, err := s.payrollRepo.GetItemTypes(ctx)
	if err != nil {
		return payroll.Report{}, fmt.Errorf("load item catalog: %w", err)
	}
	attSummaries, err := s.attendanceRepo.SummarizeMonth(ctx, year, month)
	if err != nil {
		return payroll.Report{}, fmt.Errorf("summarize attendance: %w", err)
	}

	rows := make([]payroll.ReportRow, 0, len(records))
	for _, rec := range records {
		items := details[rec.EmployeeID]
		if items == nil {
			items = map[string]decimal.Decimal{}
		}

		costs, warnings, err := s.companyCosts(ctx, rec, items, year, month)
		if err != nil {
			return payroll.Report{}, err
		}

		att := attSummaries[rec.EmployeeID]
		row := payroll.ReportRow{
			DraftRow: payroll.DraftRow{
				EmployeeID:     rec.EmployeeID,
				CompanyName:    rec.CompanyName,
				HRCode:         rec.HRCode,
				Items:          items,
				CompanyCosts:   costs,
				Overtime1Hours: float64(att.Overtime1Minutes) / 60,
				Overtime2Hours: float64(att.Overtime2Minutes+att.Overtime3Minutes) / 60,
				LateMinutes:    att.LateMinutes,
				EarlyMinutes:   att.EarlyLeaveMinutes,
				Warnings:       warnings,
			},
			Status:         rec.Status,
			DeclaredSalary: declaredSalary(rec, items),
		}
		if rec.EmployeeName != nil {
			row.EmployeeName = *rec.EmployeeName
		}

		totals := recordTotals(rec, items)
		row.TotalPayable = totals.TotalPayable
		row.TotalDeduction = totals.TotalDeduction
		row.NetSalary = totals.NetSalary
		row.BankTransfer = totals.BankTransfer
		row.Cash = totals.Cash

		rows = append(rows, row)
	}

	return payroll.Report{Year: year, Month: month, Rows: rows, ItemTypes: itemTypes}, nil
}

// Finalize snapshots live totals onto every draft record of the month
// and flips it to final. Already-final records are left alone. Returns
// the number of records finalized.
func (s *payrollService) Finalize(ctx context.Context, year, month int) (int, error) {
	if err := validateYearMonth(year, month); err != nil {
		return 0, err
	}

	records, err := s.payrollRepo.ListRecordsForMonth(ctx, year, month)
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}
	details, err := s.payrollRepo.DetailsForMonth(ctx, year, month)
	if err != nil {
		return 0, fmt.Errorf("list details: %w", err)
	}

	finalized := 0
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, rec := range records {
			if rec.IsFinal() {
				continue
			}
			totals := recordTotals(rec, details[rec.EmployeeID])
			if err := s.payrollRepo.SnapshotTotals(ctx, rec.ID, totals); err != nil {
				return fmt.Errorf("snapshot employee %d: %w", rec.EmployeeID, err)
			}
			finalized++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return finalized, nil
}

// recordTotals derives the money columns for one record. Snapshot
// fields win for finalized records; drafts always re-sum their detail
// rows.
func recordTotals(rec payroll.SalaryRecord, items map[string]decimal.Decimal) payroll.TotalsSnapshot {
	if rec.IsFinal() {
		return *rec.Snapshot
	}

	payable, deduction := decimal.Zero, decimal.Zero
	for _, amount := range items {
		if amount.IsPositive() {
			payable = payable.Add(amount)
		} else {
			deduction = deduction.Add(amount.Abs())
		}
	}
	net := payable.Sub(deduction)

	bank := decimal.Zero
	if rec.BankTransferOverride != nil && !rec.BankTransferOverride.IsZero() {
		bank = *rec.BankTransferOverride
	} else {
		for _, name := range bankFormulaItems {
			if amount, ok := items[name]; ok {
				bank = bank.Add(amount)
			}
		}
	}

	return payroll.TotalsSnapshot{
		TotalPayable:   payable,
		TotalDeduction: deduction,
		NetSalary:      net,
		BankTransfer:   bank,
		Cash:           net.Sub(bank),
	}
}

// declaredSalaryItems make up 申報薪資, the amount reported to the
// insurers: base pay net of the statutory absence deductions.
var declaredSalaryItems = []string{
	payroll.ItemBaseSalary,
	payroll.ItemPersonalLeave,
	payroll.ItemSickLeave,
	payroll.ItemLate,
	payroll.ItemEarlyLeave,
}

// declaredSalary sums the statutory items; a record with none of them
// stored falls back to the joined base salary record.
func declaredSalary(rec payroll.SalaryRecord, items map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	found := false
	for _, name := range declaredSalaryItems {
		if amount, ok := items[name]; ok {
			total = total.Add(amount)
			found = true
		}
	}
	if found {
		return total
	}
	if rec.BaseSalary != nil {
		return *rec.BaseSalary
	}
	return decimal.Zero
}

// companyCosts recomputes employer-side amounts from the current
// grade tables. A zero or missing insurance item marks a self-insured
// month, which carries no employer cost.
func (s *payrollService) companyCosts(ctx context.Context, rec payroll.SalaryRecord, items map[string]decimal.Decimal, year, month int) (map[string]decimal.Decimal, []string, error) {
	costs := make(map[string]decimal.Decimal)
	if items[payroll.ItemInsurance].IsZero() {
		return costs, nil, nil
	}
	if rec.BaseSalary == nil {
		return costs, []string{"no base salary record, employer costs omitted"}, nil
	}

	var warnings []string
	monthEnd := monthEndDate(year, month)
	base := *rec.BaseSalary

	laborFees, err := s.grades.Lookup(ctx, insurance.GradeTypeLabor, base, monthEnd)
	if err != nil {
		if !errors.Is(err, insurance.ErrNoSchedule) && !errors.Is(err, insurance.ErrEmptySchedule) {
			return nil, nil, fmt.Errorf("labor insurance lookup for employee %d: %w", rec.EmployeeID, err)
		}
		warnings = append(warnings, "no labor insurance schedule for this month")
	}
	healthFees, err := s.grades.Lookup(ctx, insurance.GradeTypeHealth, base, monthEnd)
	if err != nil {
		if !errors.Is(err, insurance.ErrNoSchedule) && !errors.Is(err, insurance.ErrEmptySchedule) {
			return nil, nil, fmt.Errorf("health insurance lookup for employee %d: %w", rec.EmployeeID, err)
		}
		warnings = append(warnings, "no health insurance schedule for this month")
	}

	dependents := 0.0
	if rec.Dependents != nil {
		dependents = *rec.Dependents
	}
	if max := float64(s.cfg.MaxInsuredDependents); dependents > max {
		dependents = max
	}
	multiplier := decimal.NewFromFloat(1 + dependents)

	costs[payroll.CostEmployerLabor] = laborFees.EmployerFee.Round(0)
	costs[payroll.CostEmployerHealth] = healthFees.EmployerFee.Mul(multiplier).Round(0)
	costs[payroll.CostPension] = base.Mul(s.cfg.PensionRate).Round(0)

	return costs, warnings, nil
}

// EmployerSupplementSummary reconciles the employer-side NHI
// supplement for each month of a year: paid totals against insured
// grade amounts, premium charged on the positive difference.
func (s *payrollService) EmployerSupplementSummary(ctx context.Context, year int) ([]payroll.NHISummaryRow, error) {
	if year < 2000 {
		return nil, payroll.ErrInvalidPeriod
	}

	var summary []payroll.NHISummaryRow
	for month := 1; month <= 12; month++ {
		records, err := s.payrollRepo.ListRecordsForMonth(ctx, year, month)
		if err != nil {
			return nil, fmt.Errorf("list records for %d-%02d: %w", year, month, err)
		}
		if len(records) == 0 {
			continue
		}
		details, err := s.payrollRepo.DetailsForMonth(ctx, year, month)
		if err != nil {
			return nil, fmt.Errorf("list details for %d-%02d: %w", year, month, err)
		}

		monthEnd := monthEndDate(year, month)
		paid, insured := decimal.Zero, decimal.Zero
		for _, rec := range records {
			items := details[rec.EmployeeID]
			paid = paid.Add(recordTotals(rec, items).TotalPayable)

			// A zero or negative declared salary contributes nothing;
			// clamping it to the bottom band would overstate B.
			declared := declaredSalary(rec, items)
			if !declared.IsPositive() {
				continue
			}
			fees, err := s.grades.Lookup(ctx, insurance.GradeTypeHealth, declared, monthEnd)
			if err != nil && !errors.Is(err, insurance.ErrNoSchedule) && !errors.Is(err, insurance.ErrEmptySchedule) {
				return nil, fmt.Errorf("health insurance lookup for employee %d: %w", rec.EmployeeID, err)
			}
			insured = insured.Add(fees.InsuredAmount)
		}

		diff := paid.Sub(insured)
		premium := decimal.Zero
		if diff.IsPositive() {
			premium = diff.Mul(s.cfg.NHISupplementRate).Round(0)
		}
		summary = append(summary, payroll.NHISummaryRow{
			Month:        month,
			TotalPaid:    paid,
			TotalInsured: insured,
			Difference:   diff,
			Premium:      premium,
		})
	}

	return summary, nil
}

// AnnualItemSummary pivots the chosen items into per-employee
// 12-month rows.
func (s *payrollService) AnnualItemSummary(ctx context.Context, year int, itemIDs []int64) ([]payroll.AnnualSummaryRow, error) {
	if year < 2000 {
		return nil, payroll.ErrInvalidPeriod
	}
	if len(itemIDs) == 0 {
		return nil, payroll.ErrSalaryItemNotFound
	}

	totals, err := s.payrollRepo.SumItemsByMonth(ctx, year, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("sum items: %w", err)
	}

	index := make(map[int64]int)
	var rows []payroll.AnnualSummaryRow
	for _, t := range totals {
		i, ok := index[t.EmployeeID]
		if !ok {
			i = len(rows)
			index[t.EmployeeID] = i
			rows = append(rows, payroll.AnnualSummaryRow{
				HRCode:       t.HRCode,
				EmployeeName: t.EmployeeName,
			})
		}
		if t.Month >= 1 && t.Month <= 12 {
			rows[i].Monthly[t.Month-1] = rows[i].Monthly[t.Month-1].Add(t.Total)
			rows[i].Total = rows[i].Total.Add(t.Total)
		}
	}

	return rows, nil
}
