package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/twhr/payroll-backend-go/internal/config"
	"github.com/twhr/payroll-backend-go/internal/domain/attendance"
	"github.com/twhr/payroll-backend-go/internal/domain/employee"
	"github.com/twhr/payroll-backend-go/internal/domain/insurance"
	"github.com/twhr/payroll-backend-go/internal/domain/leave"
	"github.com/twhr/payroll-backend-go/internal/domain/payroll"
)

// ComputeInput carries everything one employee's monthly computation
// needs. The caller gathers it up front so Compute itself stays free
// of repository access apart from the grade lookup.
type ComputeInput struct {
	Employee    employee.Employee
	Year        int
	Month       int
	SelfInsured bool

	// Base is the authoritative base record as of month end. HasBase
	// false means no record existed; the computation degrades to a
	// zero base and flags it.
	Base    payroll.SalaryBaseRecord
	HasBase bool

	Attendance      attendance.MonthlySummary
	SpecialSessions []attendance.SpecialSession
	LeaveHours      map[string]float64
	Recurring       []payroll.RecurringItem
}

// ComputeResult is the wide row the calculator emits: signed amounts
// keyed by item name, employer-side costs kept apart so they never
// touch net pay.
type ComputeResult struct {
	Items        map[string]decimal.Decimal
	CompanyCosts map[string]decimal.Decimal
	Warnings     []string
}

// Calculator turns one employee-month of inputs into salary line
// items. It holds no state beyond configuration and the grade lookup,
// so recomputation with identical inputs is byte-identical.
type Calculator struct {
	cfg    config.PayrollConfig
	grades insurance.GradeLookup
}

func NewCalculator(cfg config.PayrollConfig, grades insurance.GradeLookup) *Calculator {
	return &Calculator{cfg: cfg, grades: grades}
}

var minutesPerHour = decimal.NewFromInt(60)

// Compute runs the full per-employee calculation. Every amount is
// rounded to whole TWD the moment it becomes an item, never at total
// time, so item values always sum exactly to the totals shown.
func (c *Calculator) Compute(ctx context.Context, in ComputeInput) (ComputeResult, error) {
	result := ComputeResult{
		Items:        make(map[string]decimal.Decimal),
		CompanyCosts: make(map[string]decimal.Decimal),
	}

	baseSalary := decimal.Zero
	if in.HasBase {
		baseSalary = in.Base.BaseSalary
	} else {
		result.Warnings = append(result.Warnings, "no base salary record, treated as 0")
	}
	result.Items[payroll.ItemBaseSalary] = baseSalary.Round(0)

	hourlyRate := baseSalary.Div(c.cfg.HourlyRateDivisor)

	c.addOvertime(&result, in.Attendance, hourlyRate)
	c.addSpecialOvertime(&result, in.SpecialSessions, hourlyRate)
	c.addAttendanceDeductions(&result, in.Attendance, hourlyRate)
	c.addLeaveDeductions(&result, in.LeaveHours, hourlyRate)
	addRecurring(&result, in.Recurring)

	if err := c.addInsurance(ctx, &result, in, baseSalary); err != nil {
		return ComputeResult{}, err
	}

	earnings := totalEarnings(result.Items)
	c.addNHISupplement(&result, earnings, baseSalary, in.SelfInsured)
	c.addWithholdingTax(&result, in, earnings)

	return result, nil
}

func (c *Calculator) addOvertime(result *ComputeResult, att attendance.MonthlySummary, hourlyRate decimal.Decimal) {
	if att.Overtime1Minutes > 0 {
		hours := decimal.NewFromInt(int64(att.Overtime1Minutes)).Div(minutesPerHour)
		result.Items[payroll.ItemOvertime1] = hours.Mul(hourlyRate).Mul(c.cfg.Overtime1Multiplier).Round(0)
	}

	// Tier 2 and tier 3 share the same statutory multiplier.
	tier2Minutes := att.Overtime2Minutes + att.Overtime3Minutes
	if tier2Minutes > 0 {
		hours := decimal.NewFromInt(int64(tier2Minutes)).Div(minutesPerHour)
		result.Items[payroll.ItemOvertime2] = hours.Mul(hourlyRate).Mul(c.cfg.Overtime2Multiplier).Round(0)
	}
}

// addSpecialOvertime pays allowance sessions with the statutory hour
// split: the first two hours of each session at the tier-1 multiplier,
// the remainder at tier-2. Sessions accumulate unrounded and the month
// total rounds once.
func (c *Calculator) addSpecialOvertime(result *ComputeResult, sessions []attendance.SpecialSession, hourlyRate decimal.Decimal) {
	if len(sessions) == 0 {
		return
	}

	two := decimal.NewFromInt(2)
	total := decimal.Zero
	for _, session := range sessions {
		hours := decimal.NewFromFloat(session.DurationHours())
		if hours.LessThanOrEqual(decimal.Zero) {
			continue
		}
		tier1 := decimal.Min(hours, two)
		tier2 := decimal.Max(hours.Sub(two), decimal.Zero)
		total = total.Add(tier1.Mul(hourlyRate).Mul(c.cfg.Overtime1Multiplier))
		total = total.Add(tier2.Mul(hourlyRate).Mul(c.cfg.Overtime2Multiplier))
	}
	if !total.IsZero() {
		result.Items[payroll.ItemSpecialOvertime] = total.Round(0)
	}
}

// Late and early-leave are separate items and only appear when
// non-zero, so a zero computation can never clobber a manual entry of
// the other item during a partial re-save.
func (c *Calculator) addAttendanceDeductions(result *ComputeResult, att attendance.MonthlySummary, hourlyRate decimal.Decimal) {
	if att.LateMinutes > 0 {
		hours := decimal.NewFromInt(int64(att.LateMinutes)).Div(minutesPerHour)
		result.Items[payroll.ItemLate] = hours.Mul(hourlyRate).Round(0).Neg()
	}
	if att.EarlyLeaveMinutes > 0 {
		hours := decimal.NewFromInt(int64(att.EarlyLeaveMinutes)).Div(minutesPerHour)
		result.Items[payroll.ItemEarlyLeave] = hours.Mul(hourlyRate).Round(0).Neg()
	}
}

func (c *Calculator) addLeaveDeductions(result *ComputeResult, leaveHours map[string]float64, hourlyRate decimal.Decimal) {
	if hours := leaveHours[leave.TypePersonal]; hours > 0 {
		result.Items[payroll.ItemPersonalLeave] = decimal.NewFromFloat(hours).Mul(hourlyRate).Round(0).Neg()
	}
	if hours := leaveHours[leave.TypeSick]; hours > 0 {
		half := decimal.NewFromFloat(0.5)
		result.Items[payroll.ItemSickLeave] = decimal.NewFromFloat(hours).Mul(hourlyRate).Mul(half).Round(0).Neg()
	}
}

// addRecurring applies each standing assignment under its catalog
// name. The item's type tag decides the sign, never the stored value.
func addRecurring(result *ComputeResult, recurring []payroll.RecurringItem) {
	for _, item := range recurring {
		amount := payroll.NormalizeAmount(item.ItemType, item.Amount).Round(0)
		if existing, ok := result.Items[item.ItemName]; ok {
			result.Items[item.ItemName] = existing.Add(amount)
			continue
		}
		result.Items[item.ItemName] = amount
	}
}

func (c *Calculator) addInsurance(ctx context.Context, result *ComputeResult, in ComputeInput, baseSalary decimal.Decimal) error {
	if in.SelfInsured {
		// The employee pays an external insurer directly; the zero item
		// still marks them on the sheet.
		result.Items[payroll.ItemInsurance] = decimal.Zero
		return nil
	}

	monthEnd := monthEndDate(in.Year, in.Month)

	laborFees, err := c.grades.Lookup(ctx, insurance.GradeTypeLabor, baseSalary, monthEnd)
	if err != nil {
		if !errors.Is(err, insurance.ErrNoSchedule) && !errors.Is(err, insurance.ErrEmptySchedule) {
			return fmt.Errorf("labor insurance lookup: %w", err)
		}
		result.Warnings = append(result.Warnings, "no labor insurance schedule for this month")
	}

	healthFees, err := c.grades.Lookup(ctx, insurance.GradeTypeHealth, baseSalary, monthEnd)
	if err != nil {
		if !errors.Is(err, insurance.ErrNoSchedule) && !errors.Is(err, insurance.ErrEmptySchedule) {
			return fmt.Errorf("health insurance lookup: %w", err)
		}
		result.Warnings = append(result.Warnings, "no health insurance schedule for this month")
	}

	dependents := in.Base.Dependents
	if max := float64(c.cfg.MaxInsuredDependents); dependents > max {
		dependents = max
	}
	multiplier := decimal.NewFromFloat(1 + dependents)

	employeeTotal := laborFees.EmployeeFee.Add(healthFees.EmployeeFee.Mul(multiplier)).Round(0)
	result.Items[payroll.ItemInsurance] = employeeTotal.Neg()

	// The employer health share covers the same insured heads as the
	// employee share, so it carries the dependents multiplier too.
	result.CompanyCosts[payroll.CostEmployerLabor] = laborFees.EmployerFee.Round(0)
	result.CompanyCosts[payroll.CostEmployerHealth] = healthFees.EmployerFee.Mul(multiplier).Round(0)
	result.CompanyCosts[payroll.CostPension] = baseSalary.Mul(c.cfg.PensionRate).Round(0)

	return nil
}

// addNHISupplement charges the second-generation premium. The base is
// earnings above the insured base salary for company-insured
// employees, and full earnings for self-insured ones, since nothing of
// theirs runs through the group policy. Government remittance rounds
// up, so Ceil, not Round.
func (c *Calculator) addNHISupplement(result *ComputeResult, earnings, baseSalary decimal.Decimal, selfInsured bool) {
	supplementBase := earnings
	if !selfInsured {
		supplementBase = earnings.Sub(baseSalary)
	}
	if supplementBase.LessThan(c.cfg.NHISupplementThreshold) {
		return
	}
	premium := supplementBase.Mul(c.cfg.NHISupplementRate).Ceil()
	result.Items[payroll.ItemNHISupplement] = premium.Neg()
}

func (c *Calculator) addWithholdingTax(result *ComputeResult, in ComputeInput, earnings decimal.Decimal) {
	foreign := in.Employee.IsForeign()
	if foreign && in.Employee.ArrivalDate == nil {
		// Statutory-default path; the run must not abort on one
		// ambiguous record.
		result.Warnings = append(result.Warnings, "foreign employee without arrival date, taxed as domestic")
		foreign = false
	}

	var tax decimal.Decimal
	if !foreign || c.isResident(in.Employee, in.Year, in.Month) {
		if earnings.GreaterThanOrEqual(c.cfg.WithholdingTaxThreshold) {
			tax = earnings.Mul(c.cfg.WithholdingTaxRate).Round(0)
		}
	} else {
		bracket := c.cfg.NHISupplementThreshold.Mul(c.cfg.ForeignerThresholdMultiplier)
		rate := c.cfg.ForeignerLowIncomeTaxRate
		if earnings.GreaterThan(bracket) {
			rate = c.cfg.ForeignerHighIncomeTaxRate
		}
		tax = earnings.Mul(rate).Round(0)
	}

	if tax.IsPositive() {
		result.Items[payroll.ItemWithholdingTax] = tax.Neg()
	}
}

// isResident applies the 183-day test against the first day of the
// target month, not today, so back-dated runs stay deterministic.
func (c *Calculator) isResident(e employee.Employee, year, month int) bool {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := int(monthStart.Sub(*e.ArrivalDate).Hours() / 24)
	return days >= c.cfg.ResidencyDays
}

// totalEarnings sums the positive side of the sheet: everything the
// employee is owed before any deduction.
func totalEarnings(items map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range items {
		if amount.IsPositive() {
			total = total.Add(amount)
		}
	}
	return total
}

func monthEndDate(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
}
