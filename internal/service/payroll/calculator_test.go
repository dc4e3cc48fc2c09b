package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twhr/payroll-backend-go/internal/config"
	"github.com/twhr/payroll-backend-go/internal/domain/attendance"
	"github.com/twhr/payroll-backend-go/internal/domain/employee"
	"github.com/twhr/payroll-backend-go/internal/domain/insurance"
	"github.com/twhr/payroll-backend-go/internal/domain/payroll"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testPayrollConfig() config.PayrollConfig {
	return config.PayrollConfig{
		HourlyRateDivisor:            dec("240"),
		Overtime1Multiplier:          dec("1.34"),
		Overtime2Multiplier:          dec("1.67"),
		WithholdingTaxThreshold:      dec("88501"),
		WithholdingTaxRate:           dec("0.05"),
		NHISupplementThreshold:       dec("28590"),
		NHISupplementRate:            dec("0.0211"),
		ForeignerThresholdMultiplier: dec("1.5"),
		ForeignerLowIncomeTaxRate:    dec("0.06"),
		ForeignerHighIncomeTaxRate:   dec("0.18"),
		ResidencyDays:                183,
		PensionRate:                  dec("0.06"),
		MaxInsuredDependents:         3,
	}
}

// fakeLookup serves fixed fees per grade type, or a lookup failure.
type fakeLookup struct {
	labor  insurance.Fees
	health insurance.Fees
	err    error
}

func (f *fakeLookup) Lookup(_ context.Context, gradeType insurance.GradeType, _ decimal.Decimal, _ time.Time) (insurance.Fees, error) {
	if f.err != nil {
		return insurance.ZeroFees(), f.err
	}
	if gradeType == insurance.GradeTypeLabor {
		return f.labor, nil
	}
	return f.health, nil
}

func standardFees() *fakeLookup {
	return &fakeLookup{
		labor:  insurance.Fees{EmployeeFee: dec("1000"), EmployerFee: dec("2000"), InsuredAmount: dec("30300")},
		health: insurance.Fees{EmployeeFee: dec("500"), EmployerFee: dec("1500"), InsuredAmount: dec("30300")},
	}
}

func baseInput(baseSalary string) ComputeInput {
	return ComputeInput{
		Employee: employee.Employee{ID: 1, Name: "王小明", Nationality: employee.NationalityDomestic},
		Year:     2024,
		Month:    7,
		Base:     payroll.SalaryBaseRecord{BaseSalary: dec(baseSalary)},
		HasBase:  true,
	}
}

func TestComputeEndToEnd(t *testing.T) {
	// base 30000, 10h tier-1 overtime, labor 1000 + health 500, no tax.
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("30000")
	in.Attendance = attendance.MonthlySummary{Overtime1Minutes: 600}

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, result.Items[payroll.ItemBaseSalary].Equal(dec("30000")))
	assert.True(t, result.Items[payroll.ItemOvertime1].Equal(dec("1675")))
	assert.True(t, result.Items[payroll.ItemInsurance].Equal(dec("-1500")))
	assert.NotContains(t, result.Items, payroll.ItemWithholdingTax)
	assert.NotContains(t, result.Items, payroll.ItemNHISupplement)
	assert.Empty(t, result.Warnings)

	net := decimal.Zero
	for _, amount := range result.Items {
		net = net.Add(amount)
	}
	assert.True(t, net.Equal(dec("30175")), "net = %s", net)
}

func TestComputeIdempotent(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())
	in := baseInput("30000")
	in.Attendance = attendance.MonthlySummary{Overtime1Minutes: 600, LateMinutes: 30}

	first, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)
	second, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, len(first.Items), len(second.Items))
	for name, amount := range first.Items {
		assert.True(t, second.Items[name].Equal(amount), "item %s differs", name)
	}
}

func TestComputeOvertimeTiers(t *testing.T) {
	// hourly rate 24000/240 = 100
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("24000")
	in.Attendance = attendance.MonthlySummary{
		Overtime1Minutes: 90,
		Overtime2Minutes: 30,
		Overtime3Minutes: 30,
	}

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	// 1.5h * 100 * 1.34 = 201
	assert.True(t, result.Items[payroll.ItemOvertime1].Equal(dec("201")))
	// tier 2 and 3 merge: 1h * 100 * 1.67 = 167
	assert.True(t, result.Items[payroll.ItemOvertime2].Equal(dec("167")))
}

func TestComputeSpecialOvertimeHourSplit(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	checkIn := time.Date(2024, 7, 6, 9, 0, 0, 0, time.UTC)
	in := baseInput("24000")
	in.SpecialSessions = []attendance.SpecialSession{
		{EmployeeID: 1, Date: checkIn, CheckIn: checkIn, CheckOut: checkIn.Add(3 * time.Hour)},
	}

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	// 2h * 100 * 1.34 + 1h * 100 * 1.67 = 435
	assert.True(t, result.Items[payroll.ItemSpecialOvertime].Equal(dec("435")))
}

func TestComputeLateAndEarlyOnlyWhenNonZero(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("24000")
	in.Attendance = attendance.MonthlySummary{LateMinutes: 30}

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, result.Items[payroll.ItemLate].Equal(dec("-50")))
	assert.NotContains(t, result.Items, payroll.ItemEarlyLeave)
}

func TestComputeLeaveDeductions(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("24000")
	in.LeaveHours = map[string]float64{"事假": 4, "病假": 4, "特休": 8}

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, result.Items[payroll.ItemPersonalLeave].Equal(dec("-400")))
	// sick leave at half rate
	assert.True(t, result.Items[payroll.ItemSickLeave].Equal(dec("-200")))
	assert.NotContains(t, result.Items, "特休")
}

func TestComputeRecurringSignNormalization(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("30000")
	in.Recurring = []payroll.RecurringItem{
		{ItemName: "伙食津貼", ItemType: payroll.ItemTypeEarning, Amount: dec("-2000")},
		{ItemName: "宿舍費", ItemType: payroll.ItemTypeDeduction, Amount: dec("500")},
	}

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, result.Items["伙食津貼"].Equal(dec("2000")))
	assert.True(t, result.Items["宿舍費"].Equal(dec("-500")))
}

func TestComputeInsuranceDependentMultiplier(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("30000")
	in.Base.Dependents = 5 // capped at 3

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	// labor 1000 + health 500 * (1 + 3) = 3000
	assert.True(t, result.Items[payroll.ItemInsurance].Equal(dec("-3000")))
}

func TestComputeCompanyCosts(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	result, err := calc.Compute(context.Background(), baseInput("30000"))
	require.NoError(t, err)

	assert.True(t, result.CompanyCosts[payroll.CostEmployerLabor].Equal(dec("2000")))
	assert.True(t, result.CompanyCosts[payroll.CostEmployerHealth].Equal(dec("1500")))
	// pension 6% of base
	assert.True(t, result.CompanyCosts[payroll.CostPension].Equal(dec("1800")))
}

func TestComputeEmployerHealthCostCoversDependents(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("30000")
	in.Base.Dependents = 3

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	// health 1500 * (1 + 3); the labor share has no per-head component.
	assert.True(t, result.CompanyCosts[payroll.CostEmployerHealth].Equal(dec("6000")))
	assert.True(t, result.CompanyCosts[payroll.CostEmployerLabor].Equal(dec("2000")))
}

func TestComputeSelfInsured(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("30000")
	in.SelfInsured = true

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	// Insurance forced to zero, no employer costs.
	assert.True(t, result.Items[payroll.ItemInsurance].IsZero())
	assert.Empty(t, result.CompanyCosts)

	// The supplement test runs against full earnings: 30000 >= 28590,
	// ceil(30000 * 0.0211) = 633.
	assert.True(t, result.Items[payroll.ItemNHISupplement].Equal(dec("-633")))
}

func TestComputeNHISupplementThresholdAndCeiling(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	// Exactly at the threshold triggers the charge, with ceil: 28590 *
	// 0.0211 = 603.249 -> 604.
	at := baseInput("28590")
	at.SelfInsured = true
	result, err := calc.Compute(context.Background(), at)
	require.NoError(t, err)
	assert.True(t, result.Items[payroll.ItemNHISupplement].Equal(dec("-604")))

	below := baseInput("28589")
	below.SelfInsured = true
	result, err = calc.Compute(context.Background(), below)
	require.NoError(t, err)
	assert.NotContains(t, result.Items, payroll.ItemNHISupplement)
}

func TestComputeNHISupplementExcludesBaseWhenInsured(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("30000")
	in.Recurring = []payroll.RecurringItem{
		{ItemName: "專案獎金", ItemType: payroll.ItemTypeEarning, Amount: dec("29000")},
	}

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	// supplement base = 59000 - 30000 = 29000, ceil(29000 * 0.0211) = 612
	assert.True(t, result.Items[payroll.ItemNHISupplement].Equal(dec("-612")))
}

func TestComputeResidencyBoundary(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())
	monthStart := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	resident := monthStart.AddDate(0, 0, -183)
	in := baseInput("30000")
	in.Employee.Nationality = "US"
	in.Employee.ArrivalDate = &resident

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)
	// Resident path, below the withholding threshold: no tax.
	assert.NotContains(t, result.Items, payroll.ItemWithholdingTax)

	nonResident := monthStart.AddDate(0, 0, -182)
	in.Employee.ArrivalDate = &nonResident

	result, err = calc.Compute(context.Background(), in)
	require.NoError(t, err)
	// Non-resident low bracket: earnings 30000 <= 28590*1.5, 6% flat.
	assert.True(t, result.Items[payroll.ItemWithholdingTax].Equal(dec("-1800")))
}

func TestComputeForeignerHighBracket(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())
	arrival := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	in := baseInput("50000")
	in.Employee.Nationality = "PH"
	in.Employee.ArrivalDate = &arrival

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	// 50000 > 28590*1.5 = 42885, 18% flat = 9000.
	assert.True(t, result.Items[payroll.ItemWithholdingTax].Equal(dec("-9000")))
}

func TestComputeDomesticWithholdingThreshold(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("90000")
	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	// 90000 >= 88501, 5% flat = 4500.
	assert.True(t, result.Items[payroll.ItemWithholdingTax].Equal(dec("-4500")))
}

func TestComputeForeignerWithoutArrivalDate(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("50000")
	in.Employee.Nationality = "VN"
	in.Employee.ArrivalDate = nil

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	// Domestic path: 50000 below 88501, no tax, but flagged.
	assert.NotContains(t, result.Items, payroll.ItemWithholdingTax)
	assert.Contains(t, result.Warnings, "foreign employee without arrival date, taxed as domestic")
}

func TestComputeMissingBaseSalary(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), standardFees())

	in := baseInput("0")
	in.HasBase = false

	result, err := calc.Compute(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, result.Items[payroll.ItemBaseSalary].IsZero())
	assert.Contains(t, result.Warnings, "no base salary record, treated as 0")
}

func TestComputeNoInsuranceSchedule(t *testing.T) {
	calc := NewCalculator(testPayrollConfig(), &fakeLookup{err: insurance.ErrNoSchedule})

	result, err := calc.Compute(context.Background(), baseInput("30000"))
	require.NoError(t, err)

	assert.True(t, result.Items[payroll.ItemInsurance].IsZero())
	assert.Contains(t, result.Warnings, "no labor insurance schedule for this month")
	assert.Contains(t, result.Warnings, "no health insurance schedule for this month")
}
