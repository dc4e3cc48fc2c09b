package insurance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twhr/payroll-backend-go/internal/domain/insurance"
)

type fakeGradeRepo struct {
	grades []insurance.Grade
}

func (f *fakeGradeRepo) LatestScheduleStart(_ context.Context, gradeType insurance.GradeType, asOf time.Time) (time.Time, error) {
	var latest time.Time
	found := false
	for _, g := range f.grades {
		if g.Type != gradeType || g.ScheduleStart.After(asOf) {
			continue
		}
		if !found || g.ScheduleStart.After(latest) {
			latest = g.ScheduleStart
			found = true
		}
	}
	if !found {
		return time.Time{}, insurance.ErrNoSchedule
	}
	return latest, nil
}

func (f *fakeGradeRepo) ListSchedule(_ context.Context, gradeType insurance.GradeType, scheduleStart time.Time) ([]insurance.Grade, error) {
	var grades []insurance.Grade
	for _, g := range f.grades {
		if g.Type == gradeType && g.ScheduleStart.Equal(scheduleStart) {
			grades = append(grades, g)
		}
	}
	return grades, nil
}

func (f *fakeGradeRepo) ListAll(_ context.Context) ([]insurance.Grade, error) {
	return f.grades, nil
}

func (f *fakeGradeRepo) ReplaceSchedule(_ context.Context, gradeType insurance.GradeType, scheduleStart time.Time, grades []insurance.Grade) (int, error) {
	kept := f.grades[:0]
	for _, g := range f.grades {
		if g.Type != gradeType || !g.ScheduleStart.Equal(scheduleStart) {
			kept = append(kept, g)
		}
	}
	f.grades = append(kept, grades...)
	return len(grades), nil
}

func (f *fakeGradeRepo) UpdateGrade(_ context.Context, _ insurance.Grade) error { return nil }
func (f *fakeGradeRepo) DeleteGrade(_ context.Context, _ int64) error           { return nil }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func band(start time.Time, number int, min, max, empFee string) insurance.Grade {
	return insurance.Grade{
		ScheduleStart: start,
		Type:          insurance.GradeTypeHealth,
		GradeNumber:   number,
		SalaryMin:     dec(min),
		SalaryMax:     dec(max),
		EmployeeFee:   dec(empFee),
		EmployerFee:   dec(empFee).Mul(dec("3")),
	}
}

func newTestLookup(grades ...insurance.Grade) *GradeLookupService {
	return NewGradeLookupService(&fakeGradeRepo{grades: grades})
}

func TestLookupPicksLatestScheduleNotAfterDate(t *testing.T) {
	ctx := context.Background()
	oldStart := date(2023, 1, 1)
	newStart := date(2024, 1, 1)
	svc := newTestLookup(
		band(oldStart, 1, "0", "40000", "400"),
		band(newStart, 1, "0", "40000", "500"),
	)

	fees, err := svc.Lookup(ctx, insurance.GradeTypeHealth, dec("30000"), date(2023, 6, 30))
	require.NoError(t, err)
	assert.True(t, fees.EmployeeFee.Equal(dec("400")), "mid-2023 lookup must use the 2023 schedule, got %s", fees.EmployeeFee)

	fees, err = svc.Lookup(ctx, insurance.GradeTypeHealth, dec("30000"), date(2024, 6, 30))
	require.NoError(t, err)
	assert.True(t, fees.EmployeeFee.Equal(dec("500")))
}

func TestLookupBandBoundaries(t *testing.T) {
	ctx := context.Background()
	start := date(2024, 1, 1)
	svc := newTestLookup(
		band(start, 1, "0", "27470", "300"),
		band(start, 2, "27471", "28800", "320"),
	)

	// Exactly at a band max belongs to that band.
	fees, err := svc.Lookup(ctx, insurance.GradeTypeHealth, dec("27470"), start)
	require.NoError(t, err)
	assert.True(t, fees.EmployeeFee.Equal(dec("300")))
	assert.Equal(t, 1, fees.Grade)
	assert.False(t, fees.Clamped)

	fees, err = svc.Lookup(ctx, insurance.GradeTypeHealth, dec("27471"), start)
	require.NoError(t, err)
	assert.Equal(t, 2, fees.Grade)
}

func TestLookupClampsToEdgeBands(t *testing.T) {
	ctx := context.Background()
	start := date(2024, 1, 1)
	svc := newTestLookup(
		band(start, 1, "11100", "27470", "300"),
		band(start, 2, "27471", "28800", "320"),
	)

	fees, err := svc.Lookup(ctx, insurance.GradeTypeHealth, dec("999999"), start)
	require.NoError(t, err)
	assert.Equal(t, 2, fees.Grade)
	assert.True(t, fees.EmployeeFee.Equal(dec("320")))
	assert.True(t, fees.Clamped)

	fees, err = svc.Lookup(ctx, insurance.GradeTypeHealth, dec("100"), start)
	require.NoError(t, err)
	assert.Equal(t, 1, fees.Grade)
	assert.True(t, fees.EmployeeFee.Equal(dec("300")))
	assert.True(t, fees.Clamped)
}

func TestLookupNoSchedule(t *testing.T) {
	ctx := context.Background()
	svc := newTestLookup(band(date(2024, 1, 1), 1, "0", "40000", "400"))

	// Labor has no schedule at all.
	fees, err := svc.Lookup(ctx, insurance.GradeTypeLabor, dec("30000"), date(2024, 6, 1))
	assert.ErrorIs(t, err, insurance.ErrNoSchedule)
	assert.True(t, fees.EmployeeFee.IsZero())
	assert.Equal(t, 0, fees.Grade)

	// Health has one, but only from 2024 on.
	_, err = svc.Lookup(ctx, insurance.GradeTypeHealth, dec("30000"), date(2023, 12, 31))
	assert.ErrorIs(t, err, insurance.ErrNoSchedule)
}

func TestBuildScheduleContiguousBands(t *testing.T) {
	start := date(2024, 1, 1)
	grades := BuildSchedule(insurance.GradeTypeLabor, start, []ParsedGrade{
		{GradeNumber: 1, SalaryMax: dec("27470"), EmployeeFee: dec("300")},
		{GradeNumber: 2, SalaryMax: dec("28800"), EmployeeFee: dec("320")},
		{GradeNumber: 3, SalaryMax: dec("30300"), EmployeeFee: dec("340")},
	})

	require.Len(t, grades, 3)
	assert.True(t, grades[0].SalaryMin.IsZero())
	assert.True(t, grades[1].SalaryMin.Equal(dec("27471")))
	assert.True(t, grades[2].SalaryMin.Equal(dec("28801")))
	for _, g := range grades {
		assert.Equal(t, insurance.GradeTypeLabor, g.Type)
		assert.True(t, g.ScheduleStart.Equal(start))
	}
}

func TestReplaceScheduleRejectsEmpty(t *testing.T) {
	svc := newTestLookup()
	_, err := svc.ReplaceSchedule(context.Background(), insurance.GradeTypeLabor, date(2024, 1, 1), nil)
	assert.ErrorIs(t, err, insurance.ErrEmptySchedule)
}
