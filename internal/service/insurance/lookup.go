package insurance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/twhr/payroll-backend-go/internal/domain/insurance"
)

// GradeLookupService resolves premium fees from the date-versioned
// grade tables: latest schedule whose start <= as-of date, then the
// band containing the amount, clamping to the edge bands when the
// amount falls outside the table.
type GradeLookupService struct {
	gradeRepo insurance.GradeRepository
}

func NewGradeLookupService(gradeRepo insurance.GradeRepository) *GradeLookupService {
	return &GradeLookupService{gradeRepo: gradeRepo}
}

var _ insurance.GradeLookup = (*GradeLookupService)(nil)

func (s *GradeLookupService) Lookup(ctx context.Context, gradeType insurance.GradeType, amount decimal.Decimal, asOf time.Time) (insurance.Fees, error) {
	scheduleStart, err := s.gradeRepo.LatestScheduleStart(ctx, gradeType, asOf)
	if err != nil {
		if errors.Is(err, insurance.ErrNoSchedule) {
			// Recoverable: the caller proceeds with zero fees but can
			// still tell this apart from a band match.
			return insurance.ZeroFees(), insurance.ErrNoSchedule
		}
		return insurance.Fees{}, fmt.Errorf("resolve %s schedule: %w", gradeType, err)
	}

	grades, err := s.gradeRepo.ListSchedule(ctx, gradeType, scheduleStart)
	if err != nil {
		return insurance.Fees{}, fmt.Errorf("load %s schedule: %w", gradeType, err)
	}
	if len(grades) == 0 {
		return insurance.ZeroFees(), insurance.ErrEmptySchedule
	}

	return resolveBand(grades, amount), nil
}

// resolveBand finds the band whose [min,max] contains amount. Amounts
// above the top band clamp to the top band, below the bottom band to
// the bottom one; both are deliberate policy, not failures.
func resolveBand(grades []insurance.Grade, amount decimal.Decimal) insurance.Fees {
	for _, g := range grades {
		if amount.GreaterThanOrEqual(g.SalaryMin) && amount.LessThanOrEqual(g.SalaryMax) {
			return feesFromGrade(g, false)
		}
	}

	bottom, top := grades[0], grades[len(grades)-1]
	if amount.LessThan(bottom.SalaryMin) {
		return feesFromGrade(bottom, true)
	}
	return feesFromGrade(top, true)
}

func feesFromGrade(g insurance.Grade, clamped bool) insurance.Fees {
	return insurance.Fees{
		EmployeeFee:   g.EmployeeFee,
		EmployerFee:   g.EmployerFee,
		GovernmentFee: g.GovernmentFee,
		Grade:         g.GradeNumber,
		InsuredAmount: g.SalaryMax,
		Clamped:       clamped,
	}
}

// ========== SCHEDULE ADMINISTRATION ==========

// ParsedGrade is one band of an uploaded schedule, already extracted
// from the government file by the upstream parser.
type ParsedGrade struct {
	GradeNumber   int
	SalaryMax     decimal.Decimal
	EmployeeFee   decimal.Decimal
	EmployerFee   decimal.Decimal
	GovernmentFee decimal.Decimal
}

// BuildSchedule derives contiguous salary bands from parsed rows: each
// band's min is the previous band's max + 1, and the first band starts
// at zero. Rows must arrive sorted by grade number.
func BuildSchedule(gradeType insurance.GradeType, scheduleStart time.Time, rows []ParsedGrade) []insurance.Grade {
	grades := make([]insurance.Grade, 0, len(rows))
	prevMax := decimal.NewFromInt(-1)
	for i, row := range rows {
		min := prevMax.Add(decimal.NewFromInt(1))
		if i == 0 {
			min = decimal.Zero
		}
		grades = append(grades, insurance.Grade{
			ScheduleStart: scheduleStart,
			Type:          gradeType,
			GradeNumber:   row.GradeNumber,
			SalaryMin:     min,
			SalaryMax:     row.SalaryMax,
			EmployeeFee:   row.EmployeeFee,
			EmployerFee:   row.EmployerFee,
			GovernmentFee: row.GovernmentFee,
		})
		prevMax = row.SalaryMax
	}
	return grades
}

// ReplaceSchedule swaps in a full schedule for (type, start date).
func (s *GradeLookupService) ReplaceSchedule(ctx context.Context, gradeType insurance.GradeType, scheduleStart time.Time, rows []ParsedGrade) (int, error) {
	if len(rows) == 0 {
		return 0, insurance.ErrEmptySchedule
	}
	grades := BuildSchedule(gradeType, scheduleStart, rows)
	return s.gradeRepo.ReplaceSchedule(ctx, gradeType, scheduleStart, grades)
}

func (s *GradeLookupService) ListGrades(ctx context.Context) ([]insurance.Grade, error) {
	return s.gradeRepo.ListAll(ctx)
}

func (s *GradeLookupService) UpdateGrade(ctx context.Context, grade insurance.Grade) error {
	return s.gradeRepo.UpdateGrade(ctx, grade)
}

func (s *GradeLookupService) DeleteGrade(ctx context.Context, id int64) error {
	return s.gradeRepo.DeleteGrade(ctx, id)
}
