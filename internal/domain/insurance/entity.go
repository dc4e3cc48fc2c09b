package insurance

import (
	"time"

	"github.com/shopspring/decimal"
)

// GradeType partitions the statutory tables.
type GradeType string

const (
	GradeTypeLabor  GradeType = "labor"
	GradeTypeHealth GradeType = "health"
)

// Grade is one salary band of a government-published premium table.
// Bands of the same (type, schedule) are contiguous and non-overlapping,
// sorted by grade number.
type Grade struct {
	ID            int64
	ScheduleStart time.Time
	Type          GradeType
	GradeNumber   int
	SalaryMin     decimal.Decimal
	SalaryMax     decimal.Decimal
	EmployeeFee   decimal.Decimal
	EmployerFee   decimal.Decimal
	// GovernmentFee is only populated for health grades.
	GovernmentFee decimal.Decimal
	Note          *string
}

// Fees is the premium split resolved for one salary amount.
type Fees struct {
	EmployeeFee   decimal.Decimal
	EmployerFee   decimal.Decimal
	GovernmentFee decimal.Decimal
	// Grade is the matched band number; zero when no schedule existed.
	Grade int
	// InsuredAmount is the band's salary_max, the amount the employee
	// is registered at for NHI supplement reconciliation.
	InsuredAmount decimal.Decimal
	// Clamped marks a lookup that fell outside every band and was
	// clamped to the top or bottom one.
	Clamped bool
}

// ZeroFees is the recoverable default when no schedule covers a date.
func ZeroFees() Fees {
	return Fees{
		EmployeeFee:   decimal.Zero,
		EmployerFee:   decimal.Zero,
		GovernmentFee: decimal.Zero,
		InsuredAmount: decimal.Zero,
	}
}
