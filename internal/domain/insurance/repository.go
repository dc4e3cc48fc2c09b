package insurance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// GradeRepository stores the date-versioned premium tables.
type GradeRepository interface {
	// LatestScheduleStart returns the greatest schedule start date <=
	// asOf for the given type, or ErrNoSchedule.
	LatestScheduleStart(ctx context.Context, gradeType GradeType, asOf time.Time) (time.Time, error)

	// ListSchedule returns the bands of one (type, schedule start),
	// ordered by grade number ascending.
	ListSchedule(ctx context.Context, gradeType GradeType, scheduleStart time.Time) ([]Grade, error)

	// ListAll returns every stored grade, newest schedule first.
	ListAll(ctx context.Context) ([]Grade, error)

	// ReplaceSchedule deletes the (type, start) schedule and inserts
	// the given bands in one transaction. Returns rows inserted.
	ReplaceSchedule(ctx context.Context, gradeType GradeType, scheduleStart time.Time, grades []Grade) (int, error)

	UpdateGrade(ctx context.Context, grade Grade) error
	DeleteGrade(ctx context.Context, id int64) error
}

// GradeLookup resolves the premium split for a salary amount as of a
// date. The payroll calculator depends on this interface only, so
// tests can feed it a fixed table.
type GradeLookup interface {
	// Lookup selects the most recent schedule whose start <= asOf,
	// finds the band containing amount, and clamps to the top or
	// bottom band when the amount falls outside the table. Returns
	// ErrNoSchedule (with zero fees) when the type has no schedule as
	// of that date.
	Lookup(ctx context.Context, gradeType GradeType, amount decimal.Decimal, asOf time.Time) (Fees, error)
}
