package insurance

import "errors"

var (
	// ErrNoSchedule means no grade schedule exists for the type as of
	// the requested date. Callers degrade to zero fees but must be able
	// to tell this apart from a true band match.
	ErrNoSchedule = errors.New("no insurance grade schedule for date")

	ErrGradeNotFound = errors.New("insurance grade not found")
	ErrEmptySchedule = errors.New("insurance grade schedule has no bands")
)
