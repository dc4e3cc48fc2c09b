package employee

import "context"

// EmployeeRepository is the query contract the engine needs from the
// employee store.
type EmployeeRepository interface {
	// ListActiveForMonth returns employees active in the given month:
	// entry_date <= last day of month AND (resign_date IS NULL OR
	// resign_date >= first day of month), ordered by ID.
	ListActiveForMonth(ctx context.Context, year, month int) ([]Employee, error)

	// GetIDsByName maps employee display names to IDs, used when
	// reconciling spreadsheet rows keyed by name.
	GetIDsByName(ctx context.Context) (map[string]int64, error)
}
