package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRepository defines data access for the payroll engine's own
// tables: the item catalog, base salary history, recurring
// assignments, and the salary records with their detail rows.
type PayrollRepository interface {
	// Item catalog
	ListItems(ctx context.Context, activeOnly bool) ([]SalaryItem, error)
	GetItemTypes(ctx context.Context) (map[string]ItemType, error)
	GetItemsByName(ctx context.Context) (map[string]SalaryItem, error)
	CreateItem(ctx context.Context, item SalaryItem) (SalaryItem, error)
	UpdateItem(ctx context.Context, item SalaryItem) error
	DeleteItem(ctx context.Context, id int64) error

	// Base salary history
	CurrentBase(ctx context.Context, employeeID int64, asOf time.Time) (SalaryBaseRecord, error)
	ListBaseHistory(ctx context.Context) ([]BaseHistoryRow, error)
	AddBaseRecord(ctx context.Context, record SalaryBaseRecord) (SalaryBaseRecord, error)
	InsertBaseRecords(ctx context.Context, records []SalaryBaseRecord) (int, error)
	ListBelowMinimumWage(ctx context.Context, wage decimal.Decimal) ([]MinimumWageRow, error)

	// Recurring assignments
	ListRecurringForMonth(ctx context.Context, employeeID int64, monthEnd time.Time) ([]RecurringItem, error)
	ListRecurring(ctx context.Context) ([]RecurringItem, error)
	ReplaceRecurring(ctx context.Context, employeeIDs []int64, salaryItemID int64, amount decimal.Decimal, start time.Time, end *time.Time, note *string) (int, error)
	RemoveRecurring(ctx context.Context, id int64) error

	// Salary records
	GetRecord(ctx context.Context, employeeID int64, year, month int) (SalaryRecord, error)
	ListRecordsForMonth(ctx context.Context, year, month int) ([]SalaryRecord, error)
	HasRecords(ctx context.Context, year, month int) (bool, error)
	// EnsureDraftRecord inserts a draft record when absent and returns
	// the row either way. It never demotes a finalized record.
	EnsureDraftRecord(ctx context.Context, employeeID int64, year, month int) (SalaryRecord, error)
	SetBankTransferOverride(ctx context.Context, salaryID int64, amount decimal.Decimal) error
	SnapshotTotals(ctx context.Context, salaryID int64, snapshot TotalsSnapshot) error
	RevertToDraft(ctx context.Context, year, month int, employeeIDs []int64) (int64, error)
	// DeleteMonth removes all detail rows for the month's records, then
	// the records themselves, inside the ambient transaction. Returns
	// the number of salary records removed.
	DeleteMonth(ctx context.Context, year, month int) (int64, error)

	// Detail rows
	// ReplaceDetails deletes every detail of the record and inserts the
	// given set, so a recomputation can never leave stale items behind.
	ReplaceDetails(ctx context.Context, salaryID int64, details []SalaryDetail) (int, error)
	UpsertDetail(ctx context.Context, salaryID, salaryItemID int64, amount decimal.Decimal) error
	// DetailsForMonth returns employeeID -> item name -> amount.
	DetailsForMonth(ctx context.Context, year, month int) (map[int64]map[string]decimal.Decimal, error)

	// Aggregations
	// ListZeroInsuranceNames returns employees whose insurance detail
	// for the month sums to zero, the default self-insured roster for
	// the following month.
	ListZeroInsuranceNames(ctx context.Context, year, month int) ([]string, error)
	SumItemsByMonth(ctx context.Context, year int, itemIDs []int64) ([]ItemMonthlyTotal, error)
}
