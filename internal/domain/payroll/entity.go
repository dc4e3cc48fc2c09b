package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType enum. The tag is load-bearing: it fixes the sign convention
// at every ingestion point and decides earning/deduction grouping.
type ItemType string

const (
	ItemTypeEarning   ItemType = "earning"
	ItemTypeDeduction ItemType = "deduction"
)

// SalaryItem - pay-component catalog entry
type SalaryItem struct {
	ID       int64
	Name     string
	Type     ItemType
	IsActive bool
}

// SalaryBaseRecord - one time-stamped base salary / dependents entry.
// The record with the latest StartDate <= as-of date is authoritative.
type SalaryBaseRecord struct {
	ID         int64
	EmployeeID int64
	BaseSalary decimal.Decimal
	Dependents float64
	StartDate  time.Time
	EndDate    *time.Time
	Note       *string
}

// RecurringItem - standing allowance or deduction assigned to an
// employee, auto-applied every month its validity window covers.
type RecurringItem struct {
	ID           int64
	EmployeeID   int64
	SalaryItemID int64
	Amount       decimal.Decimal
	StartDate    time.Time
	EndDate      *time.Time
	Note         *string

	// Joined fields
	ItemName string
	ItemType ItemType
}

// RecordStatus enum
type RecordStatus string

const (
	RecordStatusDraft RecordStatus = "draft"
	RecordStatusFinal RecordStatus = "final"
)

// TotalsSnapshot holds the amounts frozen onto a record at finalize
// time. A record is final if and only if it carries a snapshot;
// draft records always derive totals from their detail rows.
type TotalsSnapshot struct {
	TotalPayable   decimal.Decimal
	TotalDeduction decimal.Decimal
	NetSalary      decimal.Decimal
	BankTransfer   decimal.Decimal
	Cash           decimal.Decimal
}

// SalaryRecord - one employee's payroll row for a year/month. At most
// one exists per (employee, year, month).
type SalaryRecord struct {
	ID         int64
	EmployeeID int64
	Year       int
	Month      int
	Status     RecordStatus
	PayDate    *time.Time
	Note       *string
	// BankTransferOverride, once set non-zero, wins over the computed
	// bank-transfer formula on every read.
	BankTransferOverride *decimal.Decimal
	// Snapshot is non-nil exactly when Status is final.
	Snapshot *TotalsSnapshot

	// Joined fields
	EmployeeName *string
	HRCode       *string
	CompanyName  *string
	BaseSalary   *decimal.Decimal
	Dependents   *float64
}

// IsFinal reports whether the record is locked.
func (r SalaryRecord) IsFinal() bool {
	return r.Status == RecordStatusFinal && r.Snapshot != nil
}

// SalaryDetail - one signed amount per (record, item).
type SalaryDetail struct {
	ID           int64
	SalaryID     int64
	SalaryItemID int64
	Amount       decimal.Decimal

	// Joined fields
	ItemName string
}

// NormalizeAmount applies the catalog sign convention: deduction items
// are forced negative and earning items forced positive, regardless of
// the sign that was entered. Every ingestion boundary (draft
// generation, manual edit, batch import) runs amounts through this
// single function so operator sign errors cannot leak into storage.
func NormalizeAmount(itemType ItemType, amount decimal.Decimal) decimal.Decimal {
	if itemType == ItemTypeDeduction {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}
