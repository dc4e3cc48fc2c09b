package payroll

import (
	"github.com/shopspring/decimal"
)

// ========== REQUESTS ==========

type GenerateDraftRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	// SelfInsuredNames lists employees whose labor/health premiums are
	// paid outside the company policy for this month.
	SelfInsuredNames []string `json:"self_insured_names"`
}

func (r GenerateDraftRequest) Validate() error {
	return validatePeriod(r.Year, r.Month)
}

type SaveDraftRequest struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Rows  []DraftRow `json:"rows"`
}

func (r SaveDraftRequest) Validate() error {
	return validatePeriod(r.Year, r.Month)
}

type ManualEditRequest struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	EmployeeID int64           `json:"employee_id"`
	ItemName   string          `json:"item_name"`
	Amount     decimal.Decimal `json:"amount"`
}

func (r ManualEditRequest) Validate() error {
	if err := validatePeriod(r.Year, r.Month); err != nil {
		return err
	}
	if r.ItemName == "" {
		return ErrSalaryItemNotFound
	}
	return nil
}

type RevertRequest struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	EmployeeIDs []int64 `json:"employee_ids"`
}

func (r RevertRequest) Validate() error {
	return validatePeriod(r.Year, r.Month)
}

type CreateSalaryItemRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsActive *bool  `json:"is_active"`
}

func (r CreateSalaryItemRequest) Validate() error {
	if r.Name == "" {
		return ErrSalaryItemNotFound
	}
	if ItemType(r.Type) != ItemTypeEarning && ItemType(r.Type) != ItemTypeDeduction {
		return ErrInvalidItemType
	}
	return nil
}

type AssignRecurringRequest struct {
	EmployeeIDs  []int64         `json:"employee_ids"`
	SalaryItemID int64           `json:"salary_item_id"`
	Amount       decimal.Decimal `json:"amount"`
	StartDate    string          `json:"start_date"`
	EndDate      *string         `json:"end_date"`
	Note         *string         `json:"note"`
}

type RaiseBaseSalaryRequest struct {
	EmployeeIDs   []int64         `json:"employee_ids"`
	NewBaseSalary decimal.Decimal `json:"new_base_salary"`
	EffectiveDate string          `json:"effective_date"`
	Note          *string         `json:"note"`
}

func validatePeriod(year, month int) error {
	if year < 2000 || month < 1 || month > 12 {
		return ErrInvalidPeriod
	}
	return nil
}

// ========== RESULTS ==========

// DraftRow is one employee's line of the wide payroll table. Items is
// keyed by salary item name; CompanyCosts carries employer-side
// amounts that never reduce net pay.
type DraftRow struct {
	EmployeeID     int64                      `json:"employee_id"`
	EmployeeName   string                     `json:"employee_name"`
	HRCode         *string                    `json:"hr_code"`
	CompanyName    *string                    `json:"company_name"`
	Items          map[string]decimal.Decimal `json:"items"`
	CompanyCosts   map[string]decimal.Decimal `json:"company_costs"`
	Overtime1Hours float64                    `json:"overtime1_hours"`
	Overtime2Hours float64                    `json:"overtime2_hours"`
	LateMinutes    int                        `json:"late_minutes"`
	EarlyMinutes   int                        `json:"early_leave_minutes"`
	// Warnings flags data-quality issues (missing base salary, missing
	// insurance schedule, ambiguous tax inputs) for operator review.
	Warnings []string `json:"warnings,omitempty"`
}

// Draft is a freshly computed month, not yet persisted.
type Draft struct {
	Year      int                 `json:"year"`
	Month     int                 `json:"month"`
	Rows      []DraftRow          `json:"rows"`
	ItemTypes map[string]ItemType `json:"item_types"`
}

// ReportRow extends a DraftRow with derived totals. For finalized
// records the totals come from the snapshot, not from the detail rows.
type ReportRow struct {
	DraftRow
	Status         RecordStatus    `json:"status"`
	TotalPayable   decimal.Decimal `json:"total_payable"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
	NetSalary      decimal.Decimal `json:"net_salary"`
	DeclaredSalary decimal.Decimal `json:"declared_salary"`
	BankTransfer   decimal.Decimal `json:"bank_transfer"`
	Cash           decimal.Decimal `json:"cash"`
}

type Report struct {
	Year      int                 `json:"year"`
	Month     int                 `json:"month"`
	Rows      []ReportRow         `json:"rows"`
	ItemTypes map[string]ItemType `json:"item_types"`
}

// SaveDraftResult reports what a save touched. Finalized records are
// never overwritten; they are listed for the operator instead.
type SaveDraftResult struct {
	SavedRecords int      `json:"saved_records"`
	SavedDetails int      `json:"saved_details"`
	SkippedFinal []string `json:"skipped_final,omitempty"`
	UnknownNames []string `json:"unknown_names,omitempty"`
}

// ImportReport is the per-row reconciliation outcome of a batch
// import. Unmatched rows are skipped and reported, never fatal.
type ImportReport struct {
	RunID            string   `json:"run_id"`
	Applied          []string `json:"applied"`
	SkippedEmployees []string `json:"skipped_employees"`
	SkippedItems     []string `json:"skipped_items"`
}

// MinimumWageRow lists an employee whose current base falls below a
// proposed statutory minimum.
type MinimumWageRow struct {
	EmployeeID   int64           `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	Dependents   float64         `json:"dependents"`
}

// NHISummaryRow is one month of the employer-side second-generation
// NHI supplement reconciliation.
type NHISummaryRow struct {
	Month        int             `json:"month"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalInsured decimal.Decimal `json:"total_insured"`
	Difference   decimal.Decimal `json:"difference"`
	Premium      decimal.Decimal `json:"premium"`
}

// AnnualSummaryRow pivots one employee's selected items across a year.
type AnnualSummaryRow struct {
	HRCode       *string             `json:"hr_code"`
	EmployeeName string              `json:"employee_name"`
	Monthly      [12]decimal.Decimal `json:"monthly"`
	Total        decimal.Decimal     `json:"total"`
}

// ItemMonthlyTotal is the repository row behind the annual summary.
type ItemMonthlyTotal struct {
	EmployeeID   int64
	EmployeeName string
	HRCode       *string
	Month        int
	Total        decimal.Decimal
}

// BaseHistoryRow joins a base record with its employee name for
// administration listings.
type BaseHistoryRow struct {
	SalaryBaseRecord
	EmployeeName string `json:"employee_name"`
}
