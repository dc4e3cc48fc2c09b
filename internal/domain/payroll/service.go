package payroll

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/twhr/payroll-backend-go/internal/domain/employee"
)

// PayrollService is the surface the workflow/UI layer talks to.
type PayrollService interface {
	// Roster
	ListActiveEmployees(ctx context.Context, year, month int) ([]employee.Employee, error)

	// Engine
	GenerateDraft(ctx context.Context, req GenerateDraftRequest) (Draft, error)
	SaveDraft(ctx context.Context, req SaveDraftRequest) (SaveDraftResult, error)
	GetReport(ctx context.Context, year, month int) (Report, error)
	Finalize(ctx context.Context, year, month int) (int, error)
	RevertToDraft(ctx context.Context, req RevertRequest) (int64, error)
	ApplyManualEdit(ctx context.Context, req ManualEditRequest) error
	BatchImport(ctx context.Context, year, month int, file io.Reader) (ImportReport, error)
	DeleteMonth(ctx context.Context, year, month int) (int64, error)
	PreviousSelfInsured(ctx context.Context, year, month int) ([]string, error)

	// Item catalog
	ListItems(ctx context.Context, activeOnly bool) ([]SalaryItem, error)
	CreateItem(ctx context.Context, req CreateSalaryItemRequest) (SalaryItem, error)
	UpdateItem(ctx context.Context, item SalaryItem) error
	DeleteItem(ctx context.Context, id int64) error

	// Base salary administration
	ListBaseHistory(ctx context.Context) ([]BaseHistoryRow, error)
	AddBaseRecord(ctx context.Context, record SalaryBaseRecord) (SalaryBaseRecord, error)
	ListBelowMinimumWage(ctx context.Context, wage decimal.Decimal) ([]MinimumWageRow, error)
	RaiseBaseSalaries(ctx context.Context, req RaiseBaseSalaryRequest) (int, error)

	// Recurring assignments
	ListRecurring(ctx context.Context) ([]RecurringItem, error)
	AssignRecurring(ctx context.Context, req AssignRecurringRequest) (int, error)
	RemoveRecurring(ctx context.Context, id int64) error

	// Reporting
	EmployerSupplementSummary(ctx context.Context, year int) ([]NHISummaryRow, error)
	AnnualItemSummary(ctx context.Context, year int, itemIDs []int64) ([]AnnualSummaryRow, error)
}
