package response

import (
	"errors"
	"net/http"

	"github.com/twhr/payroll-backend-go/internal/domain/employee"
	"github.com/twhr/payroll-backend-go/internal/domain/insurance"
	"github.com/twhr/payroll-backend-go/internal/domain/payroll"
	"github.com/twhr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Insurance domain errors
	case errors.Is(err, insurance.ErrGradeNotFound):
		NotFound(w, "Insurance grade not found")
	case errors.Is(err, insurance.ErrNoSchedule):
		NotFound(w, "No insurance schedule covers that date")
	case errors.Is(err, insurance.ErrEmptySchedule):
		BadRequest(w, "Insurance schedule has no bands", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryItemNotFound):
		NotFound(w, "Salary item not found")
	case errors.Is(err, payroll.ErrSalaryItemNameExists):
		Conflict(w, "Salary item name already exists")
	case errors.Is(err, payroll.ErrBaseRecordNotFound):
		NotFound(w, "Base salary record not found")
	case errors.Is(err, payroll.ErrRecurringNotFound):
		NotFound(w, "Recurring item assignment not found")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrRecordFinalized):
		Conflict(w, "Salary record is finalized, revert it to draft first")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrInvalidItemType):
		BadRequest(w, "Salary item type must be earning or deduction", nil)
	case errors.Is(err, payroll.ErrEmptyImport):
		BadRequest(w, "Import file has no data rows", nil)
	case errors.Is(err, payroll.ErrMissingNameColumn):
		BadRequest(w, "Import file is missing the employee name column", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
