package payroll

import "errors"

var (
	ErrSalaryItemNotFound   = errors.New("salary item not found")
	ErrSalaryItemNameExists = errors.New("salary item name already exists")
	ErrBaseRecordNotFound   = errors.New("no base salary record for employee")
	ErrRecurringNotFound    = errors.New("recurring item assignment not found")
	ErrRecordNotFound       = errors.New("salary record not found")
	ErrRecordFinalized      = errors.New("salary record is finalized, revert it to draft first")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrInvalidItemType      = errors.New("invalid salary item type")
	ErrEmptyImport          = errors.New("import file has no data rows")
	ErrMissingNameColumn    = errors.New("import file is missing the employee name column")
)
