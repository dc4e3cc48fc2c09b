package employee

import "time"

// Employee is the read-only roster row the payroll engine consumes.
// Master-data CRUD lives in the HR system; this service never
// validates or mutates employee records.
type Employee struct {
	ID          int64
	Name        string
	HRCode      *string
	Nationality string
	EntryDate   *time.Time
	ResignDate  *time.Time
	// ArrivalDate feeds the 183-day residency test for foreign workers.
	ArrivalDate *time.Time
	// CompanyName is the insured unit the employee is registered under
	// as of the queried month, joined from the company history.
	CompanyName *string
}

const NationalityDomestic = "TW"

// IsForeign reports whether the employee is taxed under the foreigner
// rules. An empty nationality defaults to domestic, which is the
// statutory-default path.
func (e Employee) IsForeign() bool {
	return e.Nationality != "" && e.Nationality != NationalityDomestic
}
