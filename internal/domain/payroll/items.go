package payroll

// Well-known item names emitted by the calculator. They match the
// catalog rows seeded for the payroll sheet; recurring items add
// arbitrary further names on top.
const (
	ItemBaseSalary      = "底薪"
	ItemOvertime1       = "加班費"
	ItemOvertime2       = "加班費2"
	ItemSpecialOvertime = "津貼加班"
	ItemLate            = "遲到"
	ItemEarlyLeave      = "早退"
	ItemPersonalLeave   = "事假"
	ItemSickLeave       = "病假"
	ItemInsurance       = "勞健保"
	ItemNHISupplement   = "二代健保補充費"
	ItemWithholdingTax  = "稅款"
)

// Company-cost columns. These are employer-side amounts reported next
// to the salary sheet; they never reduce the employee's net pay and
// are recomputed on every read instead of being stored as details.
const (
	CostEmployerLabor  = "公司負擔_勞保"
	CostEmployerHealth = "公司負擔_健保"
	CostPension        = "勞退提撥(公司負擔)"
)

// Derived report columns.
const (
	ColTotalPayable   = "應發總額"
	ColTotalDeduction = "應扣總額"
	ColNetSalary      = "實發淨薪"
	ColDeclaredSalary = "申報薪資"
	ColBankTransfer   = "匯入銀行"
	ColCash           = "現金"
)
