package leave

// Leave types with payroll effect. Any other approved leave type is
// payroll-neutral and never becomes a deduction.
const (
	TypePersonal = "事假"
	TypeSick     = "病假"
)

// StatusApproved is the only status that participates in payroll.
const StatusApproved = "已通過"
