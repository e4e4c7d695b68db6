package db

// Date and timestamp layouts used for string columns
const (
	DateLayout = "2006-01-02"
)

// Cycle represents a scheduling horizon of whole weeks starting on a Monday
type Cycle struct {
	ID    string
	Start string // Format: "2006-01-02"
	Weeks int

	// GeneratedDatetime is empty until a schedule has been committed for the cycle
	GeneratedDatetime string
}

// Assignment is one cell of a committed schedule
type Assignment struct {
	ID            string
	CycleID       string
	OperatorIndex int
	OperatorID    string
	ShiftDate     string // Format: "2006-01-02"
	Week          int
	Weekday       int
	Label         int // -1 on rest days
	Hours         float64
	IsRest        bool
	RestReason    string
}

// Diagnostic kinds
const (
	DiagnosticCoverageShortfall = "coverage_shortfall"
	DiagnosticBalanceViolation  = "balance_violation"
	DiagnosticRuleViolation     = "rule_violation"
)

// Diagnostic records a non-fatal problem found while generating a schedule
type Diagnostic struct {
	ID          string
	CycleID     string
	Kind        string
	ShiftDate   string // empty for balance violations
	GroupIndex  int    // -1 when not tied to a group
	OperatorID  string // empty for coverage shortfalls
	Description string
}
