package allocator

import "fmt"

// ConfigurationError reports inputs that cannot produce a feasible schedule.
// It is returned before any day is scheduled.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// CoverageShortfall records a day and group that could not be fully staffed
type CoverageShortfall struct {
	Day        Day
	GroupIndex int
	Label      int
	Required   int
	Staffed    int

	// ForcedRest lists the operators the rules rested on this day
	ForcedRest []string
}

// Missing returns how many operators the group was short by
func (s CoverageShortfall) Missing() int {
	return s.Required - s.Staffed
}

func (s CoverageShortfall) String() string {
	return fmt.Sprintf("%s group %d (shift %d): staffed %d/%d", s.Day, s.GroupIndex+1, s.Label+1, s.Staffed, s.Required)
}

// BalanceViolation records an operator whose end-of-cycle hours fall outside tolerance
type BalanceViolation struct {
	OperatorIndex int
	OperatorID    string
	TotalHours    float64
	TargetHours   float64
	Tolerance     float64
}

// Deviation returns the signed distance from the target
func (v BalanceViolation) Deviation() float64 {
	return v.TotalHours - v.TargetHours
}

func (v BalanceViolation) String() string {
	return fmt.Sprintf("%s worked %.1fh (target %.1fh ± %.1fh)", v.OperatorID, v.TotalHours, v.TargetHours, v.Tolerance)
}

// RuleViolation represents a rest rule breach found when validating a finished grid
type RuleViolation struct {
	Day         Day
	OperatorID  string
	RuleName    string
	Description string
}
