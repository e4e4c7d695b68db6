package allocator

// ValidateSchedule validates a finished schedule against all provided rules.
// Returns a slice of violations for any constraint breach.
// An empty slice indicates the grid honours every rule.
func ValidateSchedule(schedule *Schedule, rules []RestRule) []RuleViolation {
	violations := []RuleViolation{}

	for _, rule := range rules {
		violations = append(violations, rule.ValidateSchedule(schedule)...)
	}

	return violations
}
