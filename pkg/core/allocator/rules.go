package allocator

// RestRule defines the interface for hard rest constraints.
// Rules are evaluated for every operator before the day is balanced; a forced
// rest overrides hour balancing unconditionally.
type RestRule interface {
	// Name returns a human-readable identifier for this rule
	Name() string

	// Reason is recorded on every rest cell this rule forces
	Reason() RestReason

	// IsRestForced returns true if the operator must rest on the given day.
	// label is the shift label the operator's group works this week.
	// It is called before the operator's state is updated for the day.
	IsRestForced(op *Operator, day Day, label int) bool

	// ValidateSchedule checks a finished grid against this rule
	// Returns a slice of violations (empty if all valid)
	ValidateSchedule(schedule *Schedule) []RuleViolation
}

// DefaultRules returns the rules applied when none are configured
func DefaultRules() []RestRule {
	return []RestRule{
		NewSundayCapRule(DefaultMaxConsecutiveSundays),
		NewShiftChangeRestRule(),
	}
}

// forcedRest returns the first rule that forces the operator to rest, or nil
func forcedRest(rules []RestRule, op *Operator, day Day, label int) RestRule {
	for _, rule := range rules {
		if rule.IsRestForced(op, day, label) {
			return rule
		}
	}
	return nil
}
