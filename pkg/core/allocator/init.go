package allocator

import (
	"fmt"
	"strings"
)

// InitRosterInput contains the raw data needed to build a roster
type InitRosterInput struct {
	// OperatorNames are optional display names, in roster order
	OperatorNames []string

	// OperatorCount is the roster size when no names are given.
	// If both are set they must agree.
	OperatorCount int
}

// InitRoster creates a fresh roster with zeroed scheduling state.
//
// Returns a ConfigurationError if:
//   - The roster would be empty
//   - OperatorCount disagrees with the number of names
//   - Two operators share a name
func InitRoster(input InitRosterInput) (*Roster, error) {
	count := input.OperatorCount
	if len(input.OperatorNames) > 0 {
		if count != 0 && count != len(input.OperatorNames) {
			return nil, configErrorf("operatorCount", "%d operators declared but %d names given", count, len(input.OperatorNames))
		}
		count = len(input.OperatorNames)
	}

	if count <= 0 {
		return nil, configErrorf("operatorCount", "roster must contain at least one operator")
	}

	seen := make(map[string]bool, count)
	operators := make([]*Operator, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Operator %d", i+1)
		if len(input.OperatorNames) > 0 {
			name = strings.TrimSpace(input.OperatorNames[i])
			if name == "" {
				return nil, configErrorf("operators", "operator %d has an empty name", i+1)
			}
		}

		if seen[name] {
			return nil, configErrorf("operators", "duplicate operator name %q", name)
		}
		seen[name] = true

		operators[i] = &Operator{
			Index:          i,
			Name:           name,
			GroupIndex:     -1,
			LastShiftLabel: NoLabel,
			LastWorkedDay:  -1,
		}
	}

	return &Roster{Operators: operators}, nil
}

// InitDayPlansInput contains the data needed to resolve per-day requirements
type InitDayPlansInput struct {
	CycleWeeks         int
	DaysToCoverPerWeek int
	RequiredPerShift   int
	Overrides          []DayOverride

	// SmallestGroup is the size of the smallest shift group
	SmallestGroup int
}

// InitDayPlans resolves the required headcount for every day of the cycle.
//
// Weekdays beyond DaysToCoverPerWeek are closed. Overrides are applied in order,
// so a later RequiredPerShift wins. A required count larger than the smallest
// group is a ConfigurationError since that group could never be staffed.
func InitDayPlans(input InitDayPlansInput) ([]DayPlan, error) {
	totalDays := input.CycleWeeks * DaysPerWeek
	plans := make([]DayPlan, totalDays)

	for ordinal := 0; ordinal < totalDays; ordinal++ {
		day := DayFromOrdinal(ordinal)
		plan := DayPlan{
			Day:      day,
			Required: input.RequiredPerShift,
			Closed:   day.Weekday >= input.DaysToCoverPerWeek,
		}

		for _, override := range input.Overrides {
			if override.AppliesTo == nil || !override.AppliesTo(day) {
				continue
			}
			if override.RequiredPerShift != nil {
				plan.Required = *override.RequiredPerShift
			}
			if override.Closed {
				plan.Closed = true
			}
		}

		if !plan.Closed {
			if plan.Required < 1 {
				return nil, configErrorf("requiredPerShift", "%s requires %d operators per shift", day, plan.Required)
			}
			if plan.Required > input.SmallestGroup {
				return nil, configErrorf("requiredPerShift", "%s requires %d operators per shift but the smallest group has %d",
					day, plan.Required, input.SmallestGroup)
			}
		}

		plans[ordinal] = plan
	}

	return plans, nil
}
