package allocator

import (
	"sort"

	"go.uber.org/zap"
)

// TargetSoFar returns the hours an operator should have worked by the end of the
// given day to be on track for targetWeeklyHours
func TargetSoFar(targetWeeklyHours float64, ordinal int) float64 {
	return targetWeeklyHours * float64(ordinal+1) / DaysPerWeek
}

// RankCandidates orders the operators that may work today.
//
// Operators below the target-so-far come first, then those at or above it. Each
// half is sorted by cumulative hours ascending, ties broken by the operator's
// position in the group offset by the day ordinal so the same operator is not
// always favoured.
func RankCandidates(candidates []*Operator, ordinal int, groupSize int, targetSoFar float64) []*Operator {
	below := make([]*Operator, 0, len(candidates))
	atOrAbove := make([]*Operator, 0, len(candidates))

	for _, op := range candidates {
		if op.CumulativeHours < targetSoFar {
			below = append(below, op)
		} else {
			atOrAbove = append(atOrAbove, op)
		}
	}

	tiebreak := func(op *Operator) int {
		return (op.Position + ordinal) % groupSize
	}
	less := func(ops []*Operator) func(i, j int) bool {
		return func(i, j int) bool {
			if ops[i].CumulativeHours != ops[j].CumulativeHours {
				return ops[i].CumulativeHours < ops[j].CumulativeHours
			}
			return tiebreak(ops[i]) < tiebreak(ops[j])
		}
	}

	sort.SliceStable(below, less(below))
	sort.SliceStable(atOrAbove, less(atOrAbove))

	return append(below, atOrAbove...)
}

// allocateGroupDay decides which members of a group work on one day and updates
// their state. Returns a shortfall if forced rests left too few candidates.
func (a *Allocator) allocateGroupDay(group *ShiftGroup, plan DayPlan) *CoverageShortfall {
	day := plan.Day
	ordinal := day.Ordinal()
	label := a.policy.LabelFor(group.Index, day.Week)

	if plan.Closed {
		for _, op := range group.Members {
			a.markRest(op, day, RestClosed, false)
		}
		return nil
	}

	// Step 1: Split forced rests from candidates
	candidates := make([]*Operator, 0, group.Size())
	forced := make(map[*Operator]RestRule)
	var forcedIDs []string

	for _, op := range group.Members {
		if rule := forcedRest(a.rules, op, day, label); rule != nil {
			forced[op] = rule
			forcedIDs = append(forcedIDs, op.ID())
			continue
		}
		candidates = append(candidates, op)
	}

	// Step 2-4: Rank candidates and take the required headcount
	ranked := RankCandidates(candidates, ordinal, group.Size(), TargetSoFar(a.targetWeeklyHours, ordinal))
	staffed := min(plan.Required, len(ranked))
	hours := a.hours.HoursFor(label, day.Week)

	// Step 5: Apply the assignment and update state
	for i, op := range ranked {
		if i < staffed {
			a.markWork(op, day, label, hours)
		} else {
			a.markRest(op, day, RestBalanced, false)
		}
	}
	for op, rule := range forced {
		a.markRest(op, day, rule.Reason(), true)
	}

	if staffed == plan.Required {
		return nil
	}

	a.logger.Debug("Coverage shortfall",
		zap.String("day", day.String()),
		zap.Int("group", group.Index),
		zap.Int("required", plan.Required),
		zap.Int("staffed", staffed),
		zap.Strings("forced_rest", forcedIDs))

	return &CoverageShortfall{
		Day:        day,
		GroupIndex: group.Index,
		Label:      label,
		Required:   plan.Required,
		Staffed:    staffed,
		ForcedRest: forcedIDs,
	}
}

// markWork records a worked shift and advances the operator's state
func (a *Allocator) markWork(op *Operator, day Day, label int, hours float64) {
	a.schedule.Cells[op.Index][day.Ordinal()] = Cell{
		OperatorIndex: op.Index,
		Day:           day,
		Label:         label,
		Hours:         hours,
	}

	op.CumulativeHours += hours
	op.LastShiftLabel = label
	op.LastWorkedDay = day.Ordinal()
	if day.IsSunday() {
		op.ConsecutiveSundays++
	}
}

// markRest records a rest day; any rest on a Sunday breaks the Sunday streak
func (a *Allocator) markRest(op *Operator, day Day, reason RestReason, forced bool) {
	a.schedule.Cells[op.Index][day.Ordinal()] = Cell{
		OperatorIndex: op.Index,
		Day:           day,
		Label:         NoLabel,
		Rest:          true,
		Forced:        forced,
		Reason:        reason,
	}

	if day.IsSunday() {
		op.ConsecutiveSundays = 0
	}
}
