package allocator

import "fmt"

// ShiftChangeRestRule enforces a changeover gap when an operator's shift label
// changes between weeks.
//
// Validity:
//   - On the first day of a week, if the week's label differs from the last label
//     the operator worked, and the operator worked the day before, the operator rests.
//   - An operator who already rested the previous day has the gap and is not forced.
type ShiftChangeRestRule struct{}

// NewShiftChangeRestRule creates a new ShiftChangeRestRule
func NewShiftChangeRestRule() *ShiftChangeRestRule {
	return &ShiftChangeRestRule{}
}

func (r *ShiftChangeRestRule) Name() string {
	return "ShiftChangeRest"
}

func (r *ShiftChangeRestRule) Reason() RestReason {
	return RestShiftChange
}

func (r *ShiftChangeRestRule) IsRestForced(op *Operator, day Day, label int) bool {
	if !day.IsFirstOfWeek() || op.LastShiftLabel == NoLabel {
		return false
	}
	return op.LastShiftLabel != label && op.WorkedDay(day.Ordinal()-1)
}

func (r *ShiftChangeRestRule) ValidateSchedule(schedule *Schedule) []RuleViolation {
	var violations []RuleViolation

	for _, op := range schedule.Operators {
		lastLabel := NoLabel
		workedPrevious := false

		for ordinal := 0; ordinal < schedule.Days(); ordinal++ {
			cell := schedule.Cells[op.Index][ordinal]

			if cell.Works() {
				changed := lastLabel != NoLabel && cell.Label != lastLabel
				if cell.Day.IsFirstOfWeek() && changed && workedPrevious {
					violations = append(violations, RuleViolation{
						Day:        cell.Day,
						OperatorID: op.ID(),
						RuleName:   r.Name(),
						Description: fmt.Sprintf("%s moves from shift %d to shift %d without a rest day",
							op.ID(), lastLabel+1, cell.Label+1),
					})
				}
				lastLabel = cell.Label
			}

			workedPrevious = cell.Works()
		}
	}

	return violations
}
