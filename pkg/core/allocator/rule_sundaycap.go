package allocator

import "fmt"

// DefaultMaxConsecutiveSundays is the number of Sundays in a row an operator may work
const DefaultMaxConsecutiveSundays = 2

// SundayCapRule forces a rest on a Sunday once the operator has worked the
// maximum number of consecutive Sundays.
//
// The counter itself lives on Operator.ConsecutiveSundays and is maintained by
// the allocator: working a Sunday increments it, resting on a Sunday (for any
// reason) resets it. Other weekdays leave it unchanged.
type SundayCapRule struct {
	max int
}

// NewSundayCapRule creates a new SundayCapRule with the given limit
func NewSundayCapRule(maxConsecutive int) *SundayCapRule {
	if maxConsecutive < 1 {
		maxConsecutive = DefaultMaxConsecutiveSundays
	}
	return &SundayCapRule{max: maxConsecutive}
}

func (r *SundayCapRule) Name() string {
	return "SundayCap"
}

func (r *SundayCapRule) Reason() RestReason {
	return RestSundayCap
}

// Max returns the configured number of consecutive Sundays
func (r *SundayCapRule) Max() int {
	return r.max
}

func (r *SundayCapRule) IsRestForced(op *Operator, day Day, label int) bool {
	return day.IsSunday() && op.ConsecutiveSundays >= r.max
}

func (r *SundayCapRule) ValidateSchedule(schedule *Schedule) []RuleViolation {
	var violations []RuleViolation

	for _, op := range schedule.Operators {
		streak := 0
		for week := 0; week < schedule.Weeks; week++ {
			cell := schedule.Cell(op.Index, week, Sunday)
			if cell.Rest {
				streak = 0
				continue
			}

			streak++
			if streak > r.max {
				violations = append(violations, RuleViolation{
					Day:         cell.Day,
					OperatorID:  op.ID(),
					RuleName:    r.Name(),
					Description: fmt.Sprintf("%s works %d consecutive Sundays (max %d)", op.ID(), streak, r.max),
				})
			}
		}
	}

	return violations
}
