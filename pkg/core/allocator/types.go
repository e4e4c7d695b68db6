package allocator

import "fmt"

// Weekday constants for the scheduling week (weekday 0 is Monday)
const (
	DaysPerWeek = 7
	Monday      = 0
	Sunday      = 6
)

// NoLabel marks an operator that has not worked a shift yet in this cycle
const NoLabel = -1

// Operator represents a single operator and their mutable scheduling state.
// Operators are created once per run by InitRoster and mutated only while the
// schedule is being assembled.
type Operator struct {
	// Index is the stable position of the operator in the roster
	Index int

	// Name is the display label (defaults to "Operator N")
	Name string

	// GroupIndex is the shift group this operator belongs to for the whole cycle
	GroupIndex int

	// Position is the operator's position within their shift group
	Position int

	// CumulativeHours is the number of hours worked so far in the cycle
	CumulativeHours float64

	// ConsecutiveSundays counts Sundays worked in a row
	ConsecutiveSundays int

	// LastShiftLabel is the label of the last shift worked (NoLabel if none)
	LastShiftLabel int

	// LastWorkedDay is the ordinal of the last day worked (-1 if none)
	LastWorkedDay int
}

// ID returns the identifier used in the grid and in diagnostics
func (o *Operator) ID() string {
	return o.Name
}

// WorkedDay returns true if the operator's last worked day is the given ordinal
func (o *Operator) WorkedDay(ordinal int) bool {
	return ordinal >= 0 && o.LastWorkedDay == ordinal
}

// Roster is the set of operators owned by a single scheduling run
type Roster struct {
	Operators []*Operator
}

// Size returns the number of operators in the roster
func (r *Roster) Size() int {
	return len(r.Operators)
}

// ShiftGroup is a block of operators that work the same shift label each week
type ShiftGroup struct {
	// Index of the group (0..G-1)
	Index int

	// Members in roster order
	Members []*Operator
}

// Size returns the number of operators in the group
func (g *ShiftGroup) Size() int {
	return len(g.Members)
}

// Day identifies one day of the cycle
type Day struct {
	Week    int
	Weekday int
}

// DayFromOrdinal converts a zero-based day ordinal into a Day
func DayFromOrdinal(ordinal int) Day {
	return Day{Week: ordinal / DaysPerWeek, Weekday: ordinal % DaysPerWeek}
}

// Ordinal returns the zero-based position of the day within the cycle
func (d Day) Ordinal() int {
	return d.Week*DaysPerWeek + d.Weekday
}

// IsSunday returns true if the day is the last day of the week
func (d Day) IsSunday() bool {
	return d.Weekday == Sunday
}

// IsFirstOfWeek returns true if the day is the first day of the week
func (d Day) IsFirstOfWeek() bool {
	return d.Weekday == Monday
}

func (d Day) String() string {
	return fmt.Sprintf("W%d/D%d", d.Week+1, d.Weekday+1)
}

// RestReason explains why an operator did not work on a day
type RestReason string

const (
	// RestBalanced means the operator was rested by hour balancing
	RestBalanced RestReason = "balanced"

	// RestClosed means nobody works on this day
	RestClosed RestReason = "closed"

	// RestSundayCap means the operator hit the consecutive Sunday limit
	RestSundayCap RestReason = "sunday_cap"

	// RestShiftChange means the operator needs a changeover gap after a label change
	RestShiftChange RestReason = "shift_change"
)

// Cell is one (operator, day) entry in the schedule grid
type Cell struct {
	OperatorIndex int
	Day           Day

	// Label is the shift label worked, or NoLabel when resting
	Label int

	// Hours worked on this day (0 when resting)
	Hours float64

	// Rest is true when the operator does not work this day
	Rest bool

	// Forced is true when the rest was mandated by a rule
	Forced bool

	// Reason is set for every rest cell
	Reason RestReason
}

// Works returns true if the cell is a worked shift
func (c Cell) Works() bool {
	return !c.Rest
}

// DayOverride customises specific days of the cycle
type DayOverride struct {
	// AppliesTo returns true if this override applies to the given day
	AppliesTo func(day Day) bool

	// RequiredPerShift overrides the required headcount per group (if set)
	RequiredPerShift *int

	// Closed marks the day as closed: every operator rests and no shortfall is recorded
	Closed bool
}

// DayPlan is the resolved requirement for a single day
type DayPlan struct {
	Day      Day
	Required int
	Closed   bool
}
