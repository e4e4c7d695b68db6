package allocator

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Schedule is the complete grid produced by one run
type Schedule struct {
	Weeks        int
	ShiftsPerDay int

	// Operators holds the final operator state, in roster order
	Operators []*Operator

	// Groups are the shift groups used for the run
	Groups []*ShiftGroup

	// Plans holds the resolved requirement for every day, indexed by ordinal
	Plans []DayPlan

	// Cells is indexed by [operator index][day ordinal]
	Cells [][]Cell

	policy RotationPolicy
}

// NewSchedule allocates an empty grid where every cell is a balanced rest
func NewSchedule(operators []*Operator, groups []*ShiftGroup, plans []DayPlan, weeks, shiftsPerDay int) *Schedule {
	days := weeks * DaysPerWeek
	cells := make([][]Cell, len(operators))
	for _, op := range operators {
		row := make([]Cell, days)
		for ordinal := range row {
			row[ordinal] = Cell{
				OperatorIndex: op.Index,
				Day:           DayFromOrdinal(ordinal),
				Label:         NoLabel,
				Rest:          true,
				Reason:        RestBalanced,
			}
		}
		cells[op.Index] = row
	}

	return &Schedule{
		Weeks:        weeks,
		ShiftsPerDay: shiftsPerDay,
		Operators:    operators,
		Groups:       groups,
		Plans:        plans,
		Cells:        cells,
		policy:       RotationPolicy{ShiftsPerDay: shiftsPerDay},
	}
}

// Days returns the number of days in the cycle
func (s *Schedule) Days() int {
	return s.Weeks * DaysPerWeek
}

// Cell returns the cell for an operator on a given week and weekday
func (s *Schedule) Cell(operatorIndex, week, weekday int) Cell {
	return s.Cells[operatorIndex][week*DaysPerWeek+weekday]
}

// LabelFor returns the label a group works in a given week
func (s *Schedule) LabelFor(groupIndex, week int) int {
	return s.policy.LabelFor(groupIndex, week)
}

// StaffedCount returns the number of group members working on the given day
func (s *Schedule) StaffedCount(groupIndex, ordinal int) int {
	count := 0
	for _, member := range s.Groups[groupIndex].Members {
		if s.Cells[member.Index][ordinal].Works() {
			count++
		}
	}
	return count
}

// GridEntry is the flattened form of a cell handed to presentation and storage
type GridEntry struct {
	OperatorID string
	Week       int
	Weekday    int
	Label      int
	Hours      float64
	IsRest     bool
}

// Grid flattens the schedule in operator, then chronological order
func (s *Schedule) Grid() []GridEntry {
	entries := make([]GridEntry, 0, len(s.Operators)*s.Days())
	for _, op := range s.Operators {
		for _, cell := range s.Cells[op.Index] {
			entries = append(entries, GridEntry{
				OperatorID: op.ID(),
				Week:       cell.Day.Week,
				Weekday:    cell.Day.Weekday,
				Label:      cell.Label,
				Hours:      cell.Hours,
				IsRest:     cell.Rest,
			})
		}
	}
	return entries
}

// OperatorSummary reports the hours an operator worked over the cycle
type OperatorSummary struct {
	OperatorIndex int
	OperatorID    string
	GroupIndex    int
	TotalHours    float64
	PerWeekHours  []float64
	WorkedDays    int

	// BalanceViolation is true when TotalHours is outside the tolerance band
	BalanceViolation bool
}

// Summarise builds per-operator summaries and the balance violations for the given
// target. TotalHours is always the sum of PerWeekHours.
func (s *Schedule) Summarise(targetWeeklyHours, tolerance float64) ([]OperatorSummary, []BalanceViolation) {
	targetHours := float64(s.Weeks) * targetWeeklyHours

	summaries := make([]OperatorSummary, 0, len(s.Operators))
	violations := []BalanceViolation{}

	for _, op := range s.Operators {
		perWeek := make([]float64, s.Weeks)
		worked := 0
		for _, cell := range s.Cells[op.Index] {
			if cell.Works() {
				perWeek[cell.Day.Week] += cell.Hours
				worked++
			}
		}

		total := 0.0
		for _, hours := range perWeek {
			total += hours
		}

		outside := math.Abs(total-targetHours) > tolerance
		if outside {
			violations = append(violations, BalanceViolation{
				OperatorIndex: op.Index,
				OperatorID:    op.ID(),
				TotalHours:    total,
				TargetHours:   targetHours,
				Tolerance:     tolerance,
			})
		}

		summaries = append(summaries, OperatorSummary{
			OperatorIndex:    op.Index,
			OperatorID:       op.ID(),
			GroupIndex:       op.GroupIndex,
			TotalHours:       total,
			PerWeekHours:     perWeek,
			WorkedDays:       worked,
			BalanceViolation: outside,
		})
	}

	return summaries, violations
}

// HourStats describes the spread of total hours across the roster
type HourStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Spread returns the difference between the most and least worked operator
func (h HourStats) Spread() float64 {
	return h.Max - h.Min
}

// CalculateHourStats summarises operator totals
func CalculateHourStats(summaries []OperatorSummary) HourStats {
	if len(summaries) == 0 {
		return HourStats{}
	}

	totals := make([]float64, len(summaries))
	for i, summary := range summaries {
		totals[i] = summary.TotalHours
	}

	mean, stdDev := stat.MeanStdDev(totals, nil)
	if len(totals) == 1 {
		stdDev = 0
	}

	return HourStats{
		Mean:   mean,
		StdDev: stdDev,
		Min:    floats.Min(totals),
		Max:    floats.Max(totals),
	}
}
