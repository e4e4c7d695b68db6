package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/core/allocator"
	"github.com/jakechorley/shift-rota/pkg/db"
)

// OperatorScheduleView is one operator's row of a committed schedule
type OperatorScheduleView struct {
	OperatorIndex int
	OperatorID    string
	Cells         []db.Assignment // indexed by day ordinal
	PerWeekHours  []float64
	TotalHours    float64
}

// ScheduleView contains a committed schedule as read back from the database
type ScheduleView struct {
	Cycle       *db.Cycle
	Dates       []time.Time
	Operators   []OperatorScheduleView
	Diagnostics []db.Diagnostic
}

// ViewScheduleStore defines the database operations needed for viewing a schedule
type ViewScheduleStore interface {
	GetCycles(ctx context.Context) ([]db.Cycle, error)
	GetAssignments(ctx context.Context, cycleID string) ([]db.Assignment, error)
	GetDiagnostics(ctx context.Context, cycleID string) ([]db.Diagnostic, error)
}

// ViewSchedule loads the committed schedule for a cycle (the latest when cycleID is empty)
func ViewSchedule(ctx context.Context, database ViewScheduleStore, logger *zap.Logger, cycleID string) (*ScheduleView, error) {
	logger.Debug("Starting viewSchedule", zap.String("cycle_id", cycleID))

	cycles, err := database.GetCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cycles: %w", err)
	}

	cycle, err := resolveCycle(cycles, cycleID)
	if err != nil {
		return nil, err
	}

	dates, err := cycle.Dates()
	if err != nil {
		return nil, fmt.Errorf("failed to calculate cycle dates: %w", err)
	}

	logger.Debug("Fetching assignments", zap.String("cycle_id", cycle.ID))
	assignments, err := database.GetAssignments(ctx, cycle.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("no schedule found for cycle %s - run generateSchedule first", cycle.ID)
	}

	diagnostics, err := database.GetDiagnostics(ctx, cycle.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch diagnostics: %w", err)
	}

	operators, err := groupAssignmentsByOperator(assignments, cycle.Weeks, len(dates))
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded schedule",
		zap.Int("operators", len(operators)),
		zap.Int("assignments", len(assignments)),
		zap.Int("diagnostics", len(diagnostics)))

	return &ScheduleView{
		Cycle:       cycle,
		Dates:       dates,
		Operators:   operators,
		Diagnostics: diagnostics,
	}, nil
}

// groupAssignmentsByOperator rebuilds the per-operator rows of the grid
func groupAssignmentsByOperator(assignments []db.Assignment, weeks, days int) ([]OperatorScheduleView, error) {
	sorted := make([]db.Assignment, len(assignments))
	copy(sorted, assignments)
	db.SortAssignments(sorted)

	var operators []OperatorScheduleView
	for _, a := range sorted {
		if a.Week < 0 || a.Week >= weeks || a.Weekday < 0 || a.Weekday > 6 {
			return nil, fmt.Errorf("assignment %s is outside the cycle (week %d, weekday %d)", a.ID, a.Week, a.Weekday)
		}

		if len(operators) == 0 || operators[len(operators)-1].OperatorIndex != a.OperatorIndex {
			// Days missing from the store read as unworked
			cells := make([]db.Assignment, days)
			for i := range cells {
				cells[i] = db.Assignment{Label: allocator.NoLabel, IsRest: true}
			}
			operators = append(operators, OperatorScheduleView{
				OperatorIndex: a.OperatorIndex,
				OperatorID:    a.OperatorID,
				Cells:         cells,
				PerWeekHours:  make([]float64, weeks),
			})
		}

		ordinal := a.Week*7 + a.Weekday
		row := &operators[len(operators)-1]
		row.Cells[ordinal] = a
		if !a.IsRest {
			row.PerWeekHours[a.Week] += a.Hours
			row.TotalHours += a.Hours
		}
	}

	return operators, nil
}
