package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/core/allocator"
	"github.com/jakechorley/shift-rota/pkg/db"
)

// GenerateScheduleResult contains the generated schedule and whether it was saved
type GenerateScheduleResult struct {
	Cycle   *db.Cycle
	Dates   []time.Time
	Outcome *allocator.AllocationOutcome
	Saved   bool
}

// GenerateScheduleStore defines the database operations needed for generating a schedule
type GenerateScheduleStore interface {
	GetCycles(ctx context.Context) ([]db.Cycle, error)
	CommitSchedule(ctx context.Context, cycleID string, assignments []db.Assignment, diagnostics []db.Diagnostic, generatedAt time.Time) error
}

// GenerateSchedule runs the allocator for a cycle (the latest when cycleID is empty).
// If dryRun is true nothing is saved. If forceCommit is true the schedule is saved
// even when the outcome reports shortfalls or violations.
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	cycleID string,
	dryRun bool,
	forceCommit bool,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule",
		zap.String("cycle_id", cycleID),
		zap.Bool("dry_run", dryRun),
		zap.Bool("force_commit", forceCommit))

	// Step 1: Resolve the target cycle
	logger.Debug("Fetching cycles")
	cycles, err := database.GetCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cycles: %w", err)
	}

	cycle, err := resolveCycle(cycles, cycleID)
	if err != nil {
		return nil, err
	}
	logger.Debug("Target cycle",
		zap.String("id", cycle.ID),
		zap.String("start", cycle.Start),
		zap.Int("weeks", cycle.Weeks))

	if cycle.IsGenerated() && !dryRun {
		return nil, fmt.Errorf("cycle %s already has a schedule (generated %s)", cycle.ID, cycle.GeneratedDatetime)
	}

	dates, err := cycle.Dates()
	if err != nil {
		return nil, fmt.Errorf("failed to calculate cycle dates: %w", err)
	}

	// Step 2: Build the allocator input
	allocConfig, err := buildAllocationConfig(cfg, cycle.Weeks, dates, logger)
	if err != nil {
		return nil, err
	}

	// Step 3: Run the allocator
	logger.Info("Running allocation algorithm")
	outcome, err := allocator.Allocate(allocConfig)
	if err != nil {
		var cfgErr *allocator.ConfigurationError
		if errors.As(err, &cfgErr) {
			logger.Error("Configuration cannot be scheduled",
				zap.String("field", cfgErr.Field),
				zap.String("reason", cfgErr.Reason))
		}
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	logger.Info("Allocation completed",
		zap.Bool("success", outcome.Success),
		zap.Int("shortfalls", len(outcome.Shortfalls)),
		zap.Int("balance_violations", len(outcome.BalanceViolations)),
		zap.Int("rule_violations", len(outcome.RuleViolations)),
		zap.Float64("mean_hours", outcome.Stats.Mean),
		zap.Float64("stddev_hours", outcome.Stats.StdDev))

	for _, sf := range outcome.Shortfalls {
		logger.Warn("Coverage shortfall",
			zap.String("date", dates[sf.Day.Ordinal()].Format(db.DateLayout)),
			zap.Int("group", sf.GroupIndex),
			zap.Int("missing", sf.Missing()),
			zap.Strings("forced_rest", sf.ForcedRest))
	}
	for _, v := range outcome.BalanceViolations {
		logger.Warn("Balance violation", zap.String("description", v.String()))
	}
	for _, v := range outcome.RuleViolations {
		logger.Warn("Rule violation",
			zap.String("rule", v.RuleName),
			zap.String("operator", v.OperatorID),
			zap.String("description", v.Description))
	}

	result := &GenerateScheduleResult{
		Cycle:   cycle,
		Dates:   dates,
		Outcome: outcome,
	}

	// Step 4: Save unless this is a dry run or an unforced failure
	if dryRun {
		logger.Info("Dry run mode - schedule not saved")
		return result, nil
	}
	if !outcome.Success && !forceCommit {
		logger.Warn("Schedule has diagnostics - not saving to database (use --force-commit to save anyway)")
		return result, nil
	}

	logger.Info("Saving schedule to database",
		zap.Bool("success", outcome.Success),
		zap.Bool("forced", forceCommit && !outcome.Success))

	assignments := convertToDBAssignments(cycle.ID, outcome.Schedule, dates)
	diagnostics := convertToDBDiagnostics(cycle.ID, outcome, dates)
	if err := database.CommitSchedule(ctx, cycle.ID, assignments, diagnostics, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	logger.Info("Schedule saved",
		zap.Int("assignments", len(assignments)),
		zap.Int("diagnostics", len(diagnostics)))

	result.Saved = true
	return result, nil
}

// convertToDBAssignments flattens the schedule into one row per operator per day
func convertToDBAssignments(cycleID string, schedule *allocator.Schedule, dates []time.Time) []db.Assignment {
	assignments := make([]db.Assignment, 0, len(schedule.Operators)*len(dates))

	for _, op := range schedule.Operators {
		for ordinal, cell := range schedule.Cells[op.Index] {
			assignment := db.Assignment{
				ID:            uuid.New().String(),
				CycleID:       cycleID,
				OperatorIndex: op.Index,
				OperatorID:    op.ID(),
				ShiftDate:     dates[ordinal].Format(db.DateLayout),
				Week:          cell.Day.Week,
				Weekday:       cell.Day.Weekday,
				Label:         cell.Label,
				Hours:         cell.Hours,
				IsRest:        cell.Rest,
			}
			if cell.Rest {
				assignment.RestReason = string(cell.Reason)
			}
			assignments = append(assignments, assignment)
		}
	}

	return assignments
}

// convertToDBDiagnostics records every shortfall and violation of the outcome
func convertToDBDiagnostics(cycleID string, outcome *allocator.AllocationOutcome, dates []time.Time) []db.Diagnostic {
	diagnostics := make([]db.Diagnostic, 0,
		len(outcome.Shortfalls)+len(outcome.BalanceViolations)+len(outcome.RuleViolations))

	for _, sf := range outcome.Shortfalls {
		diagnostics = append(diagnostics, db.Diagnostic{
			ID:          uuid.New().String(),
			CycleID:     cycleID,
			Kind:        db.DiagnosticCoverageShortfall,
			ShiftDate:   dates[sf.Day.Ordinal()].Format(db.DateLayout),
			GroupIndex:  sf.GroupIndex,
			Description: sf.String(),
		})
	}

	for _, v := range outcome.BalanceViolations {
		diagnostics = append(diagnostics, db.Diagnostic{
			ID:          uuid.New().String(),
			CycleID:     cycleID,
			Kind:        db.DiagnosticBalanceViolation,
			GroupIndex:  -1,
			OperatorID:  v.OperatorID,
			Description: v.String(),
		})
	}

	for _, v := range outcome.RuleViolations {
		diagnostics = append(diagnostics, db.Diagnostic{
			ID:          uuid.New().String(),
			CycleID:     cycleID,
			Kind:        db.DiagnosticRuleViolation,
			ShiftDate:   dates[v.Day.Ordinal()].Format(db.DateLayout),
			GroupIndex:  -1,
			OperatorID:  v.OperatorID,
			Description: v.Description,
		})
	}

	return diagnostics
}
