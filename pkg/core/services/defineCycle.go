package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/db"
)

// CycleResult represents the result of defining a new cycle
type CycleResult struct {
	Cycle      *db.Cycle
	WeekStarts []time.Time
}

// DefineCycle creates a new cycle of the given number of weeks.
// The cycle starts the Monday after the latest existing cycle ends, or next
// Monday if there are none.
func DefineCycle(ctx context.Context, database db.CycleStore, logger *zap.Logger, weeks int) (*CycleResult, error) {
	if weeks <= 0 {
		return nil, fmt.Errorf("cycle weeks must be positive, got %d", weeks)
	}

	logger.Debug("Defining new cycle", zap.Int("weeks", weeks))

	logger.Debug("Fetching existing cycles")
	cycles, err := database.GetCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cycles: %w", err)
	}

	logger.Debug("Found existing cycles", zap.Int("count", len(cycles)))

	var startDate time.Time
	if len(cycles) == 0 {
		startDate = nextMonday(time.Now())
		logger.Info("No existing cycles found, starting from next Monday", zap.Time("start_date", startDate))
	} else {
		latest := findLatestCycle(cycles)
		logger.Debug("Latest cycle found",
			zap.String("id", latest.ID),
			zap.String("start", latest.Start),
			zap.Int("weeks", latest.Weeks))

		latestStart, err := latest.StartDate()
		if err != nil {
			return nil, fmt.Errorf("failed to parse latest cycle start date: %w", err)
		}

		// First day after the latest cycle's final Sunday
		latestEnd := latestStart.AddDate(0, 0, 7*latest.Weeks)
		startDate = nextMondayOnOrAfter(latestEnd)
		logger.Debug("Calculated start date from latest cycle",
			zap.Time("latest_end", latestEnd),
			zap.Time("new_start", startDate))
	}

	cycle := &db.Cycle{
		ID:    uuid.New().String(),
		Start: startDate.Format(db.DateLayout),
		Weeks: weeks,
	}

	logger.Debug("Creating new cycle", zap.String("id", cycle.ID), zap.String("start", cycle.Start))

	if err := database.InsertCycle(ctx, cycle); err != nil {
		return nil, fmt.Errorf("failed to insert cycle: %w", err)
	}

	weekStarts := make([]time.Time, weeks)
	for i := range weekStarts {
		weekStarts[i] = startDate.AddDate(0, 0, 7*i)
	}

	logger.Info("Cycle created",
		zap.String("cycle_id", cycle.ID),
		zap.String("start", cycle.Start),
		zap.Int("weeks", weeks))

	return &CycleResult{
		Cycle:      cycle,
		WeekStarts: weekStarts,
	}, nil
}
