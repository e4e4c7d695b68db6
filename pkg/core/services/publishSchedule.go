package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/clients/sheetsclient"
	"github.com/jakechorley/shift-rota/pkg/core/allocator"
	"github.com/jakechorley/shift-rota/pkg/db"
)

const publishedDateFormat = "Mon Jan 02 2006"

// SchedulePublisher writes a published schedule to a spreadsheet
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, published *sheetsclient.PublishedSchedule) error
}

// PublishScheduleStore defines the database operations needed for publishing a schedule
type PublishScheduleStore interface {
	ViewScheduleStore
}

// PublishSchedule builds the published layout of a committed schedule and writes
// it to the rota sheet. If cycleID is empty, it defaults to the latest cycle.
func PublishSchedule(
	ctx context.Context,
	database PublishScheduleStore,
	publisher SchedulePublisher,
	cfg *config.Config,
	logger *zap.Logger,
	cycleID string,
) (*sheetsclient.PublishedSchedule, error) {
	logger.Debug("Starting publishSchedule", zap.String("cycle_id", cycleID))

	if cfg.RotaSheetID == "" {
		return nil, fmt.Errorf("rotaSheetID is not configured")
	}

	// Step 1: Load the committed schedule
	view, err := ViewSchedule(ctx, database, logger, cycleID)
	if err != nil {
		return nil, err
	}

	// Step 2: Build the published layout
	published := BuildPublishedSchedule(view, cfg.Shifts.ShiftsPerDay)
	logger.Debug("Built published schedule",
		zap.Int("rows", len(published.Rows)),
		zap.Int("operators", len(published.Hours)))

	// Step 3: Write to the sheet
	logger.Info("Publishing schedule",
		zap.String("cycle_id", view.Cycle.ID),
		zap.String("spreadsheet_id", cfg.RotaSheetID))
	if err := publisher.PublishSchedule(cfg.RotaSheetID, published); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published", zap.String("cycle_id", view.Cycle.ID))
	return published, nil
}

// BuildPublishedSchedule lays a schedule out as one row per week and shift label,
// followed by every operator's hours
func BuildPublishedSchedule(view *ScheduleView, shiftsPerDay int) *sheetsclient.PublishedSchedule {
	weeks := view.Cycle.Weeks

	// Labels seen in the data may exceed the configured count if the config changed
	labels := shiftsPerDay
	for _, op := range view.Operators {
		for _, cell := range op.Cells {
			if !cell.IsRest && cell.Label+1 > labels {
				labels = cell.Label + 1
			}
		}
	}

	rows := make([]sheetsclient.PublishedScheduleRow, 0, weeks*labels)
	for week := 0; week < weeks; week++ {
		weekStart := view.Dates[week*7].Format(publishedDateFormat)
		closed := closedWeekdays(view, week)

		for label := 0; label < labels; label++ {
			row := sheetsclient.PublishedScheduleRow{
				Week:      week + 1,
				WeekStart: weekStart,
				Shift:     label + 1,
				Closed:    closed,
			}
			for _, op := range view.Operators {
				for weekday := 0; weekday < 7; weekday++ {
					cell := op.Cells[week*7+weekday]
					if !cell.IsRest && cell.Label == label {
						row.Operators[weekday] = append(row.Operators[weekday], op.OperatorID)
					}
				}
			}
			rows = append(rows, row)
		}
	}

	outside := make(map[string]bool)
	for _, d := range view.Diagnostics {
		if d.Kind == db.DiagnosticBalanceViolation {
			outside[d.OperatorID] = true
		}
	}

	hours := make([]sheetsclient.PublishedHoursRow, 0, len(view.Operators))
	for _, op := range view.Operators {
		hours = append(hours, sheetsclient.PublishedHoursRow{
			OperatorID:       op.OperatorID,
			PerWeek:          op.PerWeekHours,
			Total:            op.TotalHours,
			OutsideTolerance: outside[op.OperatorID],
		})
	}

	return &sheetsclient.PublishedSchedule{
		StartDate: view.Cycle.Start,
		Weeks:     weeks,
		Rows:      rows,
		Hours:     hours,
	}
}

// closedWeekdays reports the days of a week on which every operator rested as closed
func closedWeekdays(view *ScheduleView, week int) [7]bool {
	var closed [7]bool
	if len(view.Operators) == 0 {
		return closed
	}

	for weekday := 0; weekday < 7; weekday++ {
		closed[weekday] = true
		for _, op := range view.Operators {
			cell := op.Cells[week*7+weekday]
			if !cell.IsRest || cell.RestReason != string(allocator.RestClosed) {
				closed[weekday] = false
				break
			}
		}
	}
	return closed
}
