package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shift-rota/pkg/db"
)

// GetAssignments retrieves the assignments of one cycle ordered by operator then date
func (d *DB) GetAssignments(ctx context.Context, cycleID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, cycle_id, operator_index, operator_id, shift_date, week, weekday, label, hours, is_rest, rest_reason
		FROM assignment
		WHERE cycle_id = $1
		ORDER BY operator_index, shift_date
	`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var shiftDate time.Time
		var restReason *string
		if err := rows.Scan(&a.ID, &a.CycleID, &a.OperatorIndex, &a.OperatorID, &shiftDate,
			&a.Week, &a.Weekday, &a.Label, &a.Hours, &a.IsRest, &restReason); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.ShiftDate = shiftDate.Format(db.DateLayout)
		if restReason != nil {
			a.RestReason = *restReason
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// insertAssignments queues every assignment row on tx as one batch
func insertAssignments(ctx context.Context, tx pgx.Tx, assignments []db.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range assignments {
		var restReason *string
		if a.RestReason != "" {
			restReason = &a.RestReason
		}
		batch.Queue(`
			INSERT INTO assignment (id, cycle_id, operator_index, operator_id, shift_date, week, weekday, label, hours, is_rest, rest_reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, a.ID, a.CycleID, a.OperatorIndex, a.OperatorID, a.ShiftDate, a.Week, a.Weekday, a.Label, a.Hours, a.IsRest, restReason)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert assignments: %w", err)
	}
	return nil
}
