package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shift-rota/pkg/db"
)

// GetDiagnostics retrieves the diagnostics recorded for one cycle
func (d *DB) GetDiagnostics(ctx context.Context, cycleID string) ([]db.Diagnostic, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, cycle_id, kind, shift_date, group_index, operator_id, description
		FROM diagnostic
		WHERE cycle_id = $1
		ORDER BY kind, shift_date NULLS LAST, group_index
	`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query diagnostics: %w", err)
	}
	defer rows.Close()

	var diagnostics []db.Diagnostic
	for rows.Next() {
		var diag db.Diagnostic
		var shiftDate *time.Time
		var operatorID *string
		if err := rows.Scan(&diag.ID, &diag.CycleID, &diag.Kind, &shiftDate, &diag.GroupIndex, &operatorID, &diag.Description); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		if shiftDate != nil {
			diag.ShiftDate = shiftDate.Format(db.DateLayout)
		}
		if operatorID != nil {
			diag.OperatorID = *operatorID
		}
		diagnostics = append(diagnostics, diag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating diagnostics: %w", err)
	}

	return diagnostics, nil
}

// insertDiagnostics writes diagnostic rows on tx
func insertDiagnostics(ctx context.Context, tx pgx.Tx, diagnostics []db.Diagnostic) error {
	for _, diag := range diagnostics {
		var shiftDate, operatorID *string
		if diag.ShiftDate != "" {
			shiftDate = &diag.ShiftDate
		}
		if diag.OperatorID != "" {
			operatorID = &diag.OperatorID
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO diagnostic (id, cycle_id, kind, shift_date, group_index, operator_id, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, diag.ID, diag.CycleID, diag.Kind, shiftDate, diag.GroupIndex, operatorID, diag.Description)
		if err != nil {
			return fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}
	return nil
}
