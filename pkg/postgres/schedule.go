package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shift-rota/pkg/db"
)

// CommitSchedule saves a cycle's assignments and diagnostics and marks the cycle
// as generated. Either every write lands or none does.
func (d *DB) CommitSchedule(ctx context.Context, cycleID string, assignments []db.Assignment, diagnostics []db.Diagnostic, generatedAt time.Time) error {
	return d.withTx(ctx, func(tx pgx.Tx) error {
		// Marking first locks the cycle row against a second commit
		if err := markCycleGenerated(ctx, tx, cycleID, generatedAt); err != nil {
			return err
		}
		if err := insertAssignments(ctx, tx, assignments); err != nil {
			return err
		}
		return insertDiagnostics(ctx, tx, diagnostics)
	})
}
