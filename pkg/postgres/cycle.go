package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shift-rota/pkg/db"
)

// GetCycles retrieves all cycle records
func (d *DB) GetCycles(ctx context.Context) ([]db.Cycle, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, start, weeks, generated_datetime
		FROM cycle
		ORDER BY start
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	defer rows.Close()

	var cycles []db.Cycle
	for rows.Next() {
		var c db.Cycle
		var start time.Time
		var generatedDatetime *time.Time
		if err := rows.Scan(&c.ID, &start, &c.Weeks, &generatedDatetime); err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		c.Start = start.Format(db.DateLayout)
		if generatedDatetime != nil {
			c.GeneratedDatetime = generatedDatetime.UTC().Format(time.RFC3339)
		}
		cycles = append(cycles, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cycles: %w", err)
	}

	return cycles, nil
}

// InsertCycle inserts a new cycle record
func (d *DB) InsertCycle(ctx context.Context, cycle *db.Cycle) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO cycle (id, start, weeks)
		VALUES ($1, $2, $3)
	`, cycle.ID, cycle.Start, cycle.Weeks)
	if err != nil {
		return fmt.Errorf("failed to insert cycle: %w", err)
	}
	return nil
}

// markCycleGenerated sets generated_datetime on a cycle that has no schedule yet
func markCycleGenerated(ctx context.Context, tx pgx.Tx, cycleID string, datetime time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE cycle SET generated_datetime = $2 WHERE id = $1 AND generated_datetime IS NULL
	`, cycleID, datetime.UTC())
	if err != nil {
		return fmt.Errorf("failed to set cycle generated_datetime: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cycle %s not found or already generated", cycleID)
	}
	return nil
}
