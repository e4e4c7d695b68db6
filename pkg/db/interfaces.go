package db

import (
	"context"
	"time"
)

// CycleStore defines the interface for cycle database operations
type CycleStore interface {
	GetCycles(ctx context.Context) ([]Cycle, error)
	InsertCycle(ctx context.Context, cycle *Cycle) error
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	GetCycles(ctx context.Context) ([]Cycle, error)
	InsertCycle(ctx context.Context, cycle *Cycle) error
	GetAssignments(ctx context.Context, cycleID string) ([]Assignment, error)
	GetDiagnostics(ctx context.Context, cycleID string) ([]Diagnostic, error)
	CommitSchedule(ctx context.Context, cycleID string, assignments []Assignment, diagnostics []Diagnostic, generatedAt time.Time) error
}
