package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/db"
)

// ListCycles returns every cycle in chronological order
func ListCycles(ctx context.Context, database db.CycleStore, logger *zap.Logger) ([]db.Cycle, error) {
	logger.Debug("Fetching cycles")
	cycles, err := database.GetCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cycles: %w", err)
	}

	sorted := make([]db.Cycle, len(cycles))
	copy(sorted, cycles)
	sortCyclesByStart(sorted)

	logger.Debug("Found cycles", zap.Int("count", len(sorted)))
	return sorted, nil
}
