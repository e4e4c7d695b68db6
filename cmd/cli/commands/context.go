package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context

	// Env selects the OAuth client file and token store for publishing
	Env string
}
