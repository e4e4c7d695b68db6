package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/clients/sheetsclient"
	"github.com/jakechorley/shift-rota/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command.
// The Sheets client is only created here so that other commands never need OAuth.
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule [cycle_id]",
		Short: "Publish a saved schedule to the rota sheet (defaults to latest cycle)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cycleID string
			if len(args) > 0 {
				cycleID = args[0]
			}

			app.Logger.Debug("publishSchedule command", zap.String("cycle_id", cycleID))

			app.Logger.Info("Loading OAuth client configuration")
			oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			app.Logger.Info("Initializing sheets client")
			sheetsClient, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			published, err := services.PublishSchedule(
				app.Ctx,
				app.Database,
				sheetsClient,
				app.Cfg,
				app.Logger,
				cycleID,
			)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Schedule published successfully!\n\n")
			fmt.Printf("Start Date: %s\n", published.StartDate)
			fmt.Printf("Weeks:      %d\n", published.Weeks)
			fmt.Printf("Rows:       %d\n", len(published.Rows))
			fmt.Printf("Operators:  %d\n", len(published.Hours))
			fmt.Printf("Sheet:      https://docs.google.com/spreadsheets/d/%s\n\n", app.Cfg.RotaSheetID)

			return nil
		},
	}
}
