package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/core/services"
)

// ViewScheduleCmd creates the viewSchedule command
func ViewScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewSchedule [cycle_id]",
		Short: "View the saved schedule for a cycle (defaults to latest cycle)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cycleID string
			if len(args) > 0 {
				cycleID = args[0]
			}
			noColor, _ := cmd.Flags().GetBool("no-color")

			app.Logger.Debug("viewSchedule command", zap.String("cycle_id", cycleID))

			view, err := services.ViewSchedule(app.Ctx, app.Database, app.Logger, cycleID)
			if err != nil {
				return err
			}

			fmt.Printf("\n📅 Schedule for cycle %s (%s, %d weeks)\n", view.Cycle.ID, view.Cycle.Start, view.Cycle.Weeks)
			if view.Cycle.IsGenerated() {
				fmt.Printf("Generated: %s\n", view.Cycle.GeneratedDatetime)
			}
			fmt.Println()

			printDiagnostics(os.Stdout, view.Diagnostics)
			renderGrid(os.Stdout, view.Dates, rowsFromView(view), !noColor)

			return nil
		},
	}

	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}
