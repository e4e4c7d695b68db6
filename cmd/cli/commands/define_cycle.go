package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-rota/pkg/core/services"
)

// DefineCycleCmd creates the defineCycle command
func DefineCycleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "defineCycle [weeks]",
		Short: "Define a new scheduling cycle (defaults to cycleWeeks from config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weeks := app.Cfg.CycleWeeks
			if len(args) > 0 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("weeks must be a number: %w", err)
				}
				weeks = parsed
			}

			result, err := services.DefineCycle(app.Ctx, app.Database, app.Logger, weeks)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Cycle created successfully!\n\n")
			fmt.Printf("Cycle ID:   %s\n", result.Cycle.ID)
			fmt.Printf("Start Date: %s\n", result.Cycle.Start)
			fmt.Printf("Weeks:      %d\n\n", result.Cycle.Weeks)

			fmt.Printf("Week Starts:\n")
			for i, weekStart := range result.WeekStarts {
				fmt.Printf("  %2d. %s\n", i+1, weekStart.Format("2006-01-02 (Monday)"))
			}
			fmt.Println()

			return nil
		},
	}
}
