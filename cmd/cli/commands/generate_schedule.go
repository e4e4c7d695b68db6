package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule [cycle_id]",
		Short: "Generate the shift schedule for a cycle (defaults to latest cycle)",
		Long:  "Run the rotation and hour-balancing algorithm to assign operators to shifts for every day of a cycle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cycleID string
			if len(args) > 0 {
				cycleID = args[0]
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			forceCommit, _ := cmd.Flags().GetBool("force-commit")
			noColor, _ := cmd.Flags().GetBool("no-color")

			app.Logger.Debug("generateSchedule command",
				zap.String("cycle_id", cycleID),
				zap.Bool("dry_run", dryRun),
				zap.Bool("force_commit", forceCommit))

			result, err := services.GenerateSchedule(
				app.Ctx,
				app.Database,
				app.Cfg,
				app.Logger,
				cycleID,
				dryRun,
				forceCommit,
			)
			if err != nil {
				return err
			}

			outcome := result.Outcome

			fmt.Printf("\n🎯 Schedule Generation Results\n\n")
			fmt.Printf("Cycle ID:    %s\n", result.Cycle.ID)
			fmt.Printf("Start Date:  %s\n", result.Cycle.Start)
			fmt.Printf("Weeks:       %d\n", result.Cycle.Weeks)
			switch {
			case dryRun:
				fmt.Printf("Mode:        🧪 DRY RUN (not saved)\n")
			case outcome.Success:
				fmt.Printf("Status:      ✅ SUCCESS (saved to database)\n")
			case result.Saved:
				fmt.Printf("Status:      ⚠️  FORCED (saved despite diagnostics)\n")
			default:
				fmt.Printf("Status:      ❌ FAILED (not saved)\n")
			}
			fmt.Printf("Hours:       mean %.1f, std-dev %.1f, spread %.1f\n\n",
				outcome.Stats.Mean, outcome.Stats.StdDev, outcome.Stats.Spread())

			if len(outcome.Shortfalls) > 0 {
				fmt.Printf("⚠️  Coverage Shortfalls (%d):\n", len(outcome.Shortfalls))
				for _, sf := range outcome.Shortfalls {
					fmt.Printf("  • %s: %s\n", result.Dates[sf.Day.Ordinal()].Format("Mon 2006-01-02"), sf)
				}
				fmt.Println()
			}
			if len(outcome.BalanceViolations) > 0 {
				fmt.Printf("⚠️  Balance Violations (%d):\n", len(outcome.BalanceViolations))
				for _, v := range outcome.BalanceViolations {
					fmt.Printf("  • %s (%+.1fh)\n", v, v.Deviation())
				}
				fmt.Println()
			}
			if len(outcome.RuleViolations) > 0 {
				fmt.Printf("⚠️  Rule Violations (%d):\n", len(outcome.RuleViolations))
				for _, v := range outcome.RuleViolations {
					fmt.Printf("  • %s %s: %s\n", result.Dates[v.Day.Ordinal()].Format("2006-01-02"), v.RuleName, v.Description)
				}
				fmt.Println()
			}

			renderGrid(os.Stdout, result.Dates, rowsFromOutcome(outcome), !noColor)

			switch {
			case dryRun:
				fmt.Println("💡 This was a dry run. Use without --dry-run to save the schedule.")
			case result.Saved:
				fmt.Println("✅ Schedule has been saved to the database.")
			default:
				fmt.Println("💡 Use --force-commit to save this schedule despite the diagnostics.")
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().Bool("force-commit", false, "Save the schedule even if it has shortfalls or violations")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}
