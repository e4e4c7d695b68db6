package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-rota/pkg/core/services"
)

// ListCyclesCmd creates the listCycles command
func ListCyclesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listCycles",
		Short: "List all defined cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cycles, err := services.ListCycles(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if len(cycles) == 0 {
				fmt.Println("No cycles defined yet - run defineCycle first.")
				return nil
			}

			fmt.Printf("\nFound %d cycles:\n\n", len(cycles))
			fmt.Printf("%s%-38s  %-12s  %-12s  %-5s  %s%s\n", colorBold, "ID", "Start", "End", "Weeks", "Schedule", colorReset)
			fmt.Println(strings.Repeat("-", 38+2+12+2+12+2+5+2+20))

			for _, cycle := range cycles {
				end := "?"
				if endDate, err := cycle.EndDate(); err == nil {
					end = endDate.Format("2006-01-02")
				}

				status := fmt.Sprintf("%snot generated%s", colorDim, colorReset)
				if cycle.IsGenerated() {
					status = fmt.Sprintf("%sgenerated %s%s", colorGreen, cycle.GeneratedDatetime, colorReset)
				}

				fmt.Printf("%-38s  %-12s  %-12s  %-5d  %s\n", cycle.ID, cycle.Start, end, cycle.Weeks, status)
			}
			fmt.Println()

			return nil
		},
	}
}
