package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jakechorley/shift-rota/pkg/core/allocator"
	"github.com/jakechorley/shift-rota/pkg/core/services"
	"github.com/jakechorley/shift-rota/pkg/db"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
)

// gridRow is one operator's line in the printed grid
type gridRow struct {
	OperatorID string
	Cells      []string // one short code per day
	PerWeek    []float64
	Total      float64
	Outside    bool
}

// cellCode returns the short code printed for a cell
func cellCode(rest bool, label int, reason string) string {
	if !rest {
		return fmt.Sprintf("S%d", label+1)
	}

	switch allocator.RestReason(reason) {
	case allocator.RestClosed:
		return "x"
	case allocator.RestSundayCap:
		return "R!"
	case allocator.RestShiftChange:
		return "C!"
	default:
		return "-"
	}
}

// rowsFromOutcome builds grid rows from a fresh allocation
func rowsFromOutcome(outcome *allocator.AllocationOutcome) []gridRow {
	rows := make([]gridRow, 0, len(outcome.Summaries))
	for _, summary := range outcome.Summaries {
		cells := outcome.Schedule.Cells[summary.OperatorIndex]
		codes := make([]string, len(cells))
		for i, cell := range cells {
			codes[i] = cellCode(cell.Rest, cell.Label, string(cell.Reason))
		}
		rows = append(rows, gridRow{
			OperatorID: summary.OperatorID,
			Cells:      codes,
			PerWeek:    summary.PerWeekHours,
			Total:      summary.TotalHours,
			Outside:    summary.BalanceViolation,
		})
	}
	return rows
}

// rowsFromView builds grid rows from a committed schedule
func rowsFromView(view *services.ScheduleView) []gridRow {
	outside := make(map[string]bool)
	for _, d := range view.Diagnostics {
		if d.Kind == db.DiagnosticBalanceViolation {
			outside[d.OperatorID] = true
		}
	}

	rows := make([]gridRow, 0, len(view.Operators))
	for _, op := range view.Operators {
		codes := make([]string, len(op.Cells))
		for i, cell := range op.Cells {
			codes[i] = cellCode(cell.IsRest, cell.Label, cell.RestReason)
		}
		rows = append(rows, gridRow{
			OperatorID: op.OperatorID,
			Cells:      codes,
			PerWeek:    op.PerWeekHours,
			Total:      op.TotalHours,
			Outside:    outside[op.OperatorID],
		})
	}
	return rows
}

// renderGrid prints one block per week with a column per weekday, followed by
// each operator's weekly and total hours
func renderGrid(w io.Writer, dates []time.Time, rows []gridRow, color bool) {
	paint := func(code, text string) string {
		if !color {
			return text
		}
		return code + text + colorReset
	}

	nameColWidth := 12
	for _, row := range rows {
		if len(row.OperatorID)+2 > nameColWidth {
			nameColWidth = len(row.OperatorID) + 2
		}
	}
	const dayColWidth = 6

	weeks := len(dates) / 7
	for week := 0; week < weeks; week++ {
		fmt.Fprintf(w, "%s\n", paint(colorBold, fmt.Sprintf("Week %d (%s)", week+1, dates[week*7].Format("Mon Jan 02"))))

		fmt.Fprintf(w, "%-*s", nameColWidth, "Operator")
		for day := 0; day < 7; day++ {
			fmt.Fprintf(w, "%-*s", dayColWidth, dates[week*7+day].Format("Mon"))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Repeat("-", nameColWidth+7*dayColWidth))

		for _, row := range rows {
			fmt.Fprintf(w, "%-*s", nameColWidth, row.OperatorID)
			for day := 0; day < 7; day++ {
				code := row.Cells[week*7+day]
				padded := fmt.Sprintf("%-*s", dayColWidth, code)
				switch {
				case strings.HasSuffix(code, "!"):
					padded = paint(colorYellow, padded)
				case code == "-" || code == "x":
					padded = paint(colorDim, padded)
				}
				fmt.Fprint(w, padded)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s\n", paint(colorBold, "Hours"))
	fmt.Fprintf(w, "%-*s", nameColWidth, "Operator")
	for week := 0; week < weeks; week++ {
		fmt.Fprintf(w, "%-8s", fmt.Sprintf("W%d", week+1))
	}
	fmt.Fprintln(w, "Total")
	for _, row := range rows {
		fmt.Fprintf(w, "%-*s", nameColWidth, row.OperatorID)
		for _, hours := range row.PerWeek {
			fmt.Fprintf(w, "%-8s", formatHours(hours))
		}
		total := formatHours(row.Total)
		if row.Outside {
			total = paint(colorRed, total+" (outside tolerance)")
		} else {
			total = paint(colorGreen, total)
		}
		fmt.Fprintln(w, total)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Legend: S<n> = shift n, - = rest, x = closed, R! = Sunday cap rest, C! = shift change rest")
}

// formatHours drops the decimal for whole hours
func formatHours(hours float64) string {
	if hours == float64(int64(hours)) {
		return fmt.Sprintf("%d", int64(hours))
	}
	return fmt.Sprintf("%.1f", hours)
}

// printDiagnostics lists persisted diagnostics grouped by kind
func printDiagnostics(w io.Writer, diagnostics []db.Diagnostic) {
	if len(diagnostics) == 0 {
		return
	}

	fmt.Fprintf(w, "⚠️  Diagnostics (%d):\n", len(diagnostics))
	for _, kind := range []string{db.DiagnosticCoverageShortfall, db.DiagnosticBalanceViolation, db.DiagnosticRuleViolation} {
		for _, d := range diagnostics {
			if d.Kind != kind {
				continue
			}
			if d.ShiftDate != "" {
				fmt.Fprintf(w, "  • [%s] %s: %s\n", d.Kind, d.ShiftDate, d.Description)
			} else {
				fmt.Fprintf(w, "  • [%s] %s\n", d.Kind, d.Description)
			}
		}
	}
	fmt.Fprintln(w)
}
