package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-rota/pkg/core/allocator"
	"github.com/jakechorley/shift-rota/pkg/core/services"
	"github.com/jakechorley/shift-rota/pkg/db"
)

func TestCellCode(t *testing.T) {
	tests := []struct {
		name     string
		rest     bool
		label    int
		reason   string
		expected string
	}{
		{"first shift", false, 0, "", "S1"},
		{"third shift", false, 2, "", "S3"},
		{"balanced rest", true, allocator.NoLabel, "balanced", "-"},
		{"closed", true, allocator.NoLabel, "closed", "x"},
		{"sunday cap", true, allocator.NoLabel, "sunday_cap", "R!"},
		{"shift change", true, allocator.NoLabel, "shift_change", "C!"},
		{"unknown reason", true, allocator.NoLabel, "", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cellCode(tt.rest, tt.label, tt.reason))
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "12", formatHours(12))
	assert.Equal(t, "0", formatHours(0))
	assert.Equal(t, "7.5", formatHours(7.5))
}

func TestRowsFromOutcome(t *testing.T) {
	outcome, err := allocator.Allocate(allocator.AllocationConfig{
		OperatorCount:      4,
		ShiftsPerDay:       2,
		RequiredPerShift:   1,
		Hours:              allocator.FixedHours(8),
		TargetWeeklyHours:  28,
		BalanceTolerance:   100,
		CycleWeeks:         1,
		DaysToCoverPerWeek: 7,
	})
	require.NoError(t, err)

	rows := rowsFromOutcome(outcome)
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Len(t, row.Cells, 7)
		assert.Len(t, row.PerWeek, 1)
		assert.False(t, row.Outside)
	}
	assert.Equal(t, "Operator 1", rows[0].OperatorID)
}

func TestRenderGrid_PlainText(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}

	view := &services.ScheduleView{
		Cycle: &db.Cycle{ID: "c1", Start: "2025-01-06", Weeks: 1},
		Dates: dates,
		Operators: []services.OperatorScheduleView{
			{
				OperatorID: "Ana",
				Cells: []db.Assignment{
					{Label: 0, Hours: 12}, {Label: 0, Hours: 12}, {IsRest: true, Label: -1, RestReason: "balanced"},
					{Label: 0, Hours: 12}, {Label: 0, Hours: 12},
					{IsRest: true, Label: -1, RestReason: "closed"}, {IsRest: true, Label: -1, RestReason: "closed"},
				},
				PerWeekHours: []float64{48},
				TotalHours:   48,
			},
		},
		Diagnostics: []db.Diagnostic{
			{Kind: db.DiagnosticBalanceViolation, OperatorID: "Ana", Description: "Ana worked 48.0h"},
		},
	}

	var buf bytes.Buffer
	renderGrid(&buf, view.Dates, rowsFromView(view), false)
	out := buf.String()

	assert.Contains(t, out, "Week 1 (Mon Jan 06)")
	assert.Contains(t, out, "Mon   Tue   Wed")
	assert.Contains(t, out, "S1    S1    -     S1    S1    x     x")
	assert.Contains(t, out, "48 (outside tolerance)")
	assert.NotContains(t, out, "\033[")

	buf.Reset()
	printDiagnostics(&buf, view.Diagnostics)
	assert.True(t, strings.Contains(buf.String(), "[balance_violation] Ana worked 48.0h"))
}

func TestPrintDiagnostics_Empty(t *testing.T) {
	var buf bytes.Buffer
	printDiagnostics(&buf, nil)
	assert.Empty(t, buf.String())
}
