package sheetsclient

import (
	"fmt"
	"strings"
	"time"
)

const dateFormat = "Mon Jan 02 2006"

var weekdayHeaders = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// PublishedScheduleRow lists who works one shift label for every day of one week
type PublishedScheduleRow struct {
	Week      int    // 1-based
	WeekStart string // Format: "Mon Jan 02 2006"
	Shift     int    // 1-based
	Operators [7][]string
	Closed    [7]bool
}

// PublishedHoursRow is one operator's hours over the cycle
type PublishedHoursRow struct {
	OperatorID       string
	PerWeek          []float64
	Total            float64
	OutsideTolerance bool
}

// PublishedSchedule is the complete data written to one tab
type PublishedSchedule struct {
	StartDate string // Format: "2006-01-02"
	Weeks     int
	Rows      []PublishedScheduleRow
	Hours     []PublishedHoursRow
}

// PublishSchedule writes a schedule to its own tab, titled with the cycle's date
// range. An existing tab with the same title is cleared and rewritten.
func (c *Client) PublishSchedule(spreadsheetID string, published *PublishedSchedule) error {
	tabTitle, err := generateTabTitle(published.StartDate, published.Weeks)
	if err != nil {
		return fmt.Errorf("failed to generate tab title: %w", err)
	}

	existing, err := c.findSheet(spreadsheetID, tabTitle)
	if err != nil {
		return err
	}

	if existing == nil {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	} else if err := c.ClearSheet(spreadsheetID, tabTitle); err != nil {
		return fmt.Errorf("failed to clear existing tab: %w", err)
	}

	if err := c.WriteValues(spreadsheetID, tabTitle, buildScheduleValues(published)); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}

	return nil
}

// generateTabTitle creates a tab title in the format "Mon Jan 06 2025 - Sun Feb 02 2025"
func generateTabTitle(startDate string, weeks int) (string, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return "", fmt.Errorf("invalid start date: %w", err)
	}
	if weeks < 1 {
		return "", fmt.Errorf("cycle must have at least one week, got %d", weeks)
	}

	end := start.AddDate(0, 0, 7*weeks-1)

	return fmt.Sprintf("%s - %s", start.Format(dateFormat), end.Format(dateFormat)), nil
}

// buildScheduleValues lays out the grid section, a blank row, then the hours section
func buildScheduleValues(published *PublishedSchedule) [][]interface{} {
	header := []interface{}{"Week", "Week starting", "Shift"}
	for _, day := range weekdayHeaders {
		header = append(header, day)
	}

	values := [][]interface{}{header}
	for _, row := range published.Rows {
		sheetRow := []interface{}{row.Week, row.WeekStart, fmt.Sprintf("Shift %d", row.Shift)}
		for day := range weekdayHeaders {
			if row.Closed[day] {
				sheetRow = append(sheetRow, "Closed")
				continue
			}
			sheetRow = append(sheetRow, strings.Join(row.Operators[day], ", "))
		}
		values = append(values, sheetRow)
	}

	values = append(values, []interface{}{})

	hoursHeader := []interface{}{"Operator"}
	for week := 1; week <= published.Weeks; week++ {
		hoursHeader = append(hoursHeader, fmt.Sprintf("Week %d", week))
	}
	hoursHeader = append(hoursHeader, "Total", "Balance")
	values = append(values, hoursHeader)

	for _, hours := range published.Hours {
		sheetRow := []interface{}{hours.OperatorID}
		for week := 0; week < published.Weeks; week++ {
			value := 0.0
			if week < len(hours.PerWeek) {
				value = hours.PerWeek[week]
			}
			sheetRow = append(sheetRow, value)
		}

		balance := "OK"
		if hours.OutsideTolerance {
			balance = "Outside tolerance"
		}
		sheetRow = append(sheetRow, hours.Total, balance)
		values = append(values, sheetRow)
	}

	return values
}
