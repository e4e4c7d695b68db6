package db

import (
	"fmt"
	"sort"
	"time"
)

// StartDate parses the cycle's start date
func (c Cycle) StartDate() (time.Time, error) {
	start, err := time.Parse(DateLayout, c.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date for cycle %s: %w", c.ID, err)
	}
	return start, nil
}

// EndDate returns the last day covered by the cycle (a Sunday)
func (c Cycle) EndDate() (time.Time, error) {
	start, err := c.StartDate()
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, 7*c.Weeks-1), nil
}

// Dates returns every date in the cycle in order, indexed by day ordinal
func (c Cycle) Dates() ([]time.Time, error) {
	start, err := c.StartDate()
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 7*c.Weeks)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates, nil
}

// IsGenerated reports whether a schedule has been committed for the cycle
func (c Cycle) IsGenerated() bool {
	return c.GeneratedDatetime != ""
}

// SortAssignments orders assignments by operator, then chronologically
func SortAssignments(assignments []Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.OperatorIndex != b.OperatorIndex {
			return a.OperatorIndex < b.OperatorIndex
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return a.Weekday < b.Weekday
	})
}
