package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/shift-rota/pkg/db"
)

// findLatestCycle finds the cycle with the most recent start date
func findLatestCycle(cycles []db.Cycle) *db.Cycle {
	if len(cycles) == 0 {
		return nil
	}

	latest := &cycles[0]
	latestDate, err := time.Parse(db.DateLayout, latest.Start)
	if err != nil {
		return latest
	}

	for i := 1; i < len(cycles); i++ {
		currentDate, err := time.Parse(db.DateLayout, cycles[i].Start)
		if err != nil {
			continue
		}

		if currentDate.After(latestDate) {
			latest = &cycles[i]
			latestDate = currentDate
		}
	}

	return latest
}

// resolveCycle returns the cycle with the given id, or the latest cycle if id is empty
func resolveCycle(cycles []db.Cycle, cycleID string) (*db.Cycle, error) {
	if len(cycles) == 0 {
		return nil, fmt.Errorf("no cycles found - please define a cycle first")
	}

	if cycleID == "" {
		return findLatestCycle(cycles), nil
	}

	for i := range cycles {
		if cycles[i].ID == cycleID {
			return &cycles[i], nil
		}
	}

	return nil, fmt.Errorf("cycle not found: %s", cycleID)
}

// sortCyclesByStart orders cycles chronologically; unparseable dates sort last
func sortCyclesByStart(cycles []db.Cycle) {
	sort.SliceStable(cycles, func(i, j int) bool {
		a, errA := time.Parse(db.DateLayout, cycles[i].Start)
		b, errB := time.Parse(db.DateLayout, cycles[j].Start)
		if errA != nil || errB != nil {
			return errA == nil
		}
		return a.Before(b)
	})
}

// startOfDay normalises a time to midnight UTC on the same calendar date
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// nextMonday returns the next Monday strictly after the given date
func nextMonday(from time.Time) time.Time {
	normalized := startOfDay(from)

	// Monday is 1; if already Monday use the following one
	daysUntilMonday := (8 - int(normalized.Weekday())) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}

	return normalized.AddDate(0, 0, daysUntilMonday)
}

// nextMondayOnOrAfter returns the first Monday on or after the given date
func nextMondayOnOrAfter(from time.Time) time.Time {
	normalized := startOfDay(from)
	daysUntilMonday := (8 - int(normalized.Weekday())) % 7
	return normalized.AddDate(0, 0, daysUntilMonday)
}
