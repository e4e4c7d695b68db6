package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/core/allocator"
	"github.com/jakechorley/shift-rota/pkg/db"
)

// buildAllocationConfig maps the application config onto an allocator run for a
// cycle of the given dates
func buildAllocationConfig(cfg *config.Config, weeks int, dates []time.Time, logger *zap.Logger) (allocator.AllocationConfig, error) {
	overrides, err := convertDayOverrides(cfg.DayOverrides, dates, logger)
	if err != nil {
		return allocator.AllocationConfig{}, fmt.Errorf("failed to convert day overrides: %w", err)
	}

	return allocator.AllocationConfig{
		OperatorNames:     cfg.Roster.Operators,
		OperatorCount:     cfg.Roster.OperatorCount,
		RequiredOperators: cfg.Roster.RequiredOperators,
		ShiftsPerDay:      cfg.Shifts.ShiftsPerDay,
		RequiredPerShift:  cfg.Shifts.RequiredPerShift,
		Hours: allocator.HoursTable{
			Default:     cfg.Shifts.DefaultHours,
			PerLabel:    cfg.Shifts.HoursPerShift,
			WeekPattern: cfg.Shifts.WeekHours,
		},
		TargetWeeklyHours:  cfg.TargetWeeklyHours,
		BalanceTolerance:   cfg.BalanceTolerance,
		CycleWeeks:         weeks,
		DaysToCoverPerWeek: cfg.Shifts.DaysToCoverPerWeek,
		Overrides:          overrides,
		Rules:              buildRestRules(cfg.Rules),
		Logger:             logger,
	}, nil
}

// buildRestRules returns the enabled rules. The result is never nil so that
// disabling every rule is not mistaken for "use the defaults".
func buildRestRules(rules config.RulesConfig) []allocator.RestRule {
	enabled := []allocator.RestRule{}
	if !rules.DisableSundayCap {
		enabled = append(enabled, allocator.NewSundayCapRule(rules.MaxConsecutiveSundays))
	}
	if !rules.DisableShiftChangeRest {
		enabled = append(enabled, allocator.NewShiftChangeRestRule())
	}
	return enabled
}

// convertDayOverrides expands each override's rrule over the cycle and returns
// allocator overrides matching the resulting day ordinals
func convertDayOverrides(overrides []config.DayOverride, dates []time.Time, logger *zap.Logger) ([]allocator.DayOverride, error) {
	if len(overrides) == 0 || len(dates) == 0 {
		return nil, nil
	}

	ordinalByDate := make(map[string]int, len(dates))
	for i, date := range dates {
		ordinalByDate[date.Format(db.DateLayout)] = i
	}

	searchStart := dates[0]
	searchEnd := dates[len(dates)-1]

	result := make([]allocator.DayOverride, 0, len(overrides))
	for i, override := range overrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in dayOverrides[%d]: %w", i, err)
		}
		rule.DTStart(searchStart)

		matched := make(map[int]bool)
		for _, occurrence := range rule.Between(searchStart, searchEnd, true) {
			if ordinal, ok := ordinalByDate[occurrence.Format(db.DateLayout)]; ok {
				matched[ordinal] = true
			}
		}

		logger.Debug("Resolved day override",
			zap.Int("index", i),
			zap.String("rrule", override.RRule),
			zap.Int("matched_days", len(matched)))

		result = append(result, allocator.DayOverride{
			AppliesTo: func(day allocator.Day) bool {
				return matched[day.Ordinal()]
			},
			RequiredPerShift: override.RequiredPerShift,
			Closed:           override.Closed,
		})
	}

	return result, nil
}
