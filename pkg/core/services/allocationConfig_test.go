package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/core/allocator"
	"github.com/jakechorley/shift-rota/pkg/db"
)

func cycleDates(t *testing.T, start string, weeks int) []time.Time {
	t.Helper()
	dates, err := db.Cycle{ID: "test", Start: start, Weeks: weeks}.Dates()
	require.NoError(t, err)
	return dates
}

func TestConvertDayOverrides_WeekendsClosed(t *testing.T) {
	overrides := []config.DayOverride{
		{RRule: "FREQ=WEEKLY;BYDAY=SA,SU", Closed: true},
	}

	converted, err := convertDayOverrides(overrides, cycleDates(t, "2025-01-06", 2), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, converted, 1)

	override := converted[0]
	assert.True(t, override.Closed)
	assert.Nil(t, override.RequiredPerShift)

	for week := 0; week < 2; week++ {
		for weekday := 0; weekday < 7; weekday++ {
			day := allocator.Day{Week: week, Weekday: weekday}
			expected := weekday >= 5
			assert.Equal(t, expected, override.AppliesTo(day), "day %s", day)
		}
	}
}

func TestConvertDayOverrides_SpecificDateAcrossYearBoundary(t *testing.T) {
	required := 2
	overrides := []config.DayOverride{
		{RRule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1", RequiredPerShift: &required},
	}

	// Mon 2025-12-29 to Sun 2026-01-11
	converted, err := convertDayOverrides(overrides, cycleDates(t, "2025-12-29", 2), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, converted, 1)

	override := converted[0]
	require.NotNil(t, override.RequiredPerShift)
	assert.Equal(t, 2, *override.RequiredPerShift)

	// 2026-01-01 is the Thursday of week 1
	assert.True(t, override.AppliesTo(allocator.Day{Week: 0, Weekday: 3}))
	assert.False(t, override.AppliesTo(allocator.Day{Week: 0, Weekday: 2}))
	assert.False(t, override.AppliesTo(allocator.Day{Week: 1, Weekday: 3}))
}

func TestConvertDayOverrides_NoMatchesInCycle(t *testing.T) {
	overrides := []config.DayOverride{
		{RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25", Closed: true},
	}

	converted, err := convertDayOverrides(overrides, cycleDates(t, "2025-03-03", 4), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, converted, 1)

	for ordinal := 0; ordinal < 28; ordinal++ {
		assert.False(t, converted[0].AppliesTo(allocator.DayFromOrdinal(ordinal)))
	}
}

func TestConvertDayOverrides_InvalidRRule(t *testing.T) {
	overrides := []config.DayOverride{
		{RRule: "FREQ=WEEKLY;BYDAY=SU"},
		{RRule: "FREQ=SOMETIMES"},
	}

	_, err := convertDayOverrides(overrides, cycleDates(t, "2025-01-06", 1), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dayOverrides[1]")
}

func TestConvertDayOverrides_Empty(t *testing.T) {
	converted, err := convertDayOverrides(nil, cycleDates(t, "2025-01-06", 1), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, converted)
}

func TestBuildRestRules(t *testing.T) {
	t.Run("defaults enable both rules", func(t *testing.T) {
		rules := buildRestRules(config.RulesConfig{})
		require.Len(t, rules, 2)
		assert.Equal(t, "SundayCap", rules[0].Name())

		sundayCap, ok := rules[0].(*allocator.SundayCapRule)
		require.True(t, ok)
		assert.Equal(t, allocator.DefaultMaxConsecutiveSundays, sundayCap.Max())
	})

	t.Run("custom sunday limit", func(t *testing.T) {
		rules := buildRestRules(config.RulesConfig{MaxConsecutiveSundays: 3, DisableShiftChangeRest: true})
		require.Len(t, rules, 1)
		assert.Equal(t, 3, rules[0].(*allocator.SundayCapRule).Max())
	})

	t.Run("all disabled is empty but not nil", func(t *testing.T) {
		rules := buildRestRules(config.RulesConfig{DisableSundayCap: true, DisableShiftChangeRest: true})
		assert.NotNil(t, rules)
		assert.Empty(t, rules)
	})
}

func TestBuildAllocationConfig_MapsFields(t *testing.T) {
	cfg := testConfig()
	cfg.Roster.Operators = []string{"Ana", "Ben"}
	cfg.Roster.OperatorCount = 0
	cfg.Shifts.HoursPerShift = []float64{8, 10}

	allocConfig, err := buildAllocationConfig(cfg, 4, cycleDates(t, "2025-01-06", 4), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"Ana", "Ben"}, allocConfig.OperatorNames)
	assert.Equal(t, 2, allocConfig.ShiftsPerDay)
	assert.Equal(t, 4, allocConfig.RequiredPerShift)
	assert.Equal(t, 4, allocConfig.CycleWeeks)
	assert.Equal(t, 56.0, allocConfig.TargetWeeklyHours)
	assert.Equal(t, 24.0, allocConfig.BalanceTolerance)
	assert.Equal(t, 7, allocConfig.DaysToCoverPerWeek)
	assert.Equal(t, 10.0, allocConfig.Hours.HoursFor(1, 0))
	assert.Len(t, allocConfig.Rules, 1)
}
