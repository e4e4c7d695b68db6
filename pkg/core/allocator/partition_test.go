package allocator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupSizes(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		g        int
		expected []int
	}{
		{name: "even split", n: 12, g: 2, expected: []int{6, 6}},
		{name: "uneven split of three", n: 5, g: 3, expected: []int{2, 2, 1}},
		{name: "remainder of two", n: 14, g: 4, expected: []int{4, 4, 3, 3}},
		{name: "one each", n: 3, g: 3, expected: []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GroupSizes(tt.n, tt.g))
		})
	}
}

func TestPartitionRoster_BlockPartition(t *testing.T) {
	roster, err := InitRoster(InitRosterInput{OperatorCount: 7})
	require.NoError(t, err)

	groups, err := PartitionRoster(roster, 3, 2)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	// Contiguous index ranges: [0,1,2] [3,4] [5,6]
	expected := [][]int{{0, 1, 2}, {3, 4}, {5, 6}}
	for g, group := range groups {
		assert.Equal(t, g, group.Index)
		indices := make([]int, 0, group.Size())
		for pos, member := range group.Members {
			indices = append(indices, member.Index)
			assert.Equal(t, g, member.GroupIndex)
			assert.Equal(t, pos, member.Position)
		}
		assert.Equal(t, expected[g], indices)
	}
}

func TestPartitionRoster_EveryOperatorInExactlyOneGroup(t *testing.T) {
	roster, err := InitRoster(InitRosterInput{OperatorCount: 23})
	require.NoError(t, err)

	groups, err := PartitionRoster(roster, 4, 5)
	require.NoError(t, err)

	seen := make(map[int]int)
	for _, group := range groups {
		for _, member := range group.Members {
			seen[member.Index]++
		}
	}

	assert.Len(t, seen, 23)
	for index, count := range seen {
		assert.Equal(t, 1, count, "operator %d should be in exactly one group", index)
	}
}

func TestPartitionRoster_RosterTooSmall(t *testing.T) {
	roster, err := InitRoster(InitRosterInput{OperatorCount: 5})
	require.NoError(t, err)

	_, err = PartitionRoster(roster, 3, 2)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "operatorCount", cfgErr.Field)
}

func TestPartitionRoster_InvalidShiftsPerDay(t *testing.T) {
	roster, err := InitRoster(InitRosterInput{OperatorCount: 10})
	require.NoError(t, err)

	for _, shifts := range []int{0, 1, 5} {
		_, err := PartitionRoster(roster, shifts, 1)
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr), "shiftsPerDay=%d should be rejected", shifts)
		assert.Equal(t, "shiftsPerDay", cfgErr.Field)
	}
}

func TestInitRoster_Names(t *testing.T) {
	roster, err := InitRoster(InitRosterInput{OperatorNames: []string{"Ana", " Luis ", "Marta"}})
	require.NoError(t, err)
	require.Equal(t, 3, roster.Size())

	assert.Equal(t, "Ana", roster.Operators[0].ID())
	assert.Equal(t, "Luis", roster.Operators[1].ID())
	for _, op := range roster.Operators {
		assert.Equal(t, NoLabel, op.LastShiftLabel)
		assert.Equal(t, -1, op.LastWorkedDay)
		assert.Zero(t, op.CumulativeHours)
	}
}

func TestInitRoster_DefaultNames(t *testing.T) {
	roster, err := InitRoster(InitRosterInput{OperatorCount: 2})
	require.NoError(t, err)

	assert.Equal(t, "Operator 1", roster.Operators[0].ID())
	assert.Equal(t, "Operator 2", roster.Operators[1].ID())
}

func TestInitRoster_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input InitRosterInput
	}{
		{name: "empty", input: InitRosterInput{}},
		{name: "count mismatch", input: InitRosterInput{OperatorCount: 3, OperatorNames: []string{"a", "b"}}},
		{name: "duplicate", input: InitRosterInput{OperatorNames: []string{"a", "a"}}},
		{name: "blank name", input: InitRosterInput{OperatorNames: []string{"a", " "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitRoster(tt.input)
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestInitDayPlans_ClosedWeekdays(t *testing.T) {
	plans, err := InitDayPlans(InitDayPlansInput{
		CycleWeeks:         2,
		DaysToCoverPerWeek: 5,
		RequiredPerShift:   2,
		SmallestGroup:      3,
	})
	require.NoError(t, err)
	require.Len(t, plans, 14)

	for _, plan := range plans {
		assert.Equal(t, plan.Day.Weekday >= 5, plan.Closed, "day %s", plan.Day)
		assert.Equal(t, 2, plan.Required)
	}
}

func TestInitDayPlans_Overrides(t *testing.T) {
	one := 1
	three := 3
	plans, err := InitDayPlans(InitDayPlansInput{
		CycleWeeks:         1,
		DaysToCoverPerWeek: 7,
		RequiredPerShift:   2,
		SmallestGroup:      3,
		Overrides: []DayOverride{
			{AppliesTo: func(d Day) bool { return d.Weekday == 2 }, RequiredPerShift: &one},
			{AppliesTo: func(d Day) bool { return d.Weekday == 2 || d.Weekday == 3 }, RequiredPerShift: &three},
			{AppliesTo: func(d Day) bool { return d.Weekday == 4 }, Closed: true},
		},
	})
	require.NoError(t, err)

	// Later overrides win
	assert.Equal(t, 3, plans[2].Required)
	assert.Equal(t, 3, plans[3].Required)
	assert.True(t, plans[4].Closed)
	assert.False(t, plans[5].Closed)
}

func TestInitDayPlans_RequiredLargerThanGroup(t *testing.T) {
	four := 4
	_, err := InitDayPlans(InitDayPlansInput{
		CycleWeeks:         1,
		DaysToCoverPerWeek: 7,
		RequiredPerShift:   2,
		SmallestGroup:      3,
		Overrides: []DayOverride{
			{AppliesTo: func(d Day) bool { return d.IsSunday() }, RequiredPerShift: &four},
		},
	})

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "requiredPerShift", cfgErr.Field)
}
