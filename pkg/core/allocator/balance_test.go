package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func operatorsWithHours(hours ...float64) []*Operator {
	ops := make([]*Operator, len(hours))
	for i, h := range hours {
		ops[i] = &Operator{Index: i, Position: i, CumulativeHours: h, LastShiftLabel: NoLabel, LastWorkedDay: -1}
	}
	return ops
}

func positions(ops []*Operator) []int {
	result := make([]int, len(ops))
	for i, op := range ops {
		result[i] = op.Position
	}
	return result
}

func TestTargetSoFar(t *testing.T) {
	assert.InDelta(t, 6.0, TargetSoFar(42, 0), 1e-9)
	assert.InDelta(t, 42.0, TargetSoFar(42, 6), 1e-9)
	assert.InDelta(t, 84.0, TargetSoFar(42, 13), 1e-9)
}

func TestRankCandidates_LowestHoursFirst(t *testing.T) {
	ops := operatorsWithHours(24, 0, 12, 36)

	ranked := RankCandidates(ops, 0, 4, 20)

	assert.Equal(t, []int{1, 2, 0, 3}, positions(ranked))
}

func TestRankCandidates_BelowTargetBeforeAtOrAbove(t *testing.T) {
	ops := operatorsWithHours(12, 12, 12)

	// Exactly on target counts as at-or-above
	ranked := RankCandidates(ops, 0, 3, 12)
	assert.Equal(t, []int{0, 1, 2}, positions(ranked))

	ops[2].CumulativeHours = 11
	ranked = RankCandidates(ops, 0, 3, 12)
	assert.Equal(t, 2, ranked[0].Position)
}

func TestRankCandidates_TiebreakRotatesWithDay(t *testing.T) {
	ops := operatorsWithHours(0, 0, 0, 0)

	// Key is (position + ordinal) mod size
	assert.Equal(t, []int{0, 1, 2, 3}, positions(RankCandidates(ops, 0, 4, 10)))
	assert.Equal(t, []int{3, 0, 1, 2}, positions(RankCandidates(ops, 1, 4, 10)))
	assert.Equal(t, []int{2, 3, 0, 1}, positions(RankCandidates(ops, 2, 4, 10)))
}

func TestRankCandidates_Empty(t *testing.T) {
	assert.Empty(t, RankCandidates(nil, 3, 4, 10))
}

func TestRankCandidates_DoesNotReorderInput(t *testing.T) {
	ops := operatorsWithHours(30, 10, 20)

	RankCandidates(ops, 0, 3, 100)

	assert.Equal(t, []int{0, 1, 2}, positions(ops))
}
