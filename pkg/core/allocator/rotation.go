package allocator

// RotationPolicy decides which shift label each group works in a given week.
// Every group advances one label per week, so over G consecutive weeks every
// group works every label exactly once.
type RotationPolicy struct {
	ShiftsPerDay int
}

// LabelFor returns the shift label the group works in the given week
func (p RotationPolicy) LabelFor(groupIndex, week int) int {
	return (groupIndex + week) % p.ShiftsPerDay
}

// HoursLookup resolves the duration of a shift label in a given week
type HoursLookup interface {
	HoursFor(label, week int) float64
}

// HoursFunc adapts a plain function to HoursLookup
type HoursFunc func(label, week int) float64

// HoursFor calls f(label, week)
func (f HoursFunc) HoursFor(label, week int) float64 {
	return f(label, week)
}

// HoursTable is the standard HoursLookup.
//
// Resolution order:
//   - WeekPattern, if set: hours for week w are WeekPattern[w mod len] (mixed configurations,
//     e.g. 12h weeks alternating with 8h weeks)
//   - PerLabel, if label is in range
//   - Default
type HoursTable struct {
	Default     float64
	PerLabel    []float64
	WeekPattern []float64
}

// FixedHours returns a table where every shift lasts the same number of hours
func FixedHours(hours float64) HoursTable {
	return HoursTable{Default: hours}
}

// HoursFor implements HoursLookup
func (t HoursTable) HoursFor(label, week int) float64 {
	if len(t.WeekPattern) > 0 {
		return t.WeekPattern[week%len(t.WeekPattern)]
	}
	if label >= 0 && label < len(t.PerLabel) {
		return t.PerLabel[label]
	}
	return t.Default
}
