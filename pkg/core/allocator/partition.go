package allocator

// PartitionRoster splits the roster into one group per shift slot using a block
// partition over contiguous index ranges. Group sizes are floor(N/G), and the
// first N mod G groups get one extra member.
//
// Every operator's GroupIndex and Position are set as a side effect.
//
// Returns a ConfigurationError if shiftsPerDay is not 2, 3 or 4, or if the
// roster is too small to staff every group with requiredPerShift operators.
func PartitionRoster(roster *Roster, shiftsPerDay int, requiredPerShift int) ([]*ShiftGroup, error) {
	if shiftsPerDay < 2 || shiftsPerDay > 4 {
		return nil, configErrorf("shiftsPerDay", "must be 2, 3 or 4, got %d", shiftsPerDay)
	}
	if requiredPerShift < 1 {
		return nil, configErrorf("requiredPerShift", "must be at least 1, got %d", requiredPerShift)
	}

	n := roster.Size()
	if n < shiftsPerDay*requiredPerShift {
		return nil, configErrorf("operatorCount", "%d operators cannot cover %d shifts of %d operators",
			n, shiftsPerDay, requiredPerShift)
	}

	sizes := GroupSizes(n, shiftsPerDay)
	groups := make([]*ShiftGroup, shiftsPerDay)

	next := 0
	for g, size := range sizes {
		members := make([]*Operator, size)
		for pos := 0; pos < size; pos++ {
			op := roster.Operators[next]
			op.GroupIndex = g
			op.Position = pos
			members[pos] = op
			next++
		}
		groups[g] = &ShiftGroup{Index: g, Members: members}
	}

	return groups, nil
}

// GroupSizes returns the size of each of g groups for n operators
func GroupSizes(n, g int) []int {
	sizes := make([]int, g)
	for i := range sizes {
		sizes[i] = n / g
		if i < n%g {
			sizes[i]++
		}
	}
	return sizes
}
