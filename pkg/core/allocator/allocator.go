package allocator

import (
	"go.uber.org/zap"
)

// Allocator assembles a schedule for one cycle. It owns the roster for the
// duration of a single run; nothing survives between runs.
type Allocator struct {
	roster   *Roster
	groups   []*ShiftGroup
	plans    []DayPlan
	schedule *Schedule

	policy            RotationPolicy
	hours             HoursLookup
	rules             []RestRule
	targetWeeklyHours float64
	tolerance         float64
	logger            *zap.Logger

	shortfalls []CoverageShortfall
}

// AllocationConfig contains the configuration for a scheduling run
type AllocationConfig struct {
	// OperatorNames are optional display names; OperatorCount is used when empty
	OperatorNames []string
	OperatorCount int

	// RequiredOperators is the minimum roster size from the staffing calculation (0 to skip the check)
	RequiredOperators int

	// ShiftsPerDay is the number of shift slots per day (2, 3 or 4)
	ShiftsPerDay int

	// RequiredPerShift is the minimum headcount per shift group per day
	RequiredPerShift int

	// Hours resolves the duration of each label per week
	Hours HoursLookup

	// TargetWeeklyHours is the average weekly hours each operator should converge to
	TargetWeeklyHours float64

	// BalanceTolerance is the allowed distance (in hours) from the end-of-cycle target
	BalanceTolerance float64

	// CycleWeeks is the length of the horizon in weeks
	CycleWeeks int

	// DaysToCoverPerWeek is the number of weekdays (from Monday) that need staffing
	DaysToCoverPerWeek int

	// Overrides allow closing days or changing their headcount
	Overrides []DayOverride

	// Rules are the rest rules to enforce. nil means DefaultRules()
	Rules []RestRule

	// Logger is optional
	Logger *zap.Logger
}

// AllocationOutcome represents the result of a scheduling run
type AllocationOutcome struct {
	// Schedule is the complete grid
	Schedule *Schedule

	// Summaries has one entry per operator, in roster order
	Summaries []OperatorSummary

	// Stats describes the spread of total hours
	Stats HourStats

	// Shortfalls lists every day/group staffed below requirement
	Shortfalls []CoverageShortfall

	// BalanceViolations lists operators outside the tolerance band
	BalanceViolations []BalanceViolation

	// RuleViolations contains rest rule breaches found in the final grid
	RuleViolations []RuleViolation

	// Success is true when there are no diagnostics of any kind
	Success bool
}

// Allocate runs a full scheduling cycle.
// Only a *ConfigurationError (or a wrapped one) is returned as an error; coverage
// and balance problems are reported in the outcome.
func Allocate(config AllocationConfig) (*AllocationOutcome, error) {
	allocator, err := InitAllocation(config)
	if err != nil {
		return nil, err
	}

	allocator.logger.Debug("Starting allocation",
		zap.Int("operators", allocator.roster.Size()),
		zap.Int("groups", len(allocator.groups)),
		zap.Int("days", len(allocator.plans)))

	// Days must run in order: every decision depends on the hours accumulated so far
	for _, plan := range allocator.plans {
		for _, group := range allocator.groups {
			if shortfall := allocator.allocateGroupDay(group, plan); shortfall != nil {
				allocator.shortfalls = append(allocator.shortfalls, *shortfall)
			}
		}
	}

	return allocator.buildOutcome(), nil
}

// InitAllocation validates the config and builds the roster, groups and day plans
func InitAllocation(config AllocationConfig) (*Allocator, error) {
	if err := validateAllocationConfig(config); err != nil {
		return nil, err
	}

	roster, err := InitRoster(InitRosterInput{
		OperatorNames: config.OperatorNames,
		OperatorCount: config.OperatorCount,
	})
	if err != nil {
		return nil, err
	}

	if config.RequiredOperators > roster.Size() {
		return nil, configErrorf("requiredOperators", "staffing requires %d operators but the roster has %d",
			config.RequiredOperators, roster.Size())
	}

	groups, err := PartitionRoster(roster, config.ShiftsPerDay, config.RequiredPerShift)
	if err != nil {
		return nil, err
	}

	smallest := groups[0].Size()
	for _, group := range groups {
		smallest = min(smallest, group.Size())
	}

	plans, err := InitDayPlans(InitDayPlansInput{
		CycleWeeks:         config.CycleWeeks,
		DaysToCoverPerWeek: config.DaysToCoverPerWeek,
		RequiredPerShift:   config.RequiredPerShift,
		Overrides:          config.Overrides,
		SmallestGroup:      smallest,
	})
	if err != nil {
		return nil, err
	}

	rules := config.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Allocator{
		roster:            roster,
		groups:            groups,
		plans:             plans,
		schedule:          NewSchedule(roster.Operators, groups, plans, config.CycleWeeks, config.ShiftsPerDay),
		policy:            RotationPolicy{ShiftsPerDay: config.ShiftsPerDay},
		hours:             config.Hours,
		rules:             rules,
		targetWeeklyHours: config.TargetWeeklyHours,
		tolerance:         config.BalanceTolerance,
		logger:            logger,
		shortfalls:        []CoverageShortfall{},
	}, nil
}

func validateAllocationConfig(config AllocationConfig) error {
	if config.CycleWeeks < 1 {
		return configErrorf("cycleWeeks", "must be at least 1, got %d", config.CycleWeeks)
	}
	if config.DaysToCoverPerWeek < 1 || config.DaysToCoverPerWeek > DaysPerWeek {
		return configErrorf("daysToCoverPerWeek", "must be between 1 and 7, got %d", config.DaysToCoverPerWeek)
	}
	if config.TargetWeeklyHours <= 0 {
		return configErrorf("targetWeeklyHours", "must be positive, got %g", config.TargetWeeklyHours)
	}
	if config.BalanceTolerance < 0 {
		return configErrorf("balanceTolerance", "must not be negative, got %g", config.BalanceTolerance)
	}
	if config.Hours == nil {
		return configErrorf("hours", "no shift hours configured")
	}

	for week := 0; week < config.CycleWeeks; week++ {
		for label := 0; label < config.ShiftsPerDay; label++ {
			if hours := config.Hours.HoursFor(label, week); !(hours > 0 && hours <= 24) {
				return configErrorf("hours", "shift %d in week %d lasts %gh", label+1, week+1, hours)
			}
		}
	}

	return nil
}

// buildOutcome creates the final allocation outcome report
func (a *Allocator) buildOutcome() *AllocationOutcome {
	summaries, balanceViolations := a.schedule.Summarise(a.targetWeeklyHours, a.tolerance)

	outcome := &AllocationOutcome{
		Schedule:          a.schedule,
		Summaries:         summaries,
		Stats:             CalculateHourStats(summaries),
		Shortfalls:        a.shortfalls,
		BalanceViolations: balanceViolations,
		RuleViolations:    ValidateSchedule(a.schedule, a.rules),
	}

	outcome.Success = len(outcome.Shortfalls) == 0 &&
		len(outcome.BalanceViolations) == 0 &&
		len(outcome.RuleViolations) == 0

	a.logger.Debug("Allocation finished",
		zap.Bool("success", outcome.Success),
		zap.Int("shortfalls", len(outcome.Shortfalls)),
		zap.Int("balance_violations", len(outcome.BalanceViolations)),
		zap.Float64("mean_hours", outcome.Stats.Mean),
		zap.Float64("stddev_hours", outcome.Stats.StdDev))

	return outcome
}
