package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// RosterConfig describes the operators available for scheduling
type RosterConfig struct {
	// Operators are optional display names. When empty, OperatorCount is used.
	Operators         []string `yaml:"operators,omitempty" validate:"dive,required"`
	OperatorCount     int      `yaml:"operatorCount,omitempty" validate:"min=0"`
	RequiredOperators int      `yaml:"requiredOperators,omitempty" validate:"min=0"`
}

// ShiftConfig describes the daily shift structure
type ShiftConfig struct {
	ShiftsPerDay       int       `yaml:"shiftsPerDay" validate:"oneof=2 3 4"`
	RequiredPerShift   int       `yaml:"requiredPerShift" validate:"min=1"`
	DefaultHours       float64   `yaml:"defaultHours" validate:"gt=0,lte=24"`
	HoursPerShift      []float64 `yaml:"hoursPerShift,omitempty" validate:"dive,gt=0,lte=24"`
	WeekHours          []float64 `yaml:"weekHours,omitempty" validate:"dive,gt=0,lte=24"`
	DaysToCoverPerWeek int       `yaml:"daysToCoverPerWeek" validate:"min=1,max=7"`
}

// RulesConfig toggles the rest rules
type RulesConfig struct {
	// MaxConsecutiveSundays defaults to 2 when zero
	MaxConsecutiveSundays  int  `yaml:"maxConsecutiveSundays,omitempty" validate:"min=0"`
	DisableSundayCap       bool `yaml:"disableSundayCap,omitempty"`
	DisableShiftChangeRest bool `yaml:"disableShiftChangeRest,omitempty"`
}

// DayOverride changes the requirement on every date matched by RRule
type DayOverride struct {
	RRule            string `yaml:"rrule" validate:"required"`
	RequiredPerShift *int   `yaml:"requiredPerShift,omitempty" validate:"omitempty,min=1"`
	Closed           bool   `yaml:"closed,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL       string        `yaml:"databaseURL" validate:"required"`
	RotaSheetID       string        `yaml:"rotaSheetID,omitempty"`
	LogsDir           string        `yaml:"logsDir,omitempty"`
	CycleWeeks        int           `yaml:"cycleWeeks" validate:"min=1"`
	TargetWeeklyHours float64       `yaml:"targetWeeklyHours" validate:"gt=0"`
	BalanceTolerance  float64       `yaml:"balanceTolerance" validate:"gte=0"`
	Roster            RosterConfig  `yaml:"roster"`
	Shifts            ShiftConfig   `yaml:"shifts"`
	Rules             RulesConfig   `yaml:"rules,omitempty"`
	DayOverrides      []DayOverride `yaml:"dayOverrides,omitempty" validate:"dive"`
}

// envOverrides holds values that may be supplied through the environment
// instead of the config file
type envOverrides struct {
	DatabaseURL string `env:"ROTA_DATABASE_URL"`
	RotaSheetID string `env:"ROTA_SHEET_ID"`
	LogsDir     string `env:"ROTA_LOGS_DIR"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment.
// env="test" looks for rota_config.test.yaml, an empty env for rota_config.yaml.
func LoadWithEnv(env string) (*Config, error) {
	fileName := "rota_config.yaml"
	if env != "" {
		fileName = "rota_config." + env + ".yaml"
	}

	configPath, err := findFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Environment overrides are applied before validation.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyEnvOverrides replaces file values with any ROTA_* environment variables that are set
func ApplyEnvOverrides(cfg *Config) error {
	overrides, err := env.ParseAs[envOverrides]()
	if err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if overrides.DatabaseURL != "" {
		cfg.DatabaseURL = overrides.DatabaseURL
	}
	if overrides.RotaSheetID != "" {
		cfg.RotaSheetID = overrides.RotaSheetID
	}
	if overrides.LogsDir != "" {
		cfg.LogsDir = overrides.LogsDir
	}

	return nil
}

// Validate validates the configuration struct, the roster size and rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	roster := cfg.Roster
	if len(roster.Operators) == 0 && roster.OperatorCount == 0 {
		return fmt.Errorf("config validation failed: roster needs operators or operatorCount")
	}
	if len(roster.Operators) > 0 && roster.OperatorCount != 0 && roster.OperatorCount != len(roster.Operators) {
		return fmt.Errorf("config validation failed: operatorCount is %d but %d operators are listed",
			roster.OperatorCount, len(roster.Operators))
	}

	if n := len(cfg.Shifts.HoursPerShift); n > 0 && n != cfg.Shifts.ShiftsPerDay {
		return fmt.Errorf("config validation failed: hoursPerShift has %d entries for %d shifts",
			n, cfg.Shifts.ShiftsPerDay)
	}

	if len(cfg.Shifts.HoursPerShift) > 0 && len(cfg.Shifts.WeekHours) > 0 {
		return fmt.Errorf("config validation failed: set either hoursPerShift or weekHours, not both")
	}

	// Validate rrule syntax for each override
	for i, override := range cfg.DayOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in dayOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// OperatorTotal returns the roster size described by the config
func (c *Config) OperatorTotal() int {
	if len(c.Roster.Operators) > 0 {
		return len(c.Roster.Operators)
	}
	return c.Roster.OperatorCount
}

// findFile looks for fileName in the current directory first, then the home directory
func findFile(fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
