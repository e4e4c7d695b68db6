package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DatabaseURL:       "postgres://localhost:5432/rota",
		CycleWeeks:        4,
		TargetWeeklyHours: 42,
		BalanceTolerance:  12,
		Roster: RosterConfig{
			OperatorCount: 12,
		},
		Shifts: ShiftConfig{
			ShiftsPerDay:       2,
			RequiredPerShift:   4,
			DefaultHours:       12,
			DaysToCoverPerWeek: 7,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	two := 2
	cfg := validConfig()
	cfg.Roster = RosterConfig{Operators: []string{"Ana", "Luis", "Marta", "Pablo"}}
	cfg.Shifts.RequiredPerShift = 2
	cfg.Shifts.HoursPerShift = []float64{12, 12}
	cfg.DayOverrides = []DayOverride{
		{RRule: "FREQ=WEEKLY;BYDAY=SU", RequiredPerShift: &two},
		{RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25", Closed: true},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	err := Validate(validConfig())
	assert.NoError(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_ShiftsPerDay(t *testing.T) {
	tests := []struct {
		shifts int
		valid  bool
	}{
		{1, false},
		{2, true},
		{3, true},
		{4, true},
		{5, false},
	}

	for _, tt := range tests {
		cfg := validConfig()
		cfg.Shifts.ShiftsPerDay = tt.shifts

		err := Validate(cfg)
		if tt.valid {
			assert.NoError(t, err, "shiftsPerDay=%d", tt.shifts)
		} else {
			assert.Error(t, err, "shiftsPerDay=%d", tt.shifts)
		}
	}
}

func TestValidate_DaysToCover(t *testing.T) {
	cfg := validConfig()
	cfg.Shifts.DaysToCoverPerWeek = 8
	assert.Error(t, Validate(cfg))

	cfg.Shifts.DaysToCoverPerWeek = 0
	assert.Error(t, Validate(cfg))

	cfg.Shifts.DaysToCoverPerWeek = 5
	assert.NoError(t, Validate(cfg))
}

func TestValidate_Hours(t *testing.T) {
	cfg := validConfig()
	cfg.Shifts.DefaultHours = 25
	assert.Error(t, Validate(cfg))

	cfg = validConfig()
	cfg.Shifts.WeekHours = []float64{12, 0}
	assert.Error(t, Validate(cfg))

	cfg = validConfig()
	cfg.Shifts.HoursPerShift = []float64{8, 8, 8}
	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "hoursPerShift")
}

func TestValidate_HoursPerShiftWithWeekHours(t *testing.T) {
	cfg := validConfig()
	cfg.Shifts.HoursPerShift = []float64{10, 10}
	cfg.Shifts.WeekHours = []float64{12, 8}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")

	cfg.Shifts.HoursPerShift = nil
	assert.NoError(t, Validate(cfg))
}

func TestValidate_EmptyRoster(t *testing.T) {
	cfg := validConfig()
	cfg.Roster = RosterConfig{}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "roster")
}

func TestValidate_RosterCountMismatch(t *testing.T) {
	cfg := validConfig()
	cfg.Roster = RosterConfig{Operators: []string{"Ana", "Luis"}, OperatorCount: 3}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "operatorCount")
}

func TestValidate_BlankOperatorName(t *testing.T) {
	cfg := validConfig()
	cfg.Roster = RosterConfig{Operators: []string{"Ana", ""}}

	assert.Error(t, Validate(cfg))
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := validConfig()
	cfg.DayOverrides = []DayOverride{
		{RRule: "FREQ=WEEKLY;BYDAY=SU", Closed: true},
		{RRule: "INVALID_RRULE_SYNTAX", Closed: true},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule in dayOverrides[1]")
}

func TestValidate_EmptyRRule(t *testing.T) {
	cfg := validConfig()
	cfg.DayOverrides = []DayOverride{{RRule: "", Closed: true}}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_OverrideRequiredPerShift(t *testing.T) {
	zero := 0
	cfg := validConfig()
	cfg.DayOverrides = []DayOverride{{RRule: "FREQ=DAILY", RequiredPerShift: &zero}}

	assert.Error(t, Validate(cfg))
}

func TestOperatorTotal(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 12, cfg.OperatorTotal())

	cfg.Roster = RosterConfig{Operators: []string{"Ana", "Luis", "Marta"}}
	assert.Equal(t, 3, cfg.OperatorTotal())
}

const sampleYAML = `databaseURL: postgres://localhost:5432/rota
rotaSheetID: sheet-123
cycleWeeks: 4
targetWeeklyHours: 42
balanceTolerance: 12
roster:
  operators:
    - Ana
    - Luis
    - Marta
    - Pablo
shifts:
  shiftsPerDay: 2
  requiredPerShift: 2
  defaultHours: 12
  weekHours: [12, 8]
  daysToCoverPerWeek: 7
rules:
  maxConsecutiveSundays: 3
dayOverrides:
  - rrule: "FREQ=WEEKLY;BYDAY=SU"
    requiredPerShift: 1
  - rrule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"
    closed: true
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rota_config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfigFile(t, sampleYAML)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/rota", cfg.DatabaseURL)
	assert.Equal(t, "sheet-123", cfg.RotaSheetID)
	assert.Equal(t, 4, cfg.CycleWeeks)
	assert.Equal(t, []string{"Ana", "Luis", "Marta", "Pablo"}, cfg.Roster.Operators)
	assert.Equal(t, []float64{12, 8}, cfg.Shifts.WeekHours)
	assert.Equal(t, 3, cfg.Rules.MaxConsecutiveSundays)
	require.Len(t, cfg.DayOverrides, 2)
	require.NotNil(t, cfg.DayOverrides[0].RequiredPerShift)
	assert.Equal(t, 1, *cfg.DayOverrides[0].RequiredPerShift)
	assert.True(t, cfg.DayOverrides[1].Closed)
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	t.Setenv("ROTA_DATABASE_URL", "postgres://db.internal:5432/rota")
	t.Setenv("ROTA_SHEET_ID", "sheet-from-env")

	cfg, err := LoadFromPath(writeConfigFile(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "postgres://db.internal:5432/rota", cfg.DatabaseURL)
	assert.Equal(t, "sheet-from-env", cfg.RotaSheetID)
}

func TestLoadFromPath_DatabaseURLFromEnvOnly(t *testing.T) {
	t.Setenv("ROTA_DATABASE_URL", "postgres://db.internal:5432/rota")

	withoutURL := sampleYAML[len("databaseURL: postgres://localhost:5432/rota\n"):]
	cfg, err := LoadFromPath(writeConfigFile(t, withoutURL))
	require.NoError(t, err)

	assert.Equal(t, "postgres://db.internal:5432/rota", cfg.DatabaseURL)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	_, err := LoadFromPath(writeConfigFile(t, "roster: [unclosed"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadOAuthClientFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oauthClient.test.json")
	content := `{"installed":{"client_id":"id","project_id":"proj","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","auth_provider_x509_cert_url":"https://www.googleapis.com/oauth2/v1/certs","client_secret":"secret","redirect_uris":["http://localhost"]}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	oauthCfg, err := LoadOAuthClientFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "id", oauthCfg.Installed.ClientID)

	require.NoError(t, os.WriteFile(path, []byte(`{"installed":{"client_id":"id"}}`), 0644))
	_, err = LoadOAuthClientFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "oauth client validation failed")
}
