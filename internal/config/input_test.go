package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/propvest/investment-engine/internal/domain"
	"github.com/propvest/investment-engine/pkg/dateutil"
	pdecimal "github.com/propvest/investment-engine/pkg/decimal"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeTempYAML(t, `
settings:
  active: true
  rental_yield_rate: 8
  appreciation_rate: 5
  early_withdrawal_penalty_percentage: 15
  locking_period_years: 3
  min_investment: 10000
  max_investment: 10000000
properties:
  - property_id: riverside-apartments
    rental_yield_rate: 9.5
  - property_id: harbor-view-bonds
    graduated_penalties:
      - year: 1
        penalty_percentage: 15
      - year: 2
        penalty_percentage: 10
`)

	parser := NewInputParser()
	cfg, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Settings.Active)
	require.NotNil(t, cfg.Settings.RentalYieldRate)
	assert.True(t, cfg.Settings.RentalYieldRate.Equal(decimal.NewFromInt(8)))
	require.NotNil(t, cfg.Settings.LockingPeriodYears)
	assert.Equal(t, 3, *cfg.Settings.LockingPeriodYears)
	assert.True(t, cfg.Settings.MinInvestment.Equal(pdecimal.NewMoneyFromInt(10000)))

	require.Len(t, cfg.Properties, 2)
	riverside := cfg.PropertyTerms("riverside-apartments")
	require.NotNil(t, riverside)
	assert.True(t, riverside.RentalYieldRate.Equal(decimal.NewFromFloat(9.5)))

	harbor := cfg.PropertyTerms("harbor-view-bonds")
	require.NotNil(t, harbor)
	require.Len(t, harbor.GraduatedPenalties, 2)
	assert.Equal(t, 1, harbor.GraduatedPenalties[0].Year)

	assert.Nil(t, cfg.PropertyTerms("nonexistent"))
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEngineClockParsing(t *testing.T) {
	path := writeTempYAML(t, `
settings:
  active: true
clock:
  year_length: 1h
`)

	parser := NewInputParser()
	cfg, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Clock.YearLength)
	assert.Equal(t, time.Hour, cfg.Clock.Effective())
}

func TestEngineClockDefaults(t *testing.T) {
	var clock EngineClock
	assert.Equal(t, dateutil.DefaultYearLength, clock.Effective())
}

func TestEngineClockRejectsBadDuration(t *testing.T) {
	path := writeTempYAML(t, `
settings:
  active: true
clock:
  year_length: one hour
`)

	parser := NewInputParser()
	_, err := parser.LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year_length")
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(*PlatformConfig)
		wantErr string
	}{
		{
			"negative rate",
			func(cfg *PlatformConfig) {
				bad := decimal.NewFromInt(-1)
				cfg.Settings.RentalYieldRate = &bad
			},
			"cannot be negative",
		},
		{
			"rate above 100",
			func(cfg *PlatformConfig) {
				bad := decimal.NewFromInt(150)
				cfg.Settings.AppreciationRate = &bad
			},
			"cannot exceed 100%",
		},
		{
			"max below min",
			func(cfg *PlatformConfig) {
				cfg.Settings.MinInvestment = pdecimal.NewMoneyFromInt(50000)
				cfg.Settings.MaxInvestment = pdecimal.NewMoneyFromInt(10000)
			},
			"maximum investment cannot be below",
		},
		{
			"property without id",
			func(cfg *PlatformConfig) {
				cfg.Properties = append(cfg.Properties, domain.PropertyInvestmentTerms{})
			},
			"property id is required",
		},
		{
			"duplicate property",
			func(cfg *PlatformConfig) {
				cfg.Properties = append(cfg.Properties, cfg.Properties[0])
			},
			"duplicate terms",
		},
		{
			"tier year below one",
			func(cfg *PlatformConfig) {
				cfg.Properties[1].GraduatedPenalties[0].Year = 0
			},
			"year must be >= 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parser.CreateExampleConfiguration()
			tt.mutate(cfg)
			err := parser.ValidateConfiguration(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExampleConfigurationValidates(t *testing.T) {
	parser := NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	require.NoError(t, parser.ValidateConfiguration(cfg))

	// And round-trips through YAML unchanged where it matters.
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var reloaded PlatformConfig
	require.NoError(t, yaml.Unmarshal(data, &reloaded))
	require.NoError(t, parser.ValidateConfiguration(&reloaded))
	assert.True(t, reloaded.Settings.RentalYieldRate.Equal(*cfg.Settings.RentalYieldRate))
	assert.Equal(t, len(cfg.Properties), len(reloaded.Properties))
}

func TestLoadInvestment(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := &domain.Investment{
		ID:                  uuid.New(),
		PropertyID:          "riverside-apartments",
		Type:                domain.TypeBond,
		Principal:           pdecimal.NewMoneyFromInt(50000),
		RentalYieldRate:     decimal.NewFromInt(8),
		AppreciationRate:    decimal.NewFromInt(5),
		PenaltyRate:         decimal.NewFromInt(15),
		MaturityPeriodYears: 3,
		LockInEndDate:       dateutil.AddYears(created, 3, dateutil.DefaultYearLength),
		MaturityDate:        dateutil.AddYears(created, 3, dateutil.DefaultYearLength),
		ManagementFee: domain.ManagementFee{
			DeductionType: domain.FeeUpfront,
			NetInvestment: pdecimal.NewMoneyFromInt(50000),
		},
		CreatedAt: created,
		Status:    domain.StatusConfirmed,
	}

	data, err := yaml.Marshal(inv)
	require.NoError(t, err)
	path := writeTempYAML(t, string(data))

	parser := NewInputParser()
	loaded, err := parser.LoadInvestment(path)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, loaded.ID)
	assert.True(t, loaded.Principal.Equal(inv.Principal))
	assert.True(t, loaded.RentalYieldRate.Equal(inv.RentalYieldRate))
	assert.True(t, loaded.CreatedAt.Equal(inv.CreatedAt))
	assert.True(t, loaded.MaturityDate.Equal(inv.MaturityDate))
	assert.Equal(t, domain.StatusConfirmed, loaded.Status)
}

func TestValidateInvestment(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	valid := func() *domain.Investment {
		return &domain.Investment{
			ID:                  uuid.New(),
			Type:                domain.TypeSimpleAnnual,
			Principal:           pdecimal.NewMoneyFromInt(25000),
			RentalYieldRate:     decimal.NewFromInt(8),
			MaturityPeriodYears: 3,
			LockInEndDate:       dateutil.AddYears(created, 1, dateutil.DefaultYearLength),
			MaturityDate:        dateutil.AddYears(created, 3, dateutil.DefaultYearLength),
			CreatedAt:           created,
			Status:              domain.StatusPending,
		}
	}

	parser := NewInputParser()
	require.NoError(t, parser.ValidateInvestment(valid()))

	tests := []struct {
		name    string
		mutate  func(*domain.Investment)
		wantErr string
	}{
		{"unknown type", func(i *domain.Investment) { i.Type = "weird" }, "unknown investment type"},
		{"zero principal", func(i *domain.Investment) { i.Principal = pdecimal.Zero() }, "principal must be positive"},
		{"zero maturity years", func(i *domain.Investment) { i.MaturityPeriodYears = 0 }, "maturity period years"},
		{"missing created_at", func(i *domain.Investment) { i.CreatedAt = time.Time{} }, "created_at is required"},
		{"missing lock-in date", func(i *domain.Investment) { i.LockInEndDate = time.Time{} }, "lock_in_end_date is required"},
		{"lock-in before creation", func(i *domain.Investment) { i.LockInEndDate = created.Add(-time.Hour) }, "cannot precede"},
		{"negative rate", func(i *domain.Investment) { i.PenaltyRate = decimal.NewFromInt(-5) }, "rates cannot be negative"},
		{
			"bad tier",
			func(i *domain.Investment) {
				i.GraduatedPenalties = []domain.GraduatedPenalty{{Year: 0, PenaltyPercentage: decimal.NewFromInt(10)}}
			},
			"year must be >= 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := valid()
			tt.mutate(inv)
			err := parser.ValidateInvestment(inv)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
