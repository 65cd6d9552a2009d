package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/propvest/investment-engine/internal/domain"
	"github.com/propvest/investment-engine/pkg/dateutil"
	pdecimal "github.com/propvest/investment-engine/pkg/decimal"
)

// EngineClock configures the engine's notion of a year. Production leaves
// YearLength empty and gets the calendar year; test harnesses set a short
// duration (e.g. "1h") to run an accelerated clock.
type EngineClock struct {
	YearLength time.Duration `yaml:"year_length,omitempty" json:"year_length,omitempty"`
}

// Effective returns the configured year length, defaulting to production.
func (c EngineClock) Effective() time.Duration {
	if c.YearLength <= 0 {
		return dateutil.DefaultYearLength
	}
	return c.YearLength
}

// UnmarshalYAML implements custom YAML unmarshaling so year_length can be
// written as a duration string ("8766h", "1h").
func (c *EngineClock) UnmarshalYAML(value *yaml.Node) error {
	var aux struct {
		YearLength string `yaml:"year_length"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	if aux.YearLength == "" {
		return nil
	}
	d, err := time.ParseDuration(aux.YearLength)
	if err != nil {
		return fmt.Errorf("invalid year_length %q: %w", aux.YearLength, err)
	}
	c.YearLength = d
	return nil
}

// PlatformConfig is the complete platform configuration: the global
// settings singleton, per-property term overrides and the engine clock.
type PlatformConfig struct {
	Settings   domain.GlobalInvestmentSettings  `yaml:"settings" json:"settings"`
	Properties []domain.PropertyInvestmentTerms `yaml:"properties,omitempty" json:"properties,omitempty"`
	Clock      EngineClock                      `yaml:"clock,omitempty" json:"clock,omitempty"`
}

// PropertyTerms returns the terms for a property, or nil when the
// property has no overrides and global settings apply.
func (pc *PlatformConfig) PropertyTerms(propertyID string) *domain.PropertyInvestmentTerms {
	for i := range pc.Properties {
		if pc.Properties[i].PropertyID == propertyID {
			return &pc.Properties[i]
		}
	}
	return nil
}

// InputParser handles parsing of platform configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads platform configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*PlatformConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config PlatformConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *PlatformConfig) error {
	if err := ip.validateSettings(&config.Settings); err != nil {
		return fmt.Errorf("global settings validation failed: %w", err)
	}

	seen := make(map[string]struct{}, len(config.Properties))
	for i, property := range config.Properties {
		if err := ip.validateProperty(&property); err != nil {
			return fmt.Errorf("property %d validation failed: %w", i, err)
		}
		if _, dup := seen[property.PropertyID]; dup {
			return fmt.Errorf("property %q has duplicate terms", property.PropertyID)
		}
		seen[property.PropertyID] = struct{}{}
	}

	return nil
}

// validateSettings validates the global settings singleton
func (ip *InputParser) validateSettings(settings *domain.GlobalInvestmentSettings) error {
	if err := validateRatePointer("rental yield rate", settings.RentalYieldRate); err != nil {
		return err
	}
	if err := validateRatePointer("appreciation rate", settings.AppreciationRate); err != nil {
		return err
	}
	if err := validateRatePointer("early withdrawal penalty", settings.EarlyWithdrawalPenaltyPercentage); err != nil {
		return err
	}
	if settings.LockingPeriodYears != nil && *settings.LockingPeriodYears <= 0 {
		return fmt.Errorf("locking period years must be positive")
	}
	if settings.MinInvestment.IsNegative() {
		return fmt.Errorf("minimum investment cannot be negative")
	}
	if settings.MaxInvestment.IsPositive() && settings.MaxInvestment.LessThan(settings.MinInvestment) {
		return fmt.Errorf("maximum investment cannot be below the minimum")
	}
	return nil
}

// validateProperty validates a single property's term overrides
func (ip *InputParser) validateProperty(property *domain.PropertyInvestmentTerms) error {
	if property.PropertyID == "" {
		return fmt.Errorf("property id is required")
	}
	if err := validateRatePointer("rental yield rate", property.RentalYieldRate); err != nil {
		return err
	}
	if err := validateRatePointer("appreciation rate", property.AppreciationRate); err != nil {
		return err
	}
	if err := validateRatePointer("early withdrawal penalty", property.EarlyWithdrawalPenaltyPercentage); err != nil {
		return err
	}
	if property.LockingPeriodYears != nil && *property.LockingPeriodYears <= 0 {
		return fmt.Errorf("locking period years must be positive")
	}
	for i, tier := range property.GraduatedPenalties {
		if tier.Year < 1 {
			return fmt.Errorf("graduated penalty tier %d: year must be >= 1", i)
		}
		if tier.PenaltyPercentage.IsNegative() {
			return fmt.Errorf("graduated penalty tier %d: percentage cannot be negative", i)
		}
	}
	return nil
}

func validateRatePointer(name string, rate *decimal.Decimal) error {
	if rate == nil {
		return nil
	}
	if rate.IsNegative() {
		return fmt.Errorf("%s cannot be negative", name)
	}
	if rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%s cannot exceed 100%%", name)
	}
	return nil
}

// CreateExampleConfiguration creates an example platform configuration
func (ip *InputParser) CreateExampleConfiguration() *PlatformConfig {
	rentalYield := decimal.NewFromInt(8)
	appreciation := decimal.NewFromInt(5)
	penalty := decimal.NewFromInt(15)
	lockingYears := 3

	propertyYield := decimal.NewFromFloat(9.5)
	propertyPenalty := decimal.NewFromInt(10)

	return &PlatformConfig{
		Settings: domain.GlobalInvestmentSettings{
			Active:                           true,
			RentalYieldRate:                  &rentalYield,
			AppreciationRate:                 &appreciation,
			EarlyWithdrawalPenaltyPercentage: &penalty,
			LockingPeriodYears:               &lockingYears,
			MinInvestment:                    pdecimal.NewMoneyFromInt(10000),
			MaxInvestment:                    pdecimal.NewMoneyFromInt(10000000),
		},
		Properties: []domain.PropertyInvestmentTerms{
			{
				PropertyID:                       "riverside-apartments",
				RentalYieldRate:                  &propertyYield,
				EarlyWithdrawalPenaltyPercentage: &propertyPenalty,
			},
			{
				PropertyID: "harbor-view-bonds",
				GraduatedPenalties: []domain.GraduatedPenalty{
					{Year: 1, PenaltyPercentage: decimal.NewFromInt(15)},
					{Year: 2, PenaltyPercentage: decimal.NewFromInt(10)},
					{Year: 3, PenaltyPercentage: decimal.NewFromInt(5)},
				},
			},
		},
	}
}
