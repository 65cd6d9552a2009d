package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/propvest/investment-engine/internal/domain"
)

// DefaultRates are the compiled-in fallbacks at the bottom of the
// resolution chain. They exist so a platform with no global settings row
// still prices investments deterministically instead of defaulting a
// rate to zero, which would masquerade as a free investment.
type DefaultRates struct {
	RentalYield   decimal.Decimal
	Appreciation  decimal.Decimal
	Penalty       decimal.Decimal
	MaturityYears int
}

// PlatformDefaults returns the standard compiled-in default rates.
func PlatformDefaults() DefaultRates {
	return DefaultRates{
		RentalYield:   decimal.NewFromInt(8),
		Appreciation:  decimal.NewFromInt(5),
		Penalty:       decimal.NewFromInt(15),
		MaturityYears: 3,
	}
}

// RateOverrides are per-investment rate values supplied at creation time.
// Every field is nullable; nil defers to the next tier.
type RateOverrides struct {
	RentalYieldRate     *decimal.Decimal
	AppreciationRate    *decimal.Decimal
	PenaltyRate         *decimal.Decimal
	MaturityPeriodYears *int
}

// RateResolver resolves the effective rates for a new investment by
// walking investment overrides, property terms, global settings and
// finally the compiled-in defaults. It is invoked only at investment
// creation: once the snapshot is frozen onto the record, all later reads
// use the snapshot and never re-resolve.
type RateResolver struct {
	// Defaults may be nil, in which case an exhausted chain fails with
	// MissingRateConfigurationError rather than inventing a value.
	Defaults *DefaultRates
}

// NewRateResolver creates a resolver backed by the platform defaults.
func NewRateResolver() *RateResolver {
	defaults := PlatformDefaults()
	return &RateResolver{Defaults: &defaults}
}

// Resolve walks the tier chain for each of the four fields. An inactive
// global settings record is skipped as if it were absent.
func (r *RateResolver) Resolve(overrides *RateOverrides, property *domain.PropertyInvestmentTerms, settings *domain.GlobalInvestmentSettings) (domain.EffectiveRates, error) {
	if settings != nil && !settings.Active {
		settings = nil
	}

	var (
		invYield, invAppreciation, invPenalty *decimal.Decimal
		invMaturity                           *int
	)
	if overrides != nil {
		invYield = overrides.RentalYieldRate
		invAppreciation = overrides.AppreciationRate
		invPenalty = overrides.PenaltyRate
		invMaturity = overrides.MaturityPeriodYears
	}

	var (
		propYield, propAppreciation, propPenalty *decimal.Decimal
		propMaturity                             *int
	)
	if property != nil {
		propYield = property.RentalYieldRate
		propAppreciation = property.AppreciationRate
		propPenalty = property.EarlyWithdrawalPenaltyPercentage
		propMaturity = property.LockingPeriodYears
	}

	var (
		globalYield, globalAppreciation, globalPenalty *decimal.Decimal
		globalMaturity                                 *int
	)
	if settings != nil {
		globalYield = settings.RentalYieldRate
		globalAppreciation = settings.AppreciationRate
		globalPenalty = settings.EarlyWithdrawalPenaltyPercentage
		globalMaturity = settings.LockingPeriodYears
	}

	var defaultYield, defaultAppreciation, defaultPenalty *decimal.Decimal
	var defaultMaturity *int
	if r.Defaults != nil {
		defaultYield = &r.Defaults.RentalYield
		defaultAppreciation = &r.Defaults.Appreciation
		defaultPenalty = &r.Defaults.Penalty
		defaultMaturity = &r.Defaults.MaturityYears
	}

	rentalYield, err := resolveRate("rental_yield_rate", invYield, propYield, globalYield, defaultYield)
	if err != nil {
		return domain.EffectiveRates{}, err
	}
	appreciation, err := resolveRate("appreciation_rate", invAppreciation, propAppreciation, globalAppreciation, defaultAppreciation)
	if err != nil {
		return domain.EffectiveRates{}, err
	}
	penalty, err := resolveRate("penalty_rate", invPenalty, propPenalty, globalPenalty, defaultPenalty)
	if err != nil {
		return domain.EffectiveRates{}, err
	}
	maturityYears, err := resolveYears("maturity_period_years", invMaturity, propMaturity, globalMaturity, defaultMaturity)
	if err != nil {
		return domain.EffectiveRates{}, err
	}

	return domain.EffectiveRates{
		RentalYield:   rentalYield,
		Appreciation:  appreciation,
		Penalty:       penalty,
		MaturityYears: maturityYears,
	}, nil
}

func resolveRate(field string, tiers ...*decimal.Decimal) (decimal.Decimal, error) {
	for _, tier := range tiers {
		if tier != nil {
			return *tier, nil
		}
	}
	return decimal.Decimal{}, &MissingRateConfigurationError{Field: field}
}

func resolveYears(field string, tiers ...*int) (int, error) {
	for _, tier := range tiers {
		if tier != nil {
			return *tier, nil
		}
	}
	return 0, &MissingRateConfigurationError{Field: field}
}
