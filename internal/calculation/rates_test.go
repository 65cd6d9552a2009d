package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/propvest/investment-engine/internal/domain"
)

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func intPtr(i int) *int {
	return &i
}

func activeSettings() *domain.GlobalInvestmentSettings {
	return &domain.GlobalInvestmentSettings{
		Active:                           true,
		RentalYieldRate:                  decPtr(6),
		AppreciationRate:                 decPtr(4),
		EarlyWithdrawalPenaltyPercentage: decPtr(12),
		LockingPeriodYears:               intPtr(4),
	}
}

func TestResolveFallsThroughToDefaults(t *testing.T) {
	resolver := NewRateResolver()
	rates, err := resolver.Resolve(nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rates.RentalYield.Equal(decimal.NewFromInt(8)) {
		t.Errorf("expected default rental yield 8, got %s", rates.RentalYield)
	}
	if !rates.Appreciation.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected default appreciation 5, got %s", rates.Appreciation)
	}
	if !rates.Penalty.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected default penalty 15, got %s", rates.Penalty)
	}
	if rates.MaturityYears != 3 {
		t.Errorf("expected default maturity 3, got %d", rates.MaturityYears)
	}
}

func TestResolveGlobalBeatsDefaults(t *testing.T) {
	resolver := NewRateResolver()
	rates, err := resolver.Resolve(nil, nil, activeSettings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rates.RentalYield.Equal(decimal.NewFromInt(6)) {
		t.Errorf("expected global rental yield 6, got %s", rates.RentalYield)
	}
	if rates.MaturityYears != 4 {
		t.Errorf("expected global maturity 4, got %d", rates.MaturityYears)
	}
}

func TestResolvePropertyBeatsGlobal(t *testing.T) {
	resolver := NewRateResolver()
	property := &domain.PropertyInvestmentTerms{
		PropertyID:      "riverside",
		RentalYieldRate: decPtr(9.5),
	}
	rates, err := resolver.Resolve(nil, property, activeSettings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rates.RentalYield.Equal(decimal.NewFromFloat(9.5)) {
		t.Errorf("expected property rental yield 9.5, got %s", rates.RentalYield)
	}
	// Fields the property leaves nil still come from global settings.
	if !rates.Appreciation.Equal(decimal.NewFromInt(4)) {
		t.Errorf("expected global appreciation 4, got %s", rates.Appreciation)
	}
}

func TestResolveOverridesBeatEverything(t *testing.T) {
	resolver := NewRateResolver()
	property := &domain.PropertyInvestmentTerms{
		PropertyID:      "riverside",
		RentalYieldRate: decPtr(9.5),
	}
	overrides := &RateOverrides{
		RentalYieldRate:     decPtr(11),
		MaturityPeriodYears: intPtr(5),
	}
	rates, err := resolver.Resolve(overrides, property, activeSettings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rates.RentalYield.Equal(decimal.NewFromInt(11)) {
		t.Errorf("expected override rental yield 11, got %s", rates.RentalYield)
	}
	if rates.MaturityYears != 5 {
		t.Errorf("expected override maturity 5, got %d", rates.MaturityYears)
	}
}

func TestResolveInactiveSettingsSkipped(t *testing.T) {
	resolver := NewRateResolver()
	settings := activeSettings()
	settings.Active = false
	rates, err := resolver.Resolve(nil, nil, settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rates.RentalYield.Equal(decimal.NewFromInt(8)) {
		t.Errorf("expected compiled default 8 when settings inactive, got %s", rates.RentalYield)
	}
}

func TestResolveMissingConfiguration(t *testing.T) {
	resolver := &RateResolver{Defaults: nil}
	_, err := resolver.Resolve(nil, nil, nil)
	if err == nil {
		t.Fatalf("expected error with exhausted chain")
	}
	var missing *MissingRateConfigurationError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRateConfigurationError, got %T", err)
	}
	if missing.Field != "rental_yield_rate" {
		t.Errorf("expected first unresolvable field reported, got %q", missing.Field)
	}
}
