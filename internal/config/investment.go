package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/propvest/investment-engine/internal/domain"
)

// LoadInvestment loads a single investment record from a YAML file. The
// record is the persistence layer's snapshot; the loader only checks it
// is structurally usable, it never re-resolves rates.
func (ip *InputParser) LoadInvestment(filename string) (*domain.Investment, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var inv domain.Investment
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateInvestment(&inv); err != nil {
		return nil, fmt.Errorf("investment validation failed: %w", err)
	}

	return &inv, nil
}

// ValidateInvestment checks a loaded investment record is usable.
func (ip *InputParser) ValidateInvestment(inv *domain.Investment) error {
	if inv.Type != domain.TypeSimpleAnnual && inv.Type != domain.TypeBond {
		return fmt.Errorf("unknown investment type %q", inv.Type)
	}
	if !inv.Principal.IsPositive() {
		return fmt.Errorf("principal must be positive")
	}
	if inv.MaturityPeriodYears <= 0 {
		return fmt.Errorf("maturity period years must be positive")
	}
	if inv.CreatedAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}
	if inv.LockInEndDate.IsZero() {
		return fmt.Errorf("lock_in_end_date is required")
	}
	if inv.MaturityDate.IsZero() {
		return fmt.Errorf("maturity_date is required")
	}
	if inv.LockInEndDate.Before(inv.CreatedAt) {
		return fmt.Errorf("lock_in_end_date cannot precede created_at")
	}
	if inv.MaturityDate.Before(inv.CreatedAt) {
		return fmt.Errorf("maturity_date cannot precede created_at")
	}
	if inv.RentalYieldRate.IsNegative() || inv.AppreciationRate.IsNegative() || inv.PenaltyRate.IsNegative() {
		return fmt.Errorf("rates cannot be negative")
	}
	for i, tier := range inv.GraduatedPenalties {
		if tier.Year < 1 {
			return fmt.Errorf("graduated penalty tier %d: year must be >= 1", i)
		}
		if tier.PenaltyPercentage.IsNegative() {
			return fmt.Errorf("graduated penalty tier %d: percentage cannot be negative", i)
		}
	}
	return nil
}
