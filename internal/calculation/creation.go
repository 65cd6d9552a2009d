package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propvest/investment-engine/internal/domain"
	"github.com/propvest/investment-engine/pkg/dateutil"
	pdecimal "github.com/propvest/investment-engine/pkg/decimal"
)

// InvestmentRequest is the creation-time input. Amount is the gross
// amount paid in, before any upfront management fee.
type InvestmentRequest struct {
	PropertyID       string
	Type             domain.InvestmentType
	Amount           pdecimal.Money
	FeePercentage    decimal.Decimal
	FeeDeductionType domain.FeeDeductionType

	// Overrides are optional per-investment rate values; nil fields
	// defer to property terms, then global settings, then defaults.
	Overrides *RateOverrides

	// LockInYears applies to bond investments only: the admin-configured
	// lock-in, which may end before the bond's maturity. Nil means the
	// lock-in coincides with the maturity period. Simple annual
	// investments always carry a one-year lock-in.
	LockInYears *int

	// GraduatedPenalties, when set, overrides the property's schedule.
	GraduatedPenalties []domain.GraduatedPenalty

	CreatedAt time.Time
}

// NewInvestment constructs an investment record, resolving rates through
// the tier chain exactly once and freezing them onto the record. This is
// the only place resolution happens: later changes to property terms or
// global settings never touch an existing investment.
func (e *Engine) NewInvestment(req InvestmentRequest, property *domain.PropertyInvestmentTerms, settings *domain.GlobalInvestmentSettings) (*domain.Investment, error) {
	if !req.Amount.IsPositive() {
		return nil, &InvalidPrincipalError{Principal: req.Amount}
	}
	if settings != nil && settings.Active {
		min, max := settings.MinInvestment, settings.MaxInvestment
		if (min.IsPositive() && req.Amount.LessThan(min)) || (max.IsPositive() && req.Amount.GreaterThan(max)) {
			return nil, &InvestmentBoundsError{Amount: req.Amount, Min: min, Max: max}
		}
	}

	rates, err := e.Rates.Resolve(req.Overrides, property, settings)
	if err != nil {
		return nil, err
	}
	if rates.MaturityYears <= 0 {
		return nil, fmt.Errorf("resolved maturity period must be positive, got %d", rates.MaturityYears)
	}

	principal := req.Amount
	fee := domain.ManagementFee{
		FeePercentage: req.FeePercentage,
		FeeAmount:     pdecimal.Zero(),
		NetInvestment: req.Amount,
		DeductionType: req.FeeDeductionType,
	}
	if req.FeeDeductionType == domain.FeeUpfront && req.FeePercentage.IsPositive() {
		fee.FeeAmount = req.Amount.ApplyPercent(req.FeePercentage)
		fee.NetInvestment = req.Amount.Sub(fee.FeeAmount)
		principal = fee.NetInvestment
	}

	lockInYears := rates.MaturityYears
	switch req.Type {
	case domain.TypeSimpleAnnual:
		lockInYears = 1
	case domain.TypeBond:
		if req.LockInYears != nil {
			lockInYears = *req.LockInYears
		}
	default:
		return nil, fmt.Errorf("unknown investment type %q", req.Type)
	}
	if lockInYears <= 0 {
		return nil, fmt.Errorf("lock-in period must be positive, got %d years", lockInYears)
	}
	if lockInYears > rates.MaturityYears {
		e.Logger.Warnf("lock-in of %d years extends past the %d year maturity period", lockInYears, rates.MaturityYears)
	}

	schedule := req.GraduatedPenalties
	if schedule == nil && property != nil {
		schedule = property.GraduatedPenalties
	}
	if schedule != nil {
		schedule = normalizeSchedule(schedule)
		if err := validateSchedule(schedule); err != nil {
			return nil, err
		}
	}

	inv := &domain.Investment{
		ID:                  uuid.New(),
		PropertyID:          req.PropertyID,
		Type:                req.Type,
		Principal:           principal,
		RentalYieldRate:     rates.RentalYield,
		AppreciationRate:    rates.Appreciation,
		PenaltyRate:         rates.Penalty,
		MaturityPeriodYears: rates.MaturityYears,
		LockInEndDate:       dateutil.AddYears(req.CreatedAt, lockInYears, e.yearLength),
		MaturityDate:        dateutil.AddYears(req.CreatedAt, rates.MaturityYears, e.yearLength),
		GraduatedPenalties:  schedule,
		ManagementFee:       fee,
		CreatedAt:           req.CreatedAt,
		Status:              domain.StatusPending,
	}

	e.Logger.Debugf("created investment %s: type=%s principal=%s yield=%s%% appreciation=%s%% penalty=%s%% maturity=%dy lock-in=%dy",
		inv.ID, inv.Type, inv.Principal, inv.RentalYieldRate, inv.AppreciationRate,
		inv.PenaltyRate, inv.MaturityPeriodYears, lockInYears)

	return inv, nil
}

func normalizeSchedule(schedule []domain.GraduatedPenalty) []domain.GraduatedPenalty {
	out := make([]domain.GraduatedPenalty, len(schedule))
	copy(out, schedule)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func validateSchedule(schedule []domain.GraduatedPenalty) error {
	for i, tier := range schedule {
		if tier.Year < 1 {
			return fmt.Errorf("graduated penalty tier %d: year must be >= 1, got %d", i, tier.Year)
		}
		if tier.PenaltyPercentage.IsNegative() {
			return fmt.Errorf("graduated penalty tier %d: percentage cannot be negative", i)
		}
		if i > 0 && schedule[i-1].Year == tier.Year {
			return fmt.Errorf("graduated penalty schedule defines year %d twice", tier.Year)
		}
	}
	return nil
}
