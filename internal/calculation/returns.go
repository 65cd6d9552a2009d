package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propvest/investment-engine/pkg/dateutil"
	pdecimal "github.com/propvest/investment-engine/pkg/decimal"
)

// ReturnsInput carries the frozen snapshot fields the calculator needs.
type ReturnsInput struct {
	Principal        pdecimal.Money
	RentalYieldRate  decimal.Decimal
	AppreciationRate decimal.Decimal
	MaturityYears    int
	CreatedAt        time.Time
	MaturityDate     time.Time
}

// ReturnsResult is the gross (pre-fee, pre-penalty) accrual as of "now".
type ReturnsResult struct {
	RentalYieldEarned  pdecimal.Money
	AppreciationGain   pdecimal.Money
	HoldingPeriodYears decimal.Decimal
	AfterMaturity      bool
}

// ReturnsCalculator computes rental yield and appreciation accrual.
// Rental yield accrues linearly and is capped at the maturity period;
// appreciation compounds annually on the principal, but only over the
// portion of the holding period strictly after the maturity date.
type ReturnsCalculator struct {
	YearLength time.Duration
}

// NewReturnsCalculator creates a calculator with the given year length.
// A zero yearLength selects the production calendar year.
func NewReturnsCalculator(yearLength time.Duration) *ReturnsCalculator {
	if yearLength <= 0 {
		yearLength = dateutil.DefaultYearLength
	}
	return &ReturnsCalculator{YearLength: yearLength}
}

// ComputeReturns evaluates the accrual at the given instant. A holding
// period below zero is a hard error, never clamped: a future-dated record
// means clock skew or corruption, and pricing it would be a lie.
func (c *ReturnsCalculator) ComputeReturns(in ReturnsInput, now time.Time) (ReturnsResult, error) {
	if !in.Principal.IsPositive() {
		return ReturnsResult{}, &InvalidPrincipalError{Principal: in.Principal}
	}

	holdingYears := dateutil.YearsBetween(in.CreatedAt, now, c.YearLength)
	if holdingYears.IsNegative() {
		return ReturnsResult{}, &NegativeHoldingPeriodError{CreatedAt: in.CreatedAt, Now: now}
	}

	maturityYears := decimal.NewFromInt(int64(in.MaturityYears))
	cappedYears := decimal.Min(holdingYears, maturityYears)
	rentalYield := in.Principal.ApplyPercent(in.RentalYieldRate).Mul(cappedYears)

	afterMaturity := !now.Before(in.MaturityDate)
	appreciation := pdecimal.Zero()
	if afterMaturity {
		yearsAfter := decimal.Max(decimal.Zero, holdingYears.Sub(maturityYears))
		factor := pdecimal.CompoundFactor(in.AppreciationRate, yearsAfter)
		appreciation = in.Principal.Mul(factor).Sub(in.Principal)
	}

	return ReturnsResult{
		RentalYieldEarned:  rentalYield,
		AppreciationGain:   appreciation,
		HoldingPeriodYears: holdingYears,
		AfterMaturity:      afterMaturity,
	}, nil
}
