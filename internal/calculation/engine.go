package calculation

import (
	"time"

	"github.com/propvest/investment-engine/internal/domain"
	"github.com/propvest/investment-engine/pkg/dateutil"
	pdecimal "github.com/propvest/investment-engine/pkg/decimal"
)

// Engine composes the rate resolver, returns calculator, penalty engine
// and fee processor behind the two entry points its collaborators use.
// Every operation is a pure function over the investment record and an
// explicit "now": the engine performs no I/O, holds no mutable state and
// is safe to call concurrently without coordination.
type Engine struct {
	Rates     *RateResolver
	Returns   *ReturnsCalculator
	Penalties *PenaltyEngine
	Fees      *ManagementFeeProcessor
	Logger    Logger

	yearLength time.Duration
}

// NewEngine creates an engine on the production calendar year.
func NewEngine() *Engine {
	return NewEngineWithYearLength(dateutil.DefaultYearLength)
}

// NewEngineWithYearLength creates an engine whose notion of a year is the
// given duration. Accelerated-clock harnesses inject a short year here;
// the formulas themselves never branch on which is in effect.
func NewEngineWithYearLength(yearLength time.Duration) *Engine {
	if yearLength <= 0 {
		yearLength = dateutil.DefaultYearLength
	}
	return &Engine{
		Rates:      NewRateResolver(),
		Returns:    NewReturnsCalculator(yearLength),
		Penalties:  NewPenaltyEngine(yearLength),
		Fees:       NewManagementFeeProcessor(),
		Logger:     NopLogger{},
		yearLength: yearLength,
	}
}

// SetLogger sets the logger for the engine. A nil logger restores no-op.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// YearLength reports the injected year length.
func (e *Engine) YearLength() time.Duration {
	return e.yearLength
}

// ComputeUnrealizedReturns evaluates an investment's accrued returns for
// dashboard display. It never includes penalties or fees.
func (e *Engine) ComputeUnrealizedReturns(inv *domain.Investment, now time.Time) (*domain.ReturnsSnapshot, error) {
	returns, err := e.Returns.ComputeReturns(returnsInput(inv), now)
	if err != nil {
		return nil, err
	}

	return &domain.ReturnsSnapshot{
		InvestmentID:       inv.ID,
		Principal:          inv.Principal.Round(),
		RentalYieldEarned:  returns.RentalYieldEarned.Round(),
		AppreciationGain:   returns.AppreciationGain.Round(),
		HoldingPeriodYears: returns.HoldingPeriodYears,
		AfterMaturity:      returns.AfterMaturity,
		AsOf:               now,
	}, nil
}

// ComputeWithdrawalQuote prices a withdrawal at the given instant. The
// quote lands in exactly one of two regimes: early (before the lock-in
// end, penalty applies, appreciation forced to zero) or mature (at or
// after, full capped yield plus appreciation, penalty forced to zero).
// The engine never blends the two.
func (e *Engine) ComputeWithdrawalQuote(inv *domain.Investment, now time.Time) (*domain.WithdrawalQuote, error) {
	returns, err := e.Returns.ComputeReturns(returnsInput(inv), now)
	if err != nil {
		return nil, err
	}

	penalty, err := e.Penalties.QuotePenalty(PenaltyInput{
		CreatedAt:          inv.CreatedAt,
		LockInEndDate:      inv.LockInEndDate,
		FlatPenaltyRate:    inv.PenaltyRate,
		GraduatedPenalties: inv.GraduatedPenalties,
	}, now)
	if err != nil {
		return nil, err
	}

	quote := &domain.WithdrawalQuote{
		InvestmentID: inv.ID,
		Principal:    inv.Principal.Round(),
		QuotedAt:     now,
	}

	if now.Before(inv.LockInEndDate) {
		quote.Regime = domain.RegimeEarly
		appreciation := pdecimal.Zero()
		fees := e.Fees.ApplyFee(returns.RentalYieldEarned, appreciation, inv.ManagementFee.FeePercentage, inv.ManagementFee.DeductionType)

		quote.RentalYieldEarned = returns.RentalYieldEarned.Round()
		quote.AppreciationGain = appreciation
		quote.PenaltyPercentage = penalty.Percentage
		quote.PenaltyAmount = inv.Principal.ApplyPercent(penalty.Percentage).Round()
		quote.FeeDeducted = fees.FeeDeducted.Round()
		quote.NetPayable = inv.Principal.
			Add(returns.RentalYieldEarned).
			Sub(inv.Principal.ApplyPercent(penalty.Percentage)).
			Sub(fees.FeeDeducted).
			Round()
	} else {
		quote.Regime = domain.RegimeMature
		fees := e.Fees.ApplyFee(returns.RentalYieldEarned, returns.AppreciationGain, inv.ManagementFee.FeePercentage, inv.ManagementFee.DeductionType)

		quote.RentalYieldEarned = returns.RentalYieldEarned.Round()
		quote.AppreciationGain = returns.AppreciationGain.Round()
		quote.PenaltyAmount = pdecimal.Zero()
		quote.FeeDeducted = fees.FeeDeducted.Round()
		quote.NetPayable = inv.Principal.
			Add(returns.RentalYieldEarned).
			Add(returns.AppreciationGain).
			Sub(fees.FeeDeducted).
			Round()
	}

	e.Logger.Debugf("quote %s: regime=%s yield=%s appreciation=%s penalty=%s fee=%s net=%s",
		inv.ID, quote.Regime, quote.RentalYieldEarned, quote.AppreciationGain,
		quote.PenaltyAmount, quote.FeeDeducted, quote.NetPayable)

	return quote, nil
}

func returnsInput(inv *domain.Investment) ReturnsInput {
	return ReturnsInput{
		Principal:        inv.Principal,
		RentalYieldRate:  inv.RentalYieldRate,
		AppreciationRate: inv.AppreciationRate,
		MaturityYears:    inv.MaturityPeriodYears,
		CreatedAt:        inv.CreatedAt,
		MaturityDate:     inv.MaturityDate,
	}
}
