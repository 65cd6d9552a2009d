package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propvest/investment-engine/internal/domain"
	"github.com/propvest/investment-engine/pkg/dateutil"
)

// PenaltyInput carries the snapshot fields the penalty engine needs.
type PenaltyInput struct {
	CreatedAt          time.Time
	LockInEndDate      time.Time
	FlatPenaltyRate    decimal.Decimal
	GraduatedPenalties []domain.GraduatedPenalty
}

// PenaltyEngine determines whether an early-withdrawal penalty applies
// and at what percentage. A non-empty graduated schedule fully overrides
// the flat rate; the tier is selected by the 1-based year of the
// investment at the withdrawal instant, not by calendar year.
type PenaltyEngine struct {
	YearLength time.Duration
}

// NewPenaltyEngine creates a penalty engine with the given year length.
// A zero yearLength selects the production calendar year.
func NewPenaltyEngine(yearLength time.Duration) *PenaltyEngine {
	if yearLength <= 0 {
		yearLength = dateutil.DefaultYearLength
	}
	return &PenaltyEngine{YearLength: yearLength}
}

// QuotePenalty evaluates the penalty at the withdrawal instant. At or
// after the lock-in end date no penalty ever applies.
func (e *PenaltyEngine) QuotePenalty(in PenaltyInput, withdrawalDate time.Time) (domain.PenaltyQuote, error) {
	if withdrawalDate.Before(in.CreatedAt) {
		return domain.PenaltyQuote{}, &NegativeHoldingPeriodError{CreatedAt: in.CreatedAt, Now: withdrawalDate}
	}
	if !withdrawalDate.Before(in.LockInEndDate) {
		return domain.PenaltyQuote{Applies: false, Percentage: decimal.Zero}, nil
	}

	currentYear := dateutil.InvestmentYear(in.CreatedAt, withdrawalDate, e.YearLength)

	if len(in.GraduatedPenalties) > 0 {
		for _, tier := range in.GraduatedPenalties {
			if tier.Year == currentYear {
				return domain.PenaltyQuote{
					Applies:     tier.PenaltyPercentage.IsPositive(),
					Percentage:  tier.PenaltyPercentage,
					YearApplied: currentYear,
				}, nil
			}
		}
		return domain.PenaltyQuote{}, &UnmatchedPenaltyTierError{Year: currentYear}
	}

	return domain.PenaltyQuote{
		Applies:    in.FlatPenaltyRate.IsPositive(),
		Percentage: in.FlatPenaltyRate,
	}, nil
}
