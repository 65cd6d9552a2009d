package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pdecimal "github.com/propvest/investment-engine/pkg/decimal"
)

// WithdrawalRegime tags which of the two terminal valuation states a
// quote was computed under. The engine never interpolates between them.
type WithdrawalRegime string

const (
	// RegimeEarly applies before the lock-in end date: a penalty is
	// charged and appreciation is zero.
	RegimeEarly WithdrawalRegime = "early"
	// RegimeMature applies at or after the lock-in end date: capped
	// rental yield plus any post-maturity appreciation, no penalty.
	RegimeMature WithdrawalRegime = "mature"
)

// EffectiveRates is the result of creation-time rate resolution.
type EffectiveRates struct {
	RentalYield   decimal.Decimal `json:"rental_yield"`
	Appreciation  decimal.Decimal `json:"appreciation"`
	Penalty       decimal.Decimal `json:"penalty"`
	MaturityYears int             `json:"maturity_years"`
}

// ReturnsSnapshot is the dashboard view of an investment's unrealized
// returns as of a given instant. It never includes penalties or fees.
type ReturnsSnapshot struct {
	InvestmentID       uuid.UUID       `json:"investment_id"`
	Principal          pdecimal.Money  `json:"principal"`
	RentalYieldEarned  pdecimal.Money  `json:"rental_yield_earned"`
	AppreciationGain   pdecimal.Money  `json:"appreciation_gain"`
	HoldingPeriodYears decimal.Decimal `json:"holding_period_years"`
	AfterMaturity      bool            `json:"after_maturity"`
	AsOf               time.Time       `json:"as_of"`
}

// PenaltyQuote is the penalty determination for a withdrawal instant.
type PenaltyQuote struct {
	Applies    bool            `json:"applies"`
	Percentage decimal.Decimal `json:"percentage"`
	// YearApplied is the 1-based investment year that selected a
	// graduated tier; zero when the flat rate (or no penalty) applied.
	YearApplied int `json:"year_applied,omitempty"`
}

// FeeBreakdown is the management fee application over gross returns.
type FeeBreakdown struct {
	NetRentalYield  pdecimal.Money `json:"net_rental_yield"`
	NetAppreciation pdecimal.Money `json:"net_appreciation"`
	FeeDeducted     pdecimal.Money `json:"fee_deducted"`
}

// WithdrawalQuote is the complete priced quote for withdrawing an
// investment at a given instant.
type WithdrawalQuote struct {
	InvestmentID      uuid.UUID        `json:"investment_id"`
	Regime            WithdrawalRegime `json:"regime"`
	Principal         pdecimal.Money   `json:"principal"`
	RentalYieldEarned pdecimal.Money   `json:"rental_yield_earned"`
	AppreciationGain  pdecimal.Money   `json:"appreciation_gain"`
	PenaltyPercentage decimal.Decimal  `json:"penalty_percentage"`
	PenaltyAmount     pdecimal.Money   `json:"penalty_amount"`
	FeeDeducted       pdecimal.Money   `json:"fee_deducted"`
	NetPayable        pdecimal.Money   `json:"net_payable"`
	QuotedAt          time.Time        `json:"quoted_at"`
}
