package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pdecimal "github.com/propvest/investment-engine/pkg/decimal"
)

// InvestmentType selects which lock-in/maturity semantics apply.
type InvestmentType string

const (
	// TypeSimpleAnnual always carries a one-year lock-in; its maturity
	// boundary coincides with the end of the maturity period.
	TypeSimpleAnnual InvestmentType = "simple_annual"
	// TypeBond carries an admin-configured lock-in distinct from its
	// bond maturity date.
	TypeBond InvestmentType = "bond"
)

// InvestmentStatus is the lifecycle state of an investment.
type InvestmentStatus string

const (
	StatusPending             InvestmentStatus = "pending"
	StatusConfirmed           InvestmentStatus = "confirmed"
	StatusWithdrawalRequested InvestmentStatus = "withdrawal_requested"
	StatusWithdrawn           InvestmentStatus = "withdrawn"
	StatusCancelled           InvestmentStatus = "cancelled"
)

// FeeDeductionType determines when the management fee is charged.
type FeeDeductionType string

const (
	// FeeUpfront removes the fee from the principal at investment time;
	// withdrawal-time fee processing is a no-op.
	FeeUpfront FeeDeductionType = "upfront"
	// FeeRecurring charges the fee against gross returns at withdrawal.
	FeeRecurring FeeDeductionType = "recurring"
)

// GraduatedPenalty is one tier of a per-year early withdrawal penalty
// schedule. Year is the 1-based year of the investment.
type GraduatedPenalty struct {
	Year              int             `yaml:"year" json:"year"`
	PenaltyPercentage decimal.Decimal `yaml:"penalty_percentage" json:"penalty_percentage"`
}

// ManagementFee records the fee terms captured at investment creation.
type ManagementFee struct {
	FeePercentage decimal.Decimal  `yaml:"fee_percentage" json:"fee_percentage"`
	FeeAmount     pdecimal.Money   `yaml:"fee_amount" json:"fee_amount"`
	NetInvestment pdecimal.Money   `yaml:"net_investment" json:"net_investment"`
	DeductionType FeeDeductionType `yaml:"deduction_type" json:"deduction_type"`
}

// Investment is the plain record the engine operates on. The rate fields
// are a snapshot captured at creation time: later edits to property terms
// or global settings never change an existing investment's effective
// rates, so the engine must never re-resolve them.
type Investment struct {
	ID         uuid.UUID      `yaml:"id" json:"id"`
	PropertyID string         `yaml:"property_id,omitempty" json:"property_id,omitempty"`
	Type       InvestmentType `yaml:"type" json:"type"`

	// Principal is stored net of any upfront management fee.
	Principal pdecimal.Money `yaml:"principal" json:"principal"`

	// Frozen rate snapshot, in percentage points (8 means 8%).
	RentalYieldRate  decimal.Decimal `yaml:"rental_yield_rate" json:"rental_yield_rate"`
	AppreciationRate decimal.Decimal `yaml:"appreciation_rate" json:"appreciation_rate"`
	PenaltyRate      decimal.Decimal `yaml:"penalty_rate" json:"penalty_rate"`

	// MaturityPeriodYears caps rental yield accrual.
	MaturityPeriodYears int `yaml:"maturity_period_years" json:"maturity_period_years"`

	// LockInEndDate is the boundary before which withdrawal is early;
	// MaturityDate is the boundary after which appreciation accrues.
	// The two coincide for simple annual investments.
	LockInEndDate time.Time `yaml:"lock_in_end_date" json:"lock_in_end_date"`
	MaturityDate  time.Time `yaml:"maturity_date" json:"maturity_date"`

	// GraduatedPenalties, when non-empty, fully overrides PenaltyRate
	// for early withdrawals.
	GraduatedPenalties []GraduatedPenalty `yaml:"graduated_penalties,omitempty" json:"graduated_penalties,omitempty"`

	ManagementFee ManagementFee    `yaml:"management_fee" json:"management_fee"`
	CreatedAt     time.Time        `yaml:"created_at" json:"created_at"`
	Status        InvestmentStatus `yaml:"status" json:"status"`
}

// HasGraduatedPenalties reports whether a per-year schedule overrides the
// flat penalty rate.
func (inv *Investment) HasGraduatedPenalties() bool {
	return len(inv.GraduatedPenalties) > 0
}

// CanRequestWithdrawal reports whether the lifecycle state permits a
// withdrawal request.
func (inv *Investment) CanRequestWithdrawal() bool {
	return inv.Status == StatusConfirmed
}

// PropertyInvestmentTerms are per-property rate overrides. Every field is
// nullable; nil means defer to the global default.
type PropertyInvestmentTerms struct {
	PropertyID                       string             `yaml:"property_id" json:"property_id"`
	RentalYieldRate                  *decimal.Decimal   `yaml:"rental_yield_rate,omitempty" json:"rental_yield_rate,omitempty"`
	AppreciationRate                 *decimal.Decimal   `yaml:"appreciation_rate,omitempty" json:"appreciation_rate,omitempty"`
	LockingPeriodYears               *int               `yaml:"locking_period_years,omitempty" json:"locking_period_years,omitempty"`
	EarlyWithdrawalPenaltyPercentage *decimal.Decimal   `yaml:"early_withdrawal_penalty_percentage,omitempty" json:"early_withdrawal_penalty_percentage,omitempty"`
	GraduatedPenalties               []GraduatedPenalty `yaml:"graduated_penalties,omitempty" json:"graduated_penalties,omitempty"`
}

// GlobalInvestmentSettings are the platform-wide defaults. Rate fields are
// nullable; nil falls through to the compiled-in defaults.
type GlobalInvestmentSettings struct {
	Active                           bool             `yaml:"active" json:"active"`
	RentalYieldRate                  *decimal.Decimal `yaml:"rental_yield_rate,omitempty" json:"rental_yield_rate,omitempty"`
	AppreciationRate                 *decimal.Decimal `yaml:"appreciation_rate,omitempty" json:"appreciation_rate,omitempty"`
	LockingPeriodYears               *int             `yaml:"locking_period_years,omitempty" json:"locking_period_years,omitempty"`
	EarlyWithdrawalPenaltyPercentage *decimal.Decimal `yaml:"early_withdrawal_penalty_percentage,omitempty" json:"early_withdrawal_penalty_percentage,omitempty"`
	MinInvestment                    pdecimal.Money   `yaml:"min_investment" json:"min_investment"`
	MaxInvestment                    pdecimal.Money   `yaml:"max_investment" json:"max_investment"`
}
