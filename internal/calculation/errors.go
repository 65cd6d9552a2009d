package calculation

import (
	"fmt"
	"time"

	pdecimal "github.com/propvest/investment-engine/pkg/decimal"
)

// The engine's failures are all local validation errors, never transient:
// callers branch on the concrete type with errors.As and translate to
// their own surface. Nothing here is retryable and no financial figure is
// ever silently defaulted to zero in place of an error.

// MissingRateConfigurationError indicates no value was resolvable for a
// rate field at any tier of the resolution chain.
type MissingRateConfigurationError struct {
	Field string
}

func (e *MissingRateConfigurationError) Error() string {
	return fmt.Sprintf("no rate configuration resolvable for %q at any tier", e.Field)
}

// NegativeHoldingPeriodError indicates the evaluation instant precedes
// the investment date (clock skew or a corrupted record).
type NegativeHoldingPeriodError struct {
	CreatedAt time.Time
	Now       time.Time
}

func (e *NegativeHoldingPeriodError) Error() string {
	return fmt.Sprintf("holding period is negative: now %s precedes investment date %s",
		e.Now.Format(time.RFC3339), e.CreatedAt.Format(time.RFC3339))
}

// InvalidPrincipalError indicates a non-positive principal.
type InvalidPrincipalError struct {
	Principal pdecimal.Money
}

func (e *InvalidPrincipalError) Error() string {
	return fmt.Sprintf("principal must be positive, got %s", e.Principal.String())
}

// InvestmentBoundsError indicates an amount outside the platform's
// configured min/max investment bounds.
type InvestmentBoundsError struct {
	Amount pdecimal.Money
	Min    pdecimal.Money
	Max    pdecimal.Money
}

func (e *InvestmentBoundsError) Error() string {
	return fmt.Sprintf("investment amount %s is outside the allowed range %s to %s",
		e.Amount.String(), e.Min.String(), e.Max.String())
}

// UnmatchedPenaltyTierError indicates a graduated penalty schedule is
// present but defines no tier for the current investment year. Falling
// back to the flat rate here would conflate two override mechanisms, so
// the engine surfaces the misconfiguration instead.
type UnmatchedPenaltyTierError struct {
	Year int
}

func (e *UnmatchedPenaltyTierError) Error() string {
	return fmt.Sprintf("graduated penalty schedule defines no tier for investment year %d", e.Year)
}
