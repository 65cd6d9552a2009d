package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/propvest/investment-engine/internal/domain"
	pdecimal "github.com/propvest/investment-engine/pkg/decimal"
)

// ManagementFeeProcessor applies the platform's management fee to gross
// returns at withdrawal time. The deduction policy is load-bearing: an
// upfront fee was already removed from the principal at investment time,
// so charging it again here would double-bill the investor.
type ManagementFeeProcessor struct{}

// NewManagementFeeProcessor creates a fee processor.
func NewManagementFeeProcessor() *ManagementFeeProcessor {
	return &ManagementFeeProcessor{}
}

// ApplyFee deducts the fee from gross returns. Upfront deduction is a
// no-op at withdrawal time; recurring deduction takes feePercentage of
// the combined gross returns, removed proportionally from each component.
func (p *ManagementFeeProcessor) ApplyFee(grossRentalYield, grossAppreciation pdecimal.Money, feePercentage decimal.Decimal, deductionType domain.FeeDeductionType) domain.FeeBreakdown {
	if deductionType == domain.FeeUpfront || feePercentage.IsZero() {
		return domain.FeeBreakdown{
			NetRentalYield:  grossRentalYield,
			NetAppreciation: grossAppreciation,
			FeeDeducted:     pdecimal.Zero(),
		}
	}

	yieldFee := grossRentalYield.ApplyPercent(feePercentage)
	appreciationFee := grossAppreciation.ApplyPercent(feePercentage)

	return domain.FeeBreakdown{
		NetRentalYield:  grossRentalYield.Sub(yieldFee),
		NetAppreciation: grossAppreciation.Sub(appreciationFee),
		FeeDeducted:     yieldFee.Add(appreciationFee),
	}
}
