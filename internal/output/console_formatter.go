package output

import (
	"bytes"
	"fmt"
	"time"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	if report.Returns != nil {
		r := report.Returns
		fmt.Fprintln(&buf, "UNREALIZED RETURNS")
		fmt.Fprintln(&buf, "================================")
		fmt.Fprintf(&buf, "Investment:       %s\n", r.InvestmentID)
		fmt.Fprintf(&buf, "As of:            %s\n", r.AsOf.Format(time.RFC3339))
		fmt.Fprintf(&buf, "Principal:        %s\n", FormatCurrency(r.Principal.Decimal))
		fmt.Fprintf(&buf, "Rental yield:     %s\n", FormatCurrency(r.RentalYieldEarned.Decimal))
		fmt.Fprintf(&buf, "Appreciation:     %s\n", FormatCurrency(r.AppreciationGain.Decimal))
		fmt.Fprintf(&buf, "Held:             %s years (after maturity: %v)\n",
			r.HoldingPeriodYears.StringFixed(2), r.AfterMaturity)
	}

	if report.Quote != nil {
		if report.Returns != nil {
			fmt.Fprintln(&buf)
		}
		q := report.Quote
		fmt.Fprintln(&buf, "WITHDRAWAL QUOTE")
		fmt.Fprintln(&buf, "================================")
		fmt.Fprintf(&buf, "Investment:       %s\n", q.InvestmentID)
		fmt.Fprintf(&buf, "Quoted at:        %s\n", q.QuotedAt.Format(time.RFC3339))
		fmt.Fprintf(&buf, "Regime:           %s\n", q.Regime)
		fmt.Fprintf(&buf, "Principal:        %s\n", FormatCurrency(q.Principal.Decimal))
		fmt.Fprintf(&buf, "Rental yield:     %s\n", FormatCurrency(q.RentalYieldEarned.Decimal))
		fmt.Fprintf(&buf, "Appreciation:     %s\n", FormatCurrency(q.AppreciationGain.Decimal))
		fmt.Fprintf(&buf, "Penalty:          %s (%s)\n",
			FormatCurrency(q.PenaltyAmount.Decimal), FormatPercentage(q.PenaltyPercentage))
		fmt.Fprintf(&buf, "Management fee:   %s\n", FormatCurrency(q.FeeDeducted.Decimal))
		fmt.Fprintf(&buf, "Net payable:      %s\n", FormatCurrency(q.NetPayable.Decimal))
	}

	return buf.Bytes(), nil
}
