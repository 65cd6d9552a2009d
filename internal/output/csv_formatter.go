package output

import (
	"bytes"
	"encoding/csv"
	"time"
)

// CSVFormatter implements the summary CSV output (one row per result).
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Kind", "InvestmentID", "AsOf", "Regime", "Principal", "RentalYieldEarned", "AppreciationGain", "PenaltyAmount", "FeeDeducted", "NetPayable"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	if report.Returns != nil {
		r := report.Returns
		row := []string{
			"returns",
			r.InvestmentID.String(),
			r.AsOf.Format(time.RFC3339),
			"",
			r.Principal.StringFixed(2),
			r.RentalYieldEarned.StringFixed(2),
			r.AppreciationGain.StringFixed(2),
			"", "", "",
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	if report.Quote != nil {
		q := report.Quote
		row := []string{
			"quote",
			q.InvestmentID.String(),
			q.QuotedAt.Format(time.RFC3339),
			string(q.Regime),
			q.Principal.StringFixed(2),
			q.RentalYieldEarned.StringFixed(2),
			q.AppreciationGain.StringFixed(2),
			q.PenaltyAmount.StringFixed(2),
			q.FeeDeducted.StringFixed(2),
			q.NetPayable.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
