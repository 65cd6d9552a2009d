package dateutil

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultYearLength is the production year length (365.25 days). Test
// harnesses inject a shorter value to run an accelerated clock; the
// calculation formulas never branch on which one is in effect.
const DefaultYearLength = time.Duration(365.25 * 24 * float64(time.Hour))

// YearsBetween calculates the elapsed time between two instants expressed
// in years of the given length, as a decimal for precise calculations.
func YearsBetween(from, to time.Time, yearLength time.Duration) decimal.Decimal {
	elapsed := decimal.NewFromFloat(to.Sub(from).Hours())
	return elapsed.Div(decimal.NewFromFloat(yearLength.Hours()))
}

// InvestmentYear returns the 1-based year of an investment at a given
// instant: the first year runs from the investment date up to (but not
// including) its first anniversary.
func InvestmentYear(createdAt, at time.Time, yearLength time.Duration) int {
	years := YearsBetween(createdAt, at, yearLength)
	return int(years.Floor().IntPart()) + 1
}

// AddYears adds a whole number of years of the given length to a date.
func AddYears(date time.Time, years int, yearLength time.Duration) time.Time {
	return date.Add(time.Duration(years) * yearLength)
}

// AddYearsDecimal adds a possibly fractional number of years of the given
// length to a date.
func AddYearsDecimal(date time.Time, years decimal.Decimal, yearLength time.Duration) time.Time {
	hours := years.Mul(decimal.NewFromFloat(yearLength.Hours()))
	return date.Add(time.Duration(hours.InexactFloat64() * float64(time.Hour)))
}
