// Package money implements C1: integer-cents arithmetic for the monetary
// comparisons the matching engine relies on, plus decimal parsing/display at
// the ingest/output boundary.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Tolerance is the absolute tolerance (§4.1) used for all rounded-to-2-decimal
// equality checks between ledger and bank amounts.
const Tolerance = 0.005

// Cents is an exact integer-cents representation of a signed SEK amount,
// used by the subset-sum kernels (C4) where float drift is unacceptable.
type Cents int64

// ToCents converts a float SEK amount to integer cents, rounding
// half-away-from-zero as round(x*100) in §4.1 implies.
func ToCents(amount float64) Cents {
	if amount >= 0 {
		return Cents(math.Floor(amount*100 + 0.5))
	}
	return -Cents(math.Floor(-amount*100 + 0.5))
}

// Float returns the decimal SEK value of a Cents amount.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// Round2 rounds a float to 2 decimal places using round-half-away-from-zero,
// matching the convention used throughout the cascade's amount comparisons.
func Round2(amount float64) float64 {
	return float64(ToCents(amount)) / 100
}

// Equal reports whether a and b match within Tolerance after independent
// 2-decimal rounding, per §4.1.
func Equal(a, b float64) bool {
	return math.Abs(Round2(a)-Round2(b)) <= Tolerance+1e-9
}

// SumRounded sums the amounts and rounds only the final result (§4.1: "not
// each addend").
func SumRounded(amounts []float64) float64 {
	var sum float64
	for _, a := range amounts {
		sum += a
	}
	return Round2(sum)
}

// SumCents sums a set of Cents exactly (no floating point involved).
func SumCents(amounts []Cents) Cents {
	var sum Cents
	for _, a := range amounts {
		sum += a
	}
	return sum
}

// ParseAmount parses a decimal SEK amount string tolerant of comma or dot as
// the decimal separator and space / non-breaking-space thousands separators
// (§6). Returns ok=false (a ParseWarning per §7(b)) if the string cannot be
// interpreted as a number at all.
func ParseAmount(raw string) (value float64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	dotCount := strings.Count(s, ".")
	commaCount := strings.Count(s, ",")

	switch {
	case commaCount > 0 && dotCount > 0:
		// Whichever separator appears last is the decimal separator.
		lastDot := strings.LastIndex(s, ".")
		lastComma := strings.LastIndex(s, ",")
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commaCount == 1:
		s = strings.ReplaceAll(s, ",", ".")
	case commaCount > 1:
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	if negative {
		f = -f
	}
	return f, true
}

// Format renders an amount as a signed SEK decimal string with two decimals,
// mirroring the teacher's FormatCurrencyWithSymbol convention.
func Format(amount float64, currency string) string {
	if currency == "" {
		currency = "kr"
	}
	if amount < 0 {
		return fmt.Sprintf("-%s%.2f", currency, -amount)
	}
	return fmt.Sprintf("%s%.2f", currency, amount)
}
