package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmpty    = errors.New("amount is empty")
	ErrTooLarge = errors.New("amount is too large")
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// ParseCents parses a decimal amount into cents. Both "." and "," are
// accepted as decimal separator; when both appear, the last one is the
// decimal separator and the other groups thousands.
// Examples: "150" -> 15000, "12,5" -> 1250, "1.234,56" -> 123456, "1,234.56" -> 123456.
func ParseCents(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, ErrEmpty
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0 && lastComma > lastDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case lastDot >= 0 && lastComma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case lastComma >= 0:
		if strings.Count(clean, ",") > 1 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}

		clean = strings.Replace(clean, ",", ".", 1)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("invalid amount %q: %w", s, ErrTooLarge)
	}

	return cents.IntPart(), nil
}

// Format renders cents with the currency symbol in front. Whole amounts
// drop the decimals, matching how people write debts ("$150", "$12.50").
func Format(cents int64, symbol string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	d := decimal.New(cents, -2)

	places := int32(2)
	if cents%100 == 0 {
		places = 0
	}

	return sign + symbol + d.StringFixed(places)
}
