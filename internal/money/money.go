// Package money parses and formats rupiah amounts.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidAmount = errors.New("invalid amount")

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	hundred  = decimal.NewFromInt(100)
)

// suffixes are checked in order, so "jt" must come before the single letters.
var suffixes = []struct {
	suffix     string
	multiplier decimal.Decimal
}{
	{"jt", million},
	{"k", thousand},
	{"m", million},
}

// Parse turns a shorthand token such as "15k", "2jt" or "7.5k" into a whole
// rupiah amount. Commas and underscores are treated as group separators and
// a dot is always the decimal point, so "1,5jt" is 15 million.
func Parse(token string) (int64, error) {
	clean := strings.ToLower(strings.TrimSpace(token))
	clean = strings.NewReplacer(",", "", "_", "").Replace(clean)

	multiplier := decimal.NewFromInt(1)

	for _, s := range suffixes {
		if prefix, ok := strings.CutSuffix(clean, s.suffix); ok {
			clean = prefix
			multiplier = s.multiplier

			break
		}
	}

	if clean == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, token)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, token)
	}

	return d.Mul(multiplier).Round(0).IntPart(), nil
}

var printer = message.NewPrinter(language.Indonesian)

// Format renders an amount with Indonesian digit grouping, e.g. 50000 -> "50.000".
func Format(amount int64) string {
	return printer.Sprintf("%d", amount)
}

func FormatRupiah(amount int64) string {
	return "Rp " + Format(amount)
}

// Percent returns round(part / whole * 100), or 0 when whole is 0.
func Percent(part, whole int64) int {
	if whole == 0 {
		return 0
	}

	return int(decimal.NewFromInt(part).
		Mul(hundred).
		DivRound(decimal.NewFromInt(whole), 8).
		Round(0).
		IntPart())
}
