// Package money holds the currency arithmetic shared by the ledger and the
// settlement engine. Amounts are shopspring decimals in major units.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every settled amount is rounded to.
const Places = 2

var hundred = decimal.NewFromInt(100)

// RoundCurrency rounds d to Places decimals, halves away from zero.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// IsCents reports whether d has no more than Places decimals.
func IsCents(d decimal.Decimal) bool {
	return d.Mul(hundred).Equal(d.Mul(hundred).Floor())
}

// Parse reads an amount such as "12.50" and rejects more than Places decimals.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if !IsCents(d) {
		return decimal.Zero, fmt.Errorf("amount %q has more than %d decimal places", s, Places)
	}
	return d, nil
}

// Split divides total into n parts that differ by at most one cent and sum to
// RoundCurrency(total) exactly. Leftover cents go to the first parts.
func Split(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}

	cents := RoundCurrency(total).Shift(Places).IntPart()
	base := cents / int64(n)
	rem := cents % int64(n)

	extra := int64(1)
	if rem < 0 {
		extra = -1
		rem = -rem
	}

	parts := make([]decimal.Decimal, n)
	for i := range parts {
		c := base
		if int64(i) < rem {
			c += extra
		}
		parts[i] = decimal.New(c, -Places)
	}
	return parts
}
