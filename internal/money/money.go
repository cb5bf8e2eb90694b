// Package money holds fixed-point currency amounts in minor units.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrParse is returned for amounts that are not non-negative decimals.
var ErrParse = errors.New("invalid amount")

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(1 << 53)
)

// Money is an amount in cents. Stored transaction amounts are never
// negative; report totals reuse the type with a sign.
type Money int64

// FromCents wraps a count of minor units.
func FromCents(cents int64) Money {
	return Money(cents)
}

// Parse converts a decimal string such as "12.34" to cents. Digits past the
// second decimal place are truncated.
func Parse(text string) (Money, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrParse)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, text)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrParse, text)
	}
	cents := d.Mul(hundred).Truncate(0)
	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %q out of range", ErrParse, text)
	}
	return Money(cents.IntPart()), nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return int64(m)
}

func (m Money) Add(o Money) Money { return m + o }
func (m Money) Sub(o Money) Money { return m - o }
func (m Money) Neg() Money        { return -m }

// IsNegative reports whether m is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// Decimal returns m in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats m with two decimal places: 150 -> "1.50", 5 -> "0.05".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Scale multiplies m by mul and truncates toward zero.
func (m Money) Scale(mul Multiplier) Money {
	if mul.den == 0 {
		return 0
	}
	scaled := decimal.NewFromInt(int64(m)).
		Mul(decimal.NewFromInt(mul.num)).
		Div(decimal.NewFromInt(mul.den)).
		Truncate(0)
	return Money(scaled.IntPart())
}
