package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Multiplier is an exact ratio applied by Money.Scale. Keeping it as a
// fraction means 1/3 and 1/12 scale without binary rounding error.
type Multiplier struct {
	num int64
	den int64
}

// Ratio returns the multiplier num/den. den must be positive.
func Ratio(num, den int64) Multiplier {
	if den <= 0 {
		panic(fmt.Sprintf("money: invalid multiplier denominator %d", den))
	}
	return Multiplier{num: num, den: den}
}

// Times returns the whole-number multiplier n.
func Times(n int64) Multiplier {
	return Multiplier{num: n, den: 1}
}

// Decimal returns the multiplier rounded to 16 places.
func (m Multiplier) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.num).Div(decimal.NewFromInt(m.den))
}

// Float64 returns the multiplier as a float for display.
func (m Multiplier) Float64() float64 {
	return float64(m.num) / float64(m.den)
}

func (m Multiplier) String() string {
	if m.den == 1 {
		return fmt.Sprintf("%d", m.num)
	}
	return fmt.Sprintf("%d/%d", m.num, m.den)
}
