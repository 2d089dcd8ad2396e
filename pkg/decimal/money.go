package decimal

import (
	"github.com/shopspring/decimal"
)

// Money is a currency amount. Quote prices are settled in whole dollars while
// intermediate amounts keep full decimal precision.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromInt creates a Money value from a whole-dollar amount
func NewMoneyFromInt(value int64) Money {
	return Money{decimal.NewFromInt(value)}
}

// NewMoneyFromDecimal wraps a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds to cents (half away from zero)
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// RoundDollar rounds to the nearest whole dollar (half away from zero).
func (m Money) RoundDollar() Money {
	return Money{m.Decimal.Round(0)}
}

// Times applies a multiplier such as a payment premium or a pricing factor
func (m Money) Times(multiplier decimal.Decimal) Money {
	return Money{m.Decimal.Mul(multiplier)}
}

// Per divides the amount into n equal installments. n <= 0 returns zero.
func (m Money) Per(n int) Money {
	if n <= 0 {
		return Zero()
	}
	return Money{m.Decimal.Div(decimal.NewFromInt(int64(n)))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// FloorAtZero returns zero for negative amounts
func (m Money) FloorAtZero() Money {
	if m.Decimal.IsNegative() {
		return Zero()
	}
	return m
}

// Clamp bounds the amount by optional lower and upper limits. A nil limit is
// treated as unbounded on that side.
func (m Money) Clamp(lower, upper *decimal.Decimal) Money {
	out := m
	if lower != nil && out.Decimal.LessThan(*lower) {
		out = Money{*lower}
	}
	if upper != nil && out.Decimal.GreaterThan(*upper) {
		out = Money{*upper}
	}
	return out
}

// GreaterThan checks if this amount is greater than another
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// LessThan checks if this amount is less than another
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Equal checks if this amount equals another
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// Min returns the smallest of the given amounts
func Min(first Money, rest ...Money) Money {
	out := first
	for _, m := range rest {
		if m.LessThan(out) {
			out = m
		}
	}
	return out
}

// Max returns the largest of the given amounts
func Max(first Money, rest ...Money) Money {
	out := first
	for _, m := range rest {
		if m.GreaterThan(out) {
			out = m
		}
	}
	return out
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String renders the amount with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as whole US dollars with thousands separators,
// e.g. "$12,345" or "-$800".
func (m Money) Format() string {
	s := m.Decimal.Round(0).Abs().StringFixed(0)
	var grouped []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, s[i])
	}
	if m.Decimal.Round(0).IsNegative() {
		return "-$" + string(grouped)
	}
	return "$" + string(grouped)
}
