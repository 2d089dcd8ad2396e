package output

import (
	"strconv"

	money "github.com/costseg/quote-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as whole US dollars with thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatCents formats a decimal as USD with 2 decimals.
func FormatCents(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }

// FormatPercentage formats an already-scaled percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate renders a fraction (0.35) as a percentage (35.0%).
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimalHundred).StringFixed(1) + "%"
}

// FormatFactor renders a pricing factor with four decimals.
func FormatFactor(f decimal.Decimal) string { return f.StringFixed(4) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
