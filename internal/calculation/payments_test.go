package calculation

import (
	"testing"

	"github.com/costseg/quote-engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentPlan(t *testing.T) {
	cfg := config.Default()

	opts := PaymentPlan(d("10000"), false, cfg.Payments, cfg.RushFee)

	assert.True(t, opts.Upfront.Equal(d("9500")))
	assert.True(t, opts.SplitTotal.Equal(d("11000")))
	assert.True(t, opts.SplitPerPayment.Equal(d("5500")))
	assert.True(t, opts.InstallmentTotal.Equal(d("12000")))
	assert.True(t, opts.InstallmentPerPeriod.Equal(d("1000")))
	assert.Equal(t, 2, opts.SplitPayments)
	assert.Equal(t, 12, opts.InstallmentPeriods)
	assert.Nil(t, opts.RushFee, "no rush fee unless the order is a rush")
}

func TestPaymentPlan_IndependentRounding(t *testing.T) {
	cfg := config.Default()

	opts := PaymentPlan(d("3333"), false, cfg.Payments, nil)

	// 3333 * 0.95 = 3166.35
	assert.True(t, opts.Upfront.Equal(d("3166")), "got %s", opts.Upfront)
	// 3333 * 1.1 = 3666.3
	assert.True(t, opts.SplitTotal.Equal(d("3666")), "got %s", opts.SplitTotal)
	assert.True(t, opts.SplitPerPayment.Equal(d("1833")), "got %s", opts.SplitPerPayment)
	// 3333 * 1.2 = 3999.6, 4000 / 12 = 333.33
	assert.True(t, opts.InstallmentTotal.Equal(d("4000")), "got %s", opts.InstallmentTotal)
	assert.True(t, opts.InstallmentPerPeriod.Equal(d("333")), "got %s", opts.InstallmentPerPeriod)
	assert.False(t, opts.InstallmentPerPeriod.Mul(d("12")).Equal(opts.InstallmentTotal))
}

func TestPaymentPlan_RushFee(t *testing.T) {
	cfg := config.Default()

	rush := PaymentPlan(d("5000"), true, cfg.Payments, cfg.RushFee)
	require.NotNil(t, rush.RushFee)
	assert.True(t, rush.RushFee.Equal(d("1500")))
	assert.True(t, rush.Upfront.Equal(d("4750")), "rush fee is not folded into totals")

	unconfigured := PaymentPlan(d("5000"), true, cfg.Payments, nil)
	assert.Nil(t, unconfigured.RushFee)
}
