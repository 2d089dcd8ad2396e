package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) Money {
	t.Helper()
	d, err := stddec.NewFromString(s)
	require.NoError(t, err)
	return NewMoneyFromDecimal(d)
}

func TestConstructors(t *testing.T) {
	d := stddec.NewFromFloat(10.125)
	assert.True(t, NewMoneyFromDecimal(d).Decimal.Equal(d))
	assert.Equal(t, "3100", NewMoneyFromInt(3100).Decimal.String())
}

func TestRoundDollar(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"3774.20", "3774"},
		{"3774.50", "3775"},
		{"5499.49", "5499"},
		{"-12.5", "-13"},
	}
	for _, c := range cases {
		assert.Equal(t, c.out, money(t, c.in).RoundDollar().Decimal.String(), "round(%s)", c.in)
	}
}

func TestTimesAndPer(t *testing.T) {
	bid := NewMoneyFromInt(10000)
	assert.Equal(t, "9500", bid.Times(stddec.NewFromFloat(0.95)).RoundDollar().Decimal.String())
	assert.Equal(t, "1000", bid.Times(stddec.NewFromFloat(1.2)).Per(12).RoundDollar().Decimal.String())
	assert.True(t, bid.Per(0).IsZero())
}

func TestClampAndFloor(t *testing.T) {
	low := stddec.NewFromInt(3000)
	high := stddec.NewFromInt(100000)

	assert.Equal(t, "3000", NewMoneyFromInt(1200).Clamp(&low, &high).Decimal.String())
	assert.Equal(t, "100000", NewMoneyFromInt(250000).Clamp(&low, &high).Decimal.String())
	assert.Equal(t, "4500", NewMoneyFromInt(4500).Clamp(&low, &high).Decimal.String())
	assert.Equal(t, "1200", NewMoneyFromInt(1200).Clamp(nil, nil).Decimal.String())

	assert.True(t, NewMoneyFromInt(-5).FloorAtZero().IsZero())
	assert.Equal(t, "5", NewMoneyFromInt(5).FloorAtZero().Decimal.String())
}

func TestMinMax(t *testing.T) {
	a, b, c := NewMoneyFromInt(5000), NewMoneyFromInt(4800), NewMoneyFromInt(4900)
	assert.True(t, Min(a, b, c).Equal(b))
	assert.True(t, Max(a, b, c).Equal(a))
	assert.True(t, Min(a).Equal(a))
	assert.False(t, a.Equal(b))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$0", Zero().Format())
	assert.Equal(t, "$999", NewMoneyFromInt(999).Format())
	assert.Equal(t, "$1,000", NewMoneyFromInt(1000).Format())
	assert.Equal(t, "$2,550,000", NewMoneyFromInt(2550000).Format())
	assert.Equal(t, "-$12,346", money(t, "-12345.6").Format())
}
