package calculation

import (
	"testing"

	"github.com/costseg/quote-engine/internal/config"
	"github.com/costseg/quote-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates_Scenario(t *testing.T) {
	cfg := config.Default()
	in := scenarioInput()
	factors := ResolveFactors(in, cfg.LookupTables)

	baseAmount, c := Candidates(in, factors, cfg.Pricing)

	assert.True(t, baseAmount.Equal(d("6976.246")), "base amount %s", baseAmount)
	assert.True(t, c.Base.Equal(d("3700.2008784")), "base %s", c.Base)
	assert.True(t, c.MultipleProperties.Equal(d("6976.246")), "multiple properties %s", c.MultipleProperties)
	assert.True(t, c.CostMethod.Equal(d("3100")), "cost %s", c.CostMethod)
	assert.InDelta(t, 2790.4984, c.NaturalLog.InexactFloat64(), 0.01)
}

func TestCostMethodQuote_TierCap(t *testing.T) {
	cfg := config.Default().Pricing.CostEstimate
	office := domain.PricingFactors{PropertyType: d("1.0")}

	// 1000 + 0.7*5000 is capped at 2000
	assert.True(t, CostMethodQuote(d("5000"), office, cfg).Equal(d("8000")))
	// 1000 + 0.5*1000
	assert.True(t, CostMethodQuote(d("1000"), office, cfg).Equal(d("7500")))
	// tier boundary belongs to the higher tier: 1000 + 0.7*2400 capped
	assert.True(t, CostMethodQuote(d("2400"), office, cfg).Equal(d("8000")))
}

func TestLogisticQuote_Overflow(t *testing.T) {
	cfg := config.Default().Pricing
	cfg.LogOffset = d("1000000000")
	factors := domain.PricingFactors{PropertyType: d("1"), MultipleProperties: d("1")}

	got := LogisticQuote(d("4000"), factors, cfg)
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestSelectFinalBid(t *testing.T) {
	min := d("3000")
	max := d("100000")
	fractionalMin := d("3000.40")

	tests := []struct {
		name     string
		c        QuoteCandidates
		min, max *decimal.Decimal
		bid      string
		winner   domain.PricingModel
	}{
		{
			name:   "cheapest model above cost floor",
			c:      QuoteCandidates{Base: d("5000"), NaturalLog: d("4800"), MultipleProperties: d("4900"), CostMethod: d("4000")},
			bid:    "4800",
			winner: domain.ModelNaturalLog,
		},
		{
			name:   "cost floor wins",
			c:      QuoteCandidates{Base: d("5000"), NaturalLog: d("4800"), MultipleProperties: d("4900"), CostMethod: d("5500")},
			bid:    "5500",
			winner: domain.ModelCostMethod,
		},
		{
			name:   "minimum equal to cost keeps the model",
			c:      QuoteCandidates{Base: d("6000"), NaturalLog: d("6100"), MultipleProperties: d("6200"), CostMethod: d("6000")},
			bid:    "6000",
			winner: domain.ModelBase,
		},
		{
			name:   "portfolio discount is cheapest",
			c:      QuoteCandidates{Base: d("9000"), NaturalLog: d("8000"), MultipleProperties: d("7000"), CostMethod: d("3000")},
			bid:    "7000",
			winner: domain.ModelMultipleProperties,
		},
		{
			name:   "rounds half away from zero",
			c:      QuoteCandidates{Base: d("4800.5"), NaturalLog: d("9000"), MultipleProperties: d("9000"), CostMethod: d("100")},
			bid:    "4801",
			winner: domain.ModelBase,
		},
		{
			name:   "clamped up to minimum",
			c:      QuoteCandidates{Base: d("1000"), NaturalLog: d("1000"), MultipleProperties: d("1000"), CostMethod: d("500")},
			min:    &min,
			max:    &max,
			bid:    "3000",
			winner: domain.ModelMinimumQuote,
		},
		{
			name:   "clamped down to maximum",
			c:      QuoteCandidates{Base: d("250000"), NaturalLog: d("200000"), MultipleProperties: d("250000"), CostMethod: d("8000")},
			min:    &min,
			max:    &max,
			bid:    "100000",
			winner: domain.ModelMaximumQuote,
		},
		{
			name:   "tie between logistic and portfolio goes to logistic",
			c:      QuoteCandidates{Base: d("9000"), NaturalLog: d("7000"), MultipleProperties: d("7000"), CostMethod: d("3000")},
			bid:    "7000",
			winner: domain.ModelNaturalLog,
		},
		{
			name:   "fractional minimum still yields whole dollars",
			c:      QuoteCandidates{Base: d("1000"), NaturalLog: d("1000"), MultipleProperties: d("1000"), CostMethod: d("500")},
			min:    &fractionalMin,
			bid:    "3000",
			winner: domain.ModelMinimumQuote,
		},
		{
			name:   "unbounded when no limits configured",
			c:      QuoteCandidates{Base: d("250000"), NaturalLog: d("200000"), MultipleProperties: d("250000"), CostMethod: d("800")},
			bid:    "200000",
			winner: domain.ModelNaturalLog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bid, winner := SelectFinalBid(tt.c, tt.min, tt.max)
			assert.True(t, bid.Equal(d(tt.bid)), "expected %s, got %s", tt.bid, bid)
			assert.Equal(t, tt.winner, winner)
		})
	}
}

func TestPrice_FloorGuarantee(t *testing.T) {
	cfg := config.Default()
	cfg.MinimumQuote = nil
	cfg.MaximumQuote = nil

	prices := []string{"150000", "600000", "2550000", "8000000", "40000000"}
	sizes := []string{"800", "1500", "12000", "80000", "400000"}

	for _, pt := range domain.AllPropertyTypes {
		for _, price := range prices {
			for _, sqft := range sizes {
				in := scenarioInput()
				in.PropertyType = pt
				in.PurchasePrice = d(price)
				in.SqFtBuilding = d(sqft)

				factors := ResolveFactors(in, cfg.LookupTables)
				q := Price(in, factors, cfg)

				m := decimal.Min(q.Candidates.Base, q.Candidates.NaturalLog, q.Candidates.MultipleProperties)
				if m.LessThan(q.Candidates.CostMethod) {
					require.True(t, q.FinalBid.Equal(q.Candidates.CostMethod.Round(0)), "%s %s %s", pt, price, sqft)
				} else {
					require.True(t, q.FinalBid.Equal(m.Round(0)), "%s %s %s", pt, price, sqft)
				}
			}
		}
	}
}

func TestPrice_Scenario(t *testing.T) {
	cfg := config.Default()
	in := scenarioInput()
	q := Price(in, ResolveFactors(in, cfg.LookupTables), cfg)

	assert.True(t, q.FinalBid.Equal(d("3100")), "got %s", q.FinalBid)
	assert.True(t, q.FinalBid.GreaterThan(d("3000")))
	assert.Equal(t, domain.ModelCostMethod, q.Winner)
}
