package calculation

import (
	"testing"

	"github.com/costseg/quote-engine/internal/config"
	"github.com/costseg/quote-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercentOfPriceEstimator(t *testing.T) {
	est := NewPercentOfPriceEstimator(config.Default().LandValue)

	tests := []struct {
		acres    string
		expected string
	}{
		{"0", "0.10"},
		{"0.78", "0.1156"},
		{"5", "0.20"},
		{"7.5", "0.25"},
		{"40", "0.25"},
		{"-3", "0.10"},
	}
	for _, tt := range tests {
		t.Run(tt.acres, func(t *testing.T) {
			got := est.Percent(d(tt.acres))
			assert.True(t, got.Equal(d(tt.expected)), "expected %s, got %s", tt.expected, got)
		})
	}

	land := est.EstimateLandValue(d("2550000"), d("0.78"))
	assert.True(t, land.Equal(d("294780")), "got %s", land)
}

func TestPercentOfPriceEstimator_MonotonicAndBounded(t *testing.T) {
	cfg := config.Default().LandValue
	est := NewPercentOfPriceEstimator(cfg)

	prevByAcres := decimal.Zero
	for acres := 0; acres <= 40; acres++ {
		price := d("1000000")
		land := est.EstimateLandValue(price, decimal.NewFromInt(int64(acres)))
		assert.False(t, land.LessThan(prevByAcres), "acres %d", acres)
		assert.False(t, land.LessThan(price.Mul(cfg.Floor)), "acres %d below floor", acres)
		assert.False(t, land.GreaterThan(price.Mul(cfg.Ceiling)), "acres %d above ceiling", acres)
		prevByAcres = land
	}

	prevByPrice := decimal.Zero
	for price := int64(100_000); price <= 10_000_000; price += 100_000 {
		land := est.EstimateLandValue(decimal.NewFromInt(price), d("2"))
		assert.False(t, land.LessThan(prevByPrice), "price %d", price)
		prevByPrice = land
	}
}

type fixedLand struct{ value decimal.Decimal }

func (f fixedLand) EstimateLandValue(price, acres decimal.Decimal) decimal.Decimal { return f.value }

func TestValuate(t *testing.T) {
	tables := config.DefaultLookupTables()
	est := NewPercentOfPriceEstimator(config.Default().LandValue)

	t.Run("scenario", func(t *testing.T) {
		p := Valuate(scenarioInput(), tables, est)
		assert.True(t, p.LandValue.Equal(d("294780")))
		assert.True(t, p.BuildingValue.Equal(d("2305220")), "got %s", p.BuildingValue)
		assert.Equal(t, domain.Residential275, p.DepreciationMethod)
	})

	t.Run("large capex exceeds purchase price", func(t *testing.T) {
		in := scenarioInput()
		in.PurchasePrice = d("100000")
		in.AcresLand = decimal.Zero
		in.CapEx = d("200000")
		p := Valuate(in, tables, est)
		assert.True(t, p.BuildingValue.Equal(d("290000")), "got %s", p.BuildingValue)
		assert.True(t, p.BuildingValue.GreaterThan(in.PurchasePrice))
	})

	t.Run("prior depreciation reduces the building", func(t *testing.T) {
		in := scenarioInput()
		prior := d("100000")
		in.AccumulatedDepreciation = &prior
		p := Valuate(in, tables, fixedLand{value: d("500000")})
		assert.True(t, p.BuildingValue.Equal(d("2000000")), "got %s", p.BuildingValue)
		assert.True(t, p.AccumulatedDepreciation.Equal(prior))
	})
}

func TestDepreciationMethodFor(t *testing.T) {
	table := config.DefaultLookupTables().PropertyType

	residential := []domain.PropertyType{domain.PropertyMultiFamily, domain.PropertyResidentialLTR, domain.PropertyShortTermRental}
	for _, pt := range domain.AllPropertyTypes {
		want := domain.Commercial39
		for _, r := range residential {
			if pt == r {
				want = domain.Residential275
			}
		}
		assert.Equal(t, want, DepreciationMethodFor(pt, table), string(pt))
	}
	assert.Equal(t, domain.Commercial39, DepreciationMethodFor("Castle", table))
}
