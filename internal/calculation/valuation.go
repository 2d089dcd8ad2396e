package calculation

import (
	"github.com/costseg/quote-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// LandValueEstimator splits the land portion out of a purchase price.
// Implementations must be monotonic non-decreasing in both price and acres.
type LandValueEstimator interface {
	EstimateLandValue(price, acres decimal.Decimal) decimal.Decimal
}

// PercentOfPriceEstimator attributes a share of the price to land that grows
// linearly with acreage: pct = Floor + acres*PerAcre, clamped to
// [Floor, Ceiling]. The result is rounded to cents.
type PercentOfPriceEstimator struct {
	Floor   decimal.Decimal
	PerAcre decimal.Decimal
	Ceiling decimal.Decimal
}

// NewPercentOfPriceEstimator builds the estimator from configuration
func NewPercentOfPriceEstimator(cfg domain.LandValueConfig) PercentOfPriceEstimator {
	return PercentOfPriceEstimator{Floor: cfg.Floor, PerAcre: cfg.PerAcre, Ceiling: cfg.Ceiling}
}

// Percent returns the land share for an acreage
func (e PercentOfPriceEstimator) Percent(acres decimal.Decimal) decimal.Decimal {
	if acres.IsNegative() {
		acres = decimal.Zero
	}
	pct := e.Floor.Add(acres.Mul(e.PerAcre))
	if pct.LessThan(e.Floor) {
		pct = e.Floor
	}
	if pct.GreaterThan(e.Ceiling) {
		pct = e.Ceiling
	}
	return pct
}

func (e PercentOfPriceEstimator) EstimateLandValue(price, acres decimal.Decimal) decimal.Decimal {
	return price.Mul(e.Percent(acres)).Round(2)
}

// DepreciationMethodFor returns the recovery period for a property type.
// Types missing from the table are treated as commercial.
func DepreciationMethodFor(pt domain.PropertyType, table domain.PropertyTypeTable) domain.DepreciationMethod {
	if entry, ok := table.Find(pt); ok {
		return entry.DepreciationYears
	}
	return domain.Commercial39
}

// Valuate derives the land and building values for an input. The building
// value may exceed the purchase price when capex is large.
func Valuate(input domain.QuoteInput, tables domain.LookupTables, land LandValueEstimator) domain.PropertyData {
	prior := input.PriorDepreciation()
	landValue := land.EstimateLandValue(input.PurchasePrice, input.AcresLand)
	building := input.PurchasePrice.Sub(landValue).Sub(prior).Add(input.CapEx)

	return domain.PropertyData{
		PurchasePrice:           input.PurchasePrice,
		LandValue:               landValue,
		BuildingValue:           building,
		CapEx:                   input.CapEx,
		AccumulatedDepreciation: prior,
		DepreciationMethod:      DepreciationMethodFor(input.PropertyType, tables.PropertyType),
	}
}
