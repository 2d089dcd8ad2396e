package output

import (
	"fmt"

	"github.com/costseg/quote-engine/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind a quote, taken
// from the values the calculation actually used.
func GenerateAssumptions(result *domain.QuoteResult) []string {
	p := result.Property
	out := []string{
		fmt.Sprintf("Land value estimated at %s (%s of purchase price)", FormatCurrency(p.LandValue), landShare(result)),
		fmt.Sprintf("Depreciable building basis: %s", FormatCurrency(p.BuildingValue)),
		fmt.Sprintf("Recovery period: %s years straight line", p.DepreciationMethod.Years().String()),
		fmt.Sprintf("Estimated marginal tax rate: %s", FormatRate(result.TaxBenefits.EstimatedTaxRate)),
		fmt.Sprintf("Projection horizon: %d years", len(result.DepreciationSchedule)),
	}
	if p.AccumulatedDepreciation.IsPositive() {
		out = append(out, fmt.Sprintf("Prior depreciation taken: %s", FormatCurrency(p.AccumulatedDepreciation)))
	}
	if len(result.DepreciationSchedule) > 0 && result.DepreciationSchedule[0].BonusDepreciation.IsZero() {
		out = append(out, "No bonus depreciation applied")
	}
	return out
}

func landShare(result *domain.QuoteResult) string {
	if !result.Property.PurchasePrice.IsPositive() {
		return "0.0%"
	}
	return FormatRate(result.Property.LandValue.Div(result.Property.PurchasePrice))
}
