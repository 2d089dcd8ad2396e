package output

import (
	"github.com/costseg/quote-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlights are the headline numbers a client reads first.
type Highlights struct {
	FinalBid     decimal.Decimal
	WinningModel domain.PricingModel
	// UpfrontDiscount is what paying in full saves against the final bid.
	UpfrontDiscount decimal.Decimal
	// YearOneMultiple is the year-one tax benefit divided by the final bid.
	YearOneMultiple decimal.Decimal
	// PaybackYear is the first projected year whose cumulative tax benefit
	// covers the final bid. Zero when it never does.
	PaybackYear int
	// LargestSavingsYear is the year with the biggest cost-seg advantage over
	// straight line.
	LargestSavingsYear int
	LargestSavings     decimal.Decimal
}

// AnalyzeQuote derives the client-facing highlights from a finished quote.
func AnalyzeQuote(result *domain.QuoteResult) Highlights {
	h := Highlights{
		FinalBid:        result.FinalBid,
		WinningModel:    result.WinningModel,
		UpfrontDiscount: result.FinalBid.Sub(result.PaymentOptions.Upfront),
	}
	if result.FinalBid.IsPositive() {
		h.YearOneMultiple = result.TaxBenefits.YearOne.Div(result.FinalBid).Round(2)
	}

	rate := result.TaxBenefits.EstimatedTaxRate
	prevCumulative := decimal.Zero
	for _, y := range result.Comparison.YearByYear {
		if h.PaybackYear == 0 && result.FinalBid.IsPositive() &&
			y.CumulativeSavings.Mul(rate).GreaterThanOrEqual(result.FinalBid) {
			h.PaybackYear = y.Year
		}
		diff := y.CumulativeSavings.Sub(prevCumulative)
		if h.LargestSavingsYear == 0 || diff.GreaterThan(h.LargestSavings) {
			h.LargestSavingsYear = y.Year
			h.LargestSavings = diff
		}
		prevCumulative = y.CumulativeSavings
	}
	return h
}
