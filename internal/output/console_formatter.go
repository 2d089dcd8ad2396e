package output

import (
	"bytes"
	"fmt"

	"github.com/costseg/quote-engine/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.QuoteResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "QUOTE %s (%s)\n", result.QuoteID, result.ProductType)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Property: %s, %s\n", result.Input.PropertyAddress, result.Input.PropertyType)
	fmt.Fprintf(&buf, "Final Bid: %s (%s)\n", FormatCurrency(result.FinalBid), result.WinningModel)
	po := result.PaymentOptions
	fmt.Fprintf(&buf, "Upfront=%s Split=%dx%s Installment=%dx%s\n",
		FormatCurrency(po.Upfront),
		po.SplitPayments, FormatCurrency(po.SplitPerPayment),
		po.InstallmentPeriods, FormatCurrency(po.InstallmentPerPeriod),
	)
	if po.RushFee != nil {
		fmt.Fprintf(&buf, "Rush Fee=%s\n", FormatCurrency(*po.RushFee))
	}
	fmt.Fprintf(&buf, "Year-One Tax Benefit=%s Total=%s ROI=%sx\n",
		FormatCurrency(result.TaxBenefits.YearOne),
		FormatCurrency(result.TaxBenefits.TotalOverPeriod),
		result.TaxBenefits.ReturnOnFee.StringFixed(2),
	)
	h := AnalyzeQuote(result)
	if h.PaybackYear > 0 {
		fmt.Fprintf(&buf, "Fee recovered in year %d\n", h.PaybackYear)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(&buf, "Warning: %s\n", w)
	}
	return buf.Bytes(), nil
}
