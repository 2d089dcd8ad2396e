package output

import (
	"bytes"
	"encoding/csv"

	"github.com/costseg/quote-engine/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per quote).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

var csvSummaryHeader = []string{
	"QuoteID", "ProductType", "PropertyType", "ZipCode", "PurchasePrice", "LandValue", "BuildingValue",
	"BaseQuote", "NaturalLogQuote", "MultiplePropertiesQuote", "CostMethodQuote",
	"FinalBid", "WinningModel", "Upfront", "SplitTotal", "InstallmentTotal",
	"YearOneBenefit", "TotalBenefit", "ReturnOnFee", "BreakEvenYear", "BreakEvenReached",
}

func (c CSVSummarizer) Format(result *domain.QuoteResult) ([]byte, error) {
	return FormatSummaryRows([]*domain.QuoteResult{result})
}

// FormatSummaryRows writes one summary row per quote under a shared header,
// used for batch runs.
func FormatSummaryRows(results []*domain.QuoteResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvSummaryHeader); err != nil {
		return nil, err
	}
	for _, r := range results {
		row := []string{
			r.QuoteID,
			string(r.ProductType),
			string(r.Input.PropertyType),
			r.Input.ZipCode,
			r.Property.PurchasePrice.StringFixed(2),
			r.Property.LandValue.StringFixed(2),
			r.Property.BuildingValue.StringFixed(2),
			r.BaseQuote.StringFixed(2),
			r.NaturalLogQuote.StringFixed(2),
			r.MultiplePropertiesQuote.StringFixed(2),
			r.CostMethodQuote.StringFixed(2),
			r.FinalBid.StringFixed(2),
			string(r.WinningModel),
			r.PaymentOptions.Upfront.StringFixed(2),
			r.PaymentOptions.SplitTotal.StringFixed(2),
			r.PaymentOptions.InstallmentTotal.StringFixed(2),
			r.TaxBenefits.YearOne.StringFixed(2),
			r.TaxBenefits.TotalOverPeriod.StringFixed(2),
			r.TaxBenefits.ReturnOnFee.StringFixed(2),
			intToString(r.Comparison.BreakEvenYear),
			boolToString(r.Comparison.BreakEvenReached),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
