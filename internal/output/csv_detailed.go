package output

import (
	"bytes"
	"encoding/csv"

	"github.com/costseg/quote-engine/internal/domain"
)

// CSVDetailedExporter writes the year-by-year depreciation schedule.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(result *domain.QuoteResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"QuoteID", "Year", "TaxYear", "CostSegEstimate", "StandardDepreciation", "TraditionalCostSeg", "BonusDepreciation", "CumulativeSavings"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, yr := range result.DepreciationSchedule {
		taxYear := ""
		if result.Input.TaxYear > 0 {
			taxYear = intToString(result.Input.TaxYear + yr.Year - 1)
		}
		row := []string{
			result.QuoteID,
			intToString(yr.Year),
			taxYear,
			yr.CostSegEstimate.StringFixed(2),
			yr.StandardDepreciation.StringFixed(2),
			yr.TraditionalCostSeg.StringFixed(2),
			yr.BonusDepreciation.StringFixed(2),
			yr.CumulativeSavings.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
