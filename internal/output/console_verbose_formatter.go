package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/costseg/quote-engine/internal/domain"
	"github.com/costseg/quote-engine/pkg/dateutil"
)

// ConsoleVerboseFormatter renders the full quote report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.QuoteResult) ([]byte, error) {
	var buf bytes.Buffer
	in := result.Input

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "COST SEGREGATION QUOTE")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "Quote ID:     %s\n", result.QuoteID)
	fmt.Fprintf(&buf, "Generated:    %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&buf, "Product:      %s\n", result.ProductType)
	fmt.Fprintf(&buf, "Prepared for: %s\n", in.OwnerName)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PROPERTY")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintf(&buf, "Address:        %s (%s)\n", in.PropertyAddress, in.ZipCode)
	fmt.Fprintf(&buf, "Type:           %s\n", in.PropertyType)
	fmt.Fprintf(&buf, "Building:       %s sq ft, %d floor(s)\n", in.SqFtBuilding.String(), in.NumberOfFloors)
	fmt.Fprintf(&buf, "Land:           %s acres\n", in.AcresLand.String())
	if in.YearBuilt > 0 {
		fmt.Fprintf(&buf, "Built:          %d (%d years old at purchase)\n", in.YearBuilt, dateutil.BuildingAge(in.YearBuilt, in.PurchaseDate))
	}
	fmt.Fprintf(&buf, "Purchased:      %s (%d months in service in year one)\n", in.PurchaseDate.Format("2006-01-02"), dateutil.MonthsInService(in.PurchaseDate))
	fmt.Fprintf(&buf, "Purchase Price: %s\n", FormatCurrency(result.Property.PurchasePrice))
	fmt.Fprintf(&buf, "Land Value:     %s\n", FormatCurrency(result.Property.LandValue))
	fmt.Fprintf(&buf, "Building Value: %s\n", FormatCurrency(result.Property.BuildingValue))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(result) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writePricing(&buf, result)
	writePayments(&buf, result.PaymentOptions)
	writeSchedule(&buf, result)

	h := AnalyzeQuote(result)
	fmt.Fprintln(&buf, "TAX BENEFITS")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintf(&buf, "Year One:          %s\n", FormatCurrency(result.TaxBenefits.YearOne))
	fmt.Fprintf(&buf, "Over Period:       %s\n", FormatCurrency(result.TaxBenefits.TotalOverPeriod))
	fmt.Fprintf(&buf, "Tax Rate:          %s\n", FormatRate(result.TaxBenefits.EstimatedTaxRate))
	fmt.Fprintf(&buf, "Return on Fee:     %sx\n", result.TaxBenefits.ReturnOnFee.StringFixed(2))
	if result.Comparison.BreakEvenReached {
		fmt.Fprintf(&buf, "Break-even Year:   %d\n", result.Comparison.BreakEvenYear)
	} else {
		fmt.Fprintln(&buf, "Break-even Year:   not reached")
	}
	if h.PaybackYear > 0 {
		fmt.Fprintf(&buf, "Fee Recovered:     year %d\n", h.PaybackYear)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "WARNINGS")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		for _, w := range result.Warnings {
			fmt.Fprintf(&buf, "⚠️  %s\n", w)
		}
	}
	return buf.Bytes(), nil
}

func writePricing(w io.Writer, result *domain.QuoteResult) {
	fmt.Fprintln(w, "PRICING")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	f := result.Factors
	fmt.Fprintf(w, "Factors: cost=%s zip=%s sqft=%s acres=%s type=%s floors=%s multi=%s\n",
		FormatFactor(f.CostBasis), FormatFactor(f.ZipCode), FormatFactor(f.SqFt), FormatFactor(f.Acres),
		FormatFactor(f.PropertyType), FormatFactor(f.Floors), FormatFactor(f.MultipleProperties))
	rows := []struct {
		model domain.PricingModel
		label string
		value string
	}{
		{domain.ModelBase, "Base Quote", FormatCents(result.BaseQuote)},
		{domain.ModelNaturalLog, "Natural Log Quote", FormatCents(result.NaturalLogQuote)},
		{domain.ModelMultipleProperties, "Multiple Properties Quote", FormatCents(result.MultiplePropertiesQuote)},
		{domain.ModelCostMethod, "Cost Method Quote", FormatCents(result.CostMethodQuote)},
	}
	for _, r := range rows {
		marker := " "
		if r.model == result.WinningModel {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-27s %15s\n", marker, r.label, r.value)
	}
	fmt.Fprintf(w, "  %-27s %15s (%s)\n", "FINAL BID", FormatCurrency(result.FinalBid), result.WinningModel)
	fmt.Fprintln(w)
}

func writePayments(w io.Writer, po domain.PaymentOptions) {
	fmt.Fprintln(w, "PAYMENT OPTIONS")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Upfront:      %s\n", FormatCurrency(po.Upfront))
	fmt.Fprintf(w, "Split:        %s (%d x %s)\n", FormatCurrency(po.SplitTotal), po.SplitPayments, FormatCurrency(po.SplitPerPayment))
	fmt.Fprintf(w, "Installments: %s (%d x %s)\n", FormatCurrency(po.InstallmentTotal), po.InstallmentPeriods, FormatCurrency(po.InstallmentPerPeriod))
	if po.RushFee != nil {
		fmt.Fprintf(w, "Rush Fee:     %s\n", FormatCurrency(*po.RushFee))
	}
	fmt.Fprintln(w)
}

func writeSchedule(w io.Writer, result *domain.QuoteResult) {
	fmt.Fprintln(w, "DEPRECIATION SCHEDULE")
	fmt.Fprintln(w, strings.Repeat("=", 96))
	fmt.Fprintf(w, "%-6s %16s %16s %16s %16s %18s\n", "Year", "Cost Seg", "Standard", "Traditional", "Bonus", "Cumulative")
	fmt.Fprintln(w, strings.Repeat("-", 96))
	for _, y := range result.DepreciationSchedule {
		fmt.Fprintf(w, "%-6d %16s %16s %16s %16s %18s\n",
			y.Year,
			FormatCurrency(y.CostSegEstimate),
			FormatCurrency(y.StandardDepreciation),
			FormatCurrency(y.TraditionalCostSeg),
			FormatCurrency(y.BonusDepreciation),
			FormatCurrency(y.CumulativeSavings),
		)
	}
	t := result.Comparison.TotalSavings
	fmt.Fprintln(w, strings.Repeat("-", 96))
	fmt.Fprintf(w, "%-6s %16s %16s %16s %16s\n", "Total",
		FormatCurrency(t.TotalCostSeg), FormatCurrency(t.TotalStandard), "", FormatCurrency(t.TotalBonus))
	fmt.Fprintf(w, "Cost seg vs standard: %s   Bonus vs standard: %s\n",
		FormatCurrency(t.StandardVsCostSeg), FormatCurrency(t.StandardVsBonus))
	fmt.Fprintln(w)
}
