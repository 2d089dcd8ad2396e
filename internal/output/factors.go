package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/costseg/quote-engine/internal/domain"
)

// FormatLookupTables renders every factor table for the console.
func FormatLookupTables(tables domain.LookupTables) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PRICING FACTOR TABLES")
	fmt.Fprintln(&buf, "================================")
	writeThresholds(&buf, "Cost Basis (purchase price)", tables.CostBasis)
	writeThresholds(&buf, "Zip Code (2-digit prefix)", tables.ZipCode)
	writeThresholds(&buf, "Square Feet", tables.SqFt)
	writeThresholds(&buf, "Acres", tables.Acres)

	fmt.Fprintln(&buf, "Property Type")
	for _, e := range tables.PropertyType {
		fmt.Fprintf(&buf, "  %-22s %8s  %s-year\n", e.Type, FormatFactor(e.Factor), e.DepreciationYears.Years().String())
	}
	fmt.Fprintln(&buf)

	writeCounts(&buf, "Floors", tables.Floors)
	writeCounts(&buf, "Multiple Properties", tables.MultipleProperties)
	return buf.Bytes()
}

func writeThresholds(w io.Writer, title string, t domain.ThresholdTable) {
	fmt.Fprintln(w, title)
	for _, e := range t {
		fmt.Fprintf(w, "  >= %-18s %8s\n", e.Threshold.String(), FormatFactor(e.Factor))
	}
	fmt.Fprintln(w)
}

func writeCounts(w io.Writer, title string, t domain.CountTable) {
	fmt.Fprintln(w, title)
	for i, e := range t {
		label := intToString(e.Key)
		if i == len(t)-1 {
			label += "+"
		}
		fmt.Fprintf(w, "  %-21s %8s\n", label, FormatFactor(e.Factor))
	}
	fmt.Fprintln(w)
}
