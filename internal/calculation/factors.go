package calculation

import (
	"strconv"

	"github.com/costseg/quote-engine/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// ResolveThreshold performs an approximate-match lookup: the factor of the
// greatest threshold that does not exceed value. Values below every threshold
// take the first entry's factor, and an empty table is neutral.
func ResolveThreshold(value decimal.Decimal, table domain.ThresholdTable) decimal.Decimal {
	if len(table) == 0 {
		return one
	}
	factor := table[0].Factor
	for _, entry := range table {
		if value.LessThan(entry.Threshold) {
			break
		}
		factor = entry.Factor
	}
	return factor
}

// ResolveExact looks up a property type, returning def on a miss
func ResolveExact(key domain.PropertyType, table domain.PropertyTypeTable, def decimal.Decimal) decimal.Decimal {
	if entry, ok := table.Find(key); ok {
		return entry.Factor
	}
	return def
}

// ResolveCount clamps n into the table's key range before an exact lookup, so
// counts past the last tier are priced at the last tier.
func ResolveCount(n int, table domain.CountTable) decimal.Decimal {
	if len(table) == 0 {
		return one
	}
	if max := table.MaxKey(); n > max {
		n = max
	}
	if n < table[0].Key {
		n = table[0].Key
	}
	for _, entry := range table {
		if entry.Key == n {
			return entry.Factor
		}
	}
	return one
}

// ZipPrefix returns the first two digits of a zip code, or 0 when they are not
// numeric.
func ZipPrefix(zip string) int {
	if len(zip) < 2 {
		return 0
	}
	prefix, err := strconv.Atoi(zip[:2])
	if err != nil || prefix < 0 {
		return 0
	}
	return prefix
}

// ResolveFactors resolves all seven pricing factors for an input. It never
// fails: unknown inputs fall back to a neutral or capped factor.
func ResolveFactors(input domain.QuoteInput, tables domain.LookupTables) domain.PricingFactors {
	return domain.PricingFactors{
		CostBasis:          ResolveThreshold(input.PurchasePrice, tables.CostBasis),
		ZipCode:            ResolveThreshold(decimal.NewFromInt(int64(ZipPrefix(input.ZipCode))), tables.ZipCode),
		SqFt:               ResolveThreshold(input.SqFtBuilding, tables.SqFt),
		Acres:              ResolveThreshold(input.AcresLand, tables.Acres),
		PropertyType:       ResolveExact(input.PropertyType, tables.PropertyType, one),
		Floors:             ResolveCount(input.NumberOfFloors, tables.Floors),
		MultipleProperties: ResolveCount(input.MultipleProperties, tables.MultipleProperties),
	}
}
