package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ThresholdEntry is one bracket of a range table: the factor applies to values
// at or above Threshold up to the next entry's threshold.
type ThresholdEntry struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Factor    decimal.Decimal `yaml:"factor" json:"factor"`
}

// ThresholdTable is ordered ascending by threshold
type ThresholdTable []ThresholdEntry

// CountEntry maps a discrete count to a factor
type CountEntry struct {
	Key    int             `yaml:"key" json:"key"`
	Factor decimal.Decimal `yaml:"factor" json:"factor"`
}

// CountTable is keyed by contiguous counts starting at 1. Counts past the last
// key saturate at the last entry.
type CountTable []CountEntry

// MaxKey returns the largest key, or 0 for an empty table
func (t CountTable) MaxKey() int {
	max := 0
	for _, e := range t {
		if e.Key > max {
			max = e.Key
		}
	}
	return max
}

// PropertyTypeEntry carries the pricing factor and the recovery period for a
// property type.
type PropertyTypeEntry struct {
	Type              PropertyType       `yaml:"type" json:"type"`
	Factor            decimal.Decimal    `yaml:"factor" json:"factor"`
	DepreciationYears DepreciationMethod `yaml:"depreciation_years" json:"depreciation_years"`
}

// PropertyTypeTable is an exact-match table on property type
type PropertyTypeTable []PropertyTypeEntry

// Find returns the entry for a property type
func (t PropertyTypeTable) Find(pt PropertyType) (PropertyTypeEntry, bool) {
	for _, e := range t {
		if e.Type == pt {
			return e, true
		}
	}
	return PropertyTypeEntry{}, false
}

// LookupTables is the full factor dataset. The YAML layout matches the keyed
// dataset format loaded at startup.
type LookupTables struct {
	CostBasis          ThresholdTable    `yaml:"cost_basis" json:"cost_basis"`
	ZipCode            ThresholdTable    `yaml:"zip_code" json:"zip_code"`
	SqFt               ThresholdTable    `yaml:"sqft" json:"sqft"`
	Acres              ThresholdTable    `yaml:"acres" json:"acres"`
	PropertyType       PropertyTypeTable `yaml:"property_type" json:"property_type"`
	Floors             CountTable        `yaml:"floors" json:"floors"`
	MultipleProperties CountTable        `yaml:"multiple_properties" json:"multiple_properties"`
}

// Clone returns a copy that shares no slices with t
func (t LookupTables) Clone() LookupTables {
	return LookupTables{
		CostBasis:          append(ThresholdTable(nil), t.CostBasis...),
		ZipCode:            append(ThresholdTable(nil), t.ZipCode...),
		SqFt:               append(ThresholdTable(nil), t.SqFt...),
		Acres:              append(ThresholdTable(nil), t.Acres...),
		PropertyType:       append(PropertyTypeTable(nil), t.PropertyType...),
		Floors:             append(CountTable(nil), t.Floors...),
		MultipleProperties: append(CountTable(nil), t.MultipleProperties...),
	}
}

// Validate checks the ordering and shape rules lookups depend on. An unsorted
// threshold table resolves silently to wrong brackets, so it is rejected here.
func (t LookupTables) Validate() error {
	thresholds := []struct {
		name  string
		table ThresholdTable
	}{
		{"cost_basis", t.CostBasis},
		{"zip_code", t.ZipCode},
		{"sqft", t.SqFt},
		{"acres", t.Acres},
	}
	for _, th := range thresholds {
		if err := th.table.Validate(); err != nil {
			return fmt.Errorf("%s: %w", th.name, err)
		}
	}

	if len(t.PropertyType) == 0 {
		return fmt.Errorf("property_type: table is empty")
	}
	seen := make(map[PropertyType]bool, len(t.PropertyType))
	for _, e := range t.PropertyType {
		if e.Type == "" {
			return fmt.Errorf("property_type: entry with empty type")
		}
		if seen[e.Type] {
			return fmt.Errorf("property_type: duplicate type %q", e.Type)
		}
		seen[e.Type] = true
		if e.Factor.IsNegative() {
			return fmt.Errorf("property_type: %s factor cannot be negative", e.Type)
		}
		if e.DepreciationYears <= 0 {
			return fmt.Errorf("property_type: %s depreciation_years must be positive", e.Type)
		}
	}

	if err := t.Floors.Validate(); err != nil {
		return fmt.Errorf("floors: %w", err)
	}
	if err := t.MultipleProperties.Validate(); err != nil {
		return fmt.Errorf("multiple_properties: %w", err)
	}
	return nil
}

// Validate requires a non-empty, strictly ascending table with non-negative factors
func (t ThresholdTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("table is empty")
	}
	for i, e := range t {
		if e.Factor.IsNegative() {
			return fmt.Errorf("entry %d: factor cannot be negative", i)
		}
		if i > 0 && !e.Threshold.GreaterThan(t[i-1].Threshold) {
			return fmt.Errorf("entry %d: threshold %s is not greater than %s", i, e.Threshold, t[i-1].Threshold)
		}
	}
	return nil
}

// Validate requires keys 1..n in order with non-negative factors
func (t CountTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("table is empty")
	}
	for i, e := range t {
		if e.Key != i+1 {
			return fmt.Errorf("entry %d: expected key %d, got %d", i, i+1, e.Key)
		}
		if e.Factor.IsNegative() {
			return fmt.Errorf("entry %d: factor cannot be negative", i)
		}
	}
	return nil
}
