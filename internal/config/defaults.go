package config

import (
	"github.com/costseg/quote-engine/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func thresholds(pairs ...string) domain.ThresholdTable {
	table := make(domain.ThresholdTable, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		table = append(table, domain.ThresholdEntry{Threshold: dec(pairs[i]), Factor: dec(pairs[i+1])})
	}
	return table
}

func counts(factors ...string) domain.CountTable {
	table := make(domain.CountTable, len(factors))
	for i, f := range factors {
		table[i] = domain.CountEntry{Key: i + 1, Factor: dec(f)}
	}
	return table
}

// DefaultLookupTables returns the factor tables of the pricing spreadsheet.
// The zip code table is keyed on the first two digits of the zip.
func DefaultLookupTables() domain.LookupTables {
	return domain.LookupTables{
		CostBasis: thresholds(
			"0", "1.0",
			"250000", "1.01",
			"500000", "1.02",
			"750000", "1.03",
			"1000000", "1.075",
			"1500000", "1.15",
			"2000000", "1.3",
			"3000000", "1.35",
			"5000000", "1.4",
			"10000000", "1.5",
		),
		ZipCode: thresholds(
			"0", "1.0",
			"10", "1.11",
			"20", "1.08",
			"30", "1.0",
			"40", "1.02",
			"60", "1.05",
			"70", "1.0",
			"80", "1.03",
			"85", "1.02",
			"90", "1.09",
			"94", "1.11",
			"98", "1.07",
		),
		SqFt: thresholds(
			"0", "1.0",
			"1000", "1.0",
			"2500", "1.02",
			"5000", "1.05",
			"10000", "1.08",
			"15000", "1.1",
			"25000", "1.15",
			"35000", "1.18",
			"45000", "1.2",
			"55000", "1.22",
		),
		Acres: thresholds(
			"0", "0.75",
			"0.25", "0.85",
			"0.5", "1.0",
			"1", "1.05",
			"2", "1.1",
			"3", "1.15",
			"5", "1.2",
			"7", "1.25",
			"9", "1.3",
		),
		PropertyType: domain.PropertyTypeTable{
			{Type: domain.PropertyIndustrial, Factor: dec("1.01"), DepreciationYears: domain.Commercial39},
			{Type: domain.PropertyMedical, Factor: dec("1.01"), DepreciationYears: domain.Commercial39},
			{Type: domain.PropertyOffice, Factor: dec("1.0"), DepreciationYears: domain.Commercial39},
			{Type: domain.PropertyOther, Factor: dec("1.0"), DepreciationYears: domain.Commercial39},
			{Type: domain.PropertyRestaurant, Factor: dec("1.01"), DepreciationYears: domain.Commercial39},
			{Type: domain.PropertyRetail, Factor: dec("0.85"), DepreciationYears: domain.Commercial39},
			{Type: domain.PropertyWarehouse, Factor: dec("0.4"), DepreciationYears: domain.Commercial39},
			{Type: domain.PropertyMultiFamily, Factor: dec("0.4"), DepreciationYears: domain.Residential275},
			{Type: domain.PropertyResidentialLTR, Factor: dec("0.7"), DepreciationYears: domain.Residential275},
			{Type: domain.PropertyShortTermRental, Factor: dec("0.7"), DepreciationYears: domain.Residential275},
		},
		Floors:             counts("1.0", "1.0", "1.05", "1.1", "1.1", "1.15", "1.15", "1.2", "1.2", "1.3", "1.3", "1.4"),
		MultipleProperties: counts("1.0", "0.9", "0.85", "0.8", "0.75", "0.7"),
	}
}

// Default returns the production calculator configuration
func Default() domain.CalculatorConfig {
	rush := dec("1500")
	min := dec("3000")
	max := dec("100000")

	return domain.CalculatorConfig{
		LookupTables: DefaultLookupTables(),
		Pricing: domain.PricingConfig{
			// 0.0572355 * 0.25 * 0.08
			CostBasisRate: dec("0.00114471"),
			BaseFee:       dec("4000"),
			LogOffset:     dec("2000"),
			LogSteepness:  dec("5"),
			CostEstimate: domain.CostEstimateConfig{
				EngagementFee: dec("6000"),
				TierBase:      dec("1000"),
				TierCap:       dec("2000"),
				Tiers: []domain.RateTier{
					{Threshold: dec("0"), Rate: dec("0.5")},
					{Threshold: dec("2400"), Rate: dec("0.7")},
					{Threshold: dec("100000"), Rate: dec("0.8")},
					{Threshold: dec("300000"), Rate: dec("0.9")},
				},
			},
		},
		LandValue: domain.LandValueConfig{
			Floor:   dec("0.10"),
			PerAcre: dec("0.02"),
			Ceiling: dec("0.25"),
		},
		Depreciation: domain.DepreciationConfig{
			MACRSRates:     []decimal.Decimal{dec("0.20"), dec("0.32"), dec("0.192"), dec("0.1152"), dec("0.1152"), dec("0.0576")},
			BonusRate:      dec("0.8"),
			BonusCarveOut:  dec("0.30"),
			YearsToProject: 15,
			TaxRate:        dec("0.35"),
		},
		Payments: domain.PaymentMultipliers{
			Upfront:           dec("0.95"),
			Split:             dec("1.1"),
			Installment:       dec("1.2"),
			SplitPayments:     2,
			InstallmentMonths: 12,
		},
		Validation: domain.ValidationLimits{
			MaxPurchasePrice:   dec("50000000"),
			MinPurchasePrice:   dec("50000"),
			MaxSqFt:            dec("500000"),
			MaxFloors:          20,
			MaxAcres:           dec("100"),
			MaxCapExPriceRatio: dec("0.5"),
		},
		RushFee:      &rush,
		MinimumQuote: &min,
		MaximumQuote: &max,
	}
}
