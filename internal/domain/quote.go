package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PropertyType is the building use class. Values must match the property type
// lookup table exactly.
type PropertyType string

const (
	PropertyIndustrial      PropertyType = "Industrial"
	PropertyMedical         PropertyType = "Medical"
	PropertyOffice          PropertyType = "Office"
	PropertyOther           PropertyType = "Other"
	PropertyRestaurant      PropertyType = "Restaurant"
	PropertyRetail          PropertyType = "Retail"
	PropertyWarehouse       PropertyType = "Warehouse"
	PropertyMultiFamily     PropertyType = "Multi-Family"
	PropertyResidentialLTR  PropertyType = "Residential/LTR"
	PropertyShortTermRental PropertyType = "Short-Term Rental"
)

// AllPropertyTypes lists every supported property type in table order.
var AllPropertyTypes = []PropertyType{
	PropertyIndustrial,
	PropertyMedical,
	PropertyOffice,
	PropertyOther,
	PropertyRestaurant,
	PropertyRetail,
	PropertyWarehouse,
	PropertyMultiFamily,
	PropertyResidentialLTR,
	PropertyShortTermRental,
}

// ProductType is the study tier being quoted
type ProductType string

const (
	ProductRCGV ProductType = "RCGV"
	ProductPro  ProductType = "Pro"
)

// Valid reports whether the product tier is offered
func (p ProductType) Valid() bool {
	return p == ProductRCGV || p == ProductPro
}

// DepreciationMethod is the legal recovery period in years for the building.
type DepreciationMethod float64

const (
	Residential275 DepreciationMethod = 27.5
	Commercial39   DepreciationMethod = 39
)

// Years returns the recovery period as a decimal
func (m DepreciationMethod) Years() decimal.Decimal {
	return decimal.NewFromFloat(float64(m))
}

// QuoteInput is everything the caller supplies for one quote.
type QuoteInput struct {
	PurchasePrice      decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	ZipCode            string          `yaml:"zip_code" json:"zip_code"`
	SqFtBuilding       decimal.Decimal `yaml:"sqft_building" json:"sqft_building"`
	AcresLand          decimal.Decimal `yaml:"acres_land" json:"acres_land"`
	PropertyType       PropertyType    `yaml:"property_type" json:"property_type"`
	NumberOfFloors     int             `yaml:"number_of_floors" json:"number_of_floors"`
	MultipleProperties int             `yaml:"multiple_properties" json:"multiple_properties"`

	PurchaseDate time.Time `yaml:"purchase_date" json:"purchase_date"`
	TaxYear      int       `yaml:"tax_year" json:"tax_year"`
	YearBuilt    int       `yaml:"year_built" json:"year_built"`

	CapEx decimal.Decimal `yaml:"capex" json:"capex"`
	// Depreciation already taken on the basis, e.g. carried over in a 1031 exchange.
	AccumulatedDepreciation *decimal.Decimal `yaml:"accumulated_depreciation,omitempty" json:"accumulated_depreciation,omitempty"`

	OwnerName       string `yaml:"owner_name" json:"owner_name"`
	PropertyAddress string `yaml:"property_address" json:"property_address"`

	ProductType ProductType `yaml:"product_type" json:"product_type"`
	RushOrder   bool        `yaml:"rush_order,omitempty" json:"rush_order,omitempty"`
}

// PriorDepreciation returns the accumulated depreciation or zero when absent
func (in QuoteInput) PriorDepreciation() decimal.Decimal {
	if in.AccumulatedDepreciation == nil {
		return decimal.Zero
	}
	return *in.AccumulatedDepreciation
}

// PropertyData holds the valuation derived once per calculation.
type PropertyData struct {
	PurchasePrice           decimal.Decimal    `json:"purchase_price"`
	LandValue               decimal.Decimal    `json:"land_value"`
	BuildingValue           decimal.Decimal    `json:"building_value"`
	CapEx                   decimal.Decimal    `json:"capex"`
	AccumulatedDepreciation decimal.Decimal    `json:"accumulated_depreciation"`
	DepreciationMethod      DepreciationMethod `json:"depreciation_method"`
}

// PricingFactors are the seven multipliers resolved from the lookup tables
type PricingFactors struct {
	CostBasis          decimal.Decimal `json:"cost_basis_factor"`
	ZipCode            decimal.Decimal `json:"zip_code_factor"`
	SqFt               decimal.Decimal `json:"sqft_factor"`
	Acres              decimal.Decimal `json:"acres_factor"`
	PropertyType       decimal.Decimal `json:"property_type_factor"`
	Floors             decimal.Decimal `json:"floors_factor"`
	MultipleProperties decimal.Decimal `json:"multiple_properties_factor"`
}

// Product multiplies all seven factors together
func (f PricingFactors) Product() decimal.Decimal {
	return f.CostBasis.
		Mul(f.ZipCode).
		Mul(f.SqFt).
		Mul(f.Acres).
		Mul(f.PropertyType).
		Mul(f.Floors).
		Mul(f.MultipleProperties)
}

// PricingModel names the rule that produced the final bid.
type PricingModel string

const (
	ModelBase               PricingModel = "base"
	ModelNaturalLog         PricingModel = "natural_log"
	ModelMultipleProperties PricingModel = "multiple_properties"
	ModelCostMethod         PricingModel = "cost_method"
	ModelMinimumQuote       PricingModel = "minimum"
	ModelMaximumQuote       PricingModel = "maximum"
)

// PaymentOptions are the ways the client can pay the final bid. Every amount is
// rounded to whole dollars on its own.
type PaymentOptions struct {
	Upfront              decimal.Decimal `json:"upfront"`
	SplitTotal           decimal.Decimal `json:"split_total"`
	SplitPerPayment      decimal.Decimal `json:"split_per_payment"`
	SplitPayments        int             `json:"split_payments"`
	InstallmentTotal     decimal.Decimal `json:"installment_total"`
	InstallmentPerPeriod decimal.Decimal `json:"installment_per_period"`
	InstallmentPeriods   int             `json:"installment_periods"`
	// RushFee is nil unless the order is a rush and a fee is configured.
	RushFee *decimal.Decimal `json:"rush_fee,omitempty"`
}

// YearByYearData is one projected tax year
type YearByYearData struct {
	Year                 int             `json:"year"`
	CostSegEstimate      decimal.Decimal `json:"cost_seg_estimate"`
	StandardDepreciation decimal.Decimal `json:"standard_depreciation"`
	TraditionalCostSeg   decimal.Decimal `json:"traditional_cost_seg"`
	BonusDepreciation    decimal.Decimal `json:"bonus_depreciation"`
	CumulativeSavings    decimal.Decimal `json:"cumulative_savings"`
}

// SavingsTotals summarizes the projection horizon
type SavingsTotals struct {
	TotalCostSeg      decimal.Decimal `json:"total_cost_seg"`
	TotalStandard     decimal.Decimal `json:"total_standard"`
	TotalBonus        decimal.Decimal `json:"total_bonus"`
	StandardVsCostSeg decimal.Decimal `json:"standard_vs_cost_seg"`
	StandardVsBonus   decimal.Decimal `json:"standard_vs_bonus"`
}

// ComparisonTable compares cost segregation against straight-line depreciation.
type ComparisonTable struct {
	YearByYear       []YearByYearData `json:"year_by_year"`
	TotalSavings     SavingsTotals    `json:"total_savings"`
	BreakEvenYear    int              `json:"break_even_year"`
	BreakEvenReached bool             `json:"break_even_reached"`
}

// TaxBenefits estimates the tax value of the accelerated deductions
type TaxBenefits struct {
	YearOne          decimal.Decimal `json:"year_one"`
	TotalOverPeriod  decimal.Decimal `json:"total_over_period"`
	EstimatedTaxRate decimal.Decimal `json:"estimated_tax_rate"`
	// ReturnOnFee is the total benefit divided by the final bid.
	ReturnOnFee decimal.Decimal `json:"return_on_fee"`
}

// QuoteResult is the complete, immutable output of one calculation.
type QuoteResult struct {
	QuoteID     string      `json:"quote_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	ProductType ProductType `json:"product_type"`

	Input    QuoteInput   `json:"input"`
	Property PropertyData `json:"property"`

	BaseQuote               decimal.Decimal `json:"base_quote"`
	NaturalLogQuote         decimal.Decimal `json:"natural_log_quote"`
	MultiplePropertiesQuote decimal.Decimal `json:"multiple_properties_quote"`
	CostMethodQuote         decimal.Decimal `json:"cost_method_quote"`
	FinalBid                decimal.Decimal `json:"final_bid"`
	WinningModel            PricingModel    `json:"winning_model"`

	Factors        PricingFactors `json:"factors"`
	PaymentOptions PaymentOptions `json:"payment_options"`

	DepreciationSchedule []YearByYearData `json:"depreciation_schedule"`
	Comparison           ComparisonTable  `json:"comparison"`
	TaxBenefits          TaxBenefits      `json:"tax_benefits"`

	Warnings []string `json:"warnings,omitempty"`
}
