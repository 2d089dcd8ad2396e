package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidConfig wraps every configuration validation failure
var ErrInvalidConfig = errors.New("invalid calculator configuration")

// RateTier is one size bracket of the cost-estimation model
type RateTier struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// CostEstimateConfig parameterizes the labor-cost floor. The tier rate for the
// building's size bracket is multiplied by square footage, added to TierBase and
// capped at TierCap, then added to the fixed EngagementFee.
type CostEstimateConfig struct {
	EngagementFee decimal.Decimal `yaml:"engagement_fee" json:"engagement_fee"`
	TierBase      decimal.Decimal `yaml:"tier_base" json:"tier_base"`
	TierCap       decimal.Decimal `yaml:"tier_cap" json:"tier_cap"`
	Tiers         []RateTier      `yaml:"tiers" json:"tiers"`
}

// PricingConfig holds the constants of the candidate pricing models.
type PricingConfig struct {
	CostBasisRate decimal.Decimal    `yaml:"cost_basis_rate" json:"cost_basis_rate"`
	BaseFee       decimal.Decimal    `yaml:"base_fee" json:"base_fee"`
	LogOffset     decimal.Decimal    `yaml:"log_offset" json:"log_offset"`
	LogSteepness  decimal.Decimal    `yaml:"log_steepness" json:"log_steepness"`
	CostEstimate  CostEstimateConfig `yaml:"cost_estimate" json:"cost_estimate"`
}

// LandValueConfig bounds the share of the purchase price attributed to land.
type LandValueConfig struct {
	Floor   decimal.Decimal `yaml:"floor" json:"floor"`
	PerAcre decimal.Decimal `yaml:"per_acre" json:"per_acre"`
	Ceiling decimal.Decimal `yaml:"ceiling" json:"ceiling"`
}

// DepreciationConfig drives the year-by-year projection
type DepreciationConfig struct {
	MACRSRates     []decimal.Decimal `yaml:"macrs_rates" json:"macrs_rates"`
	BonusRate      decimal.Decimal   `yaml:"bonus_rate" json:"bonus_rate"`
	BonusCarveOut  decimal.Decimal   `yaml:"bonus_carve_out" json:"bonus_carve_out"`
	YearsToProject int               `yaml:"years_to_project" json:"years_to_project"`
	TaxRate        decimal.Decimal   `yaml:"tax_rate" json:"tax_rate"`
}

// PaymentMultipliers converts the final bid into payment plans
type PaymentMultipliers struct {
	Upfront           decimal.Decimal `yaml:"upfront" json:"upfront"`
	Split             decimal.Decimal `yaml:"split" json:"split"`
	Installment       decimal.Decimal `yaml:"installment" json:"installment"`
	SplitPayments     int             `yaml:"split_payments" json:"split_payments"`
	InstallmentMonths int             `yaml:"installment_months" json:"installment_months"`
}

// ValidationLimits are the thresholds for soft warnings
type ValidationLimits struct {
	MaxPurchasePrice   decimal.Decimal `yaml:"max_purchase_price" json:"max_purchase_price"`
	MinPurchasePrice   decimal.Decimal `yaml:"min_purchase_price" json:"min_purchase_price"`
	MaxSqFt            decimal.Decimal `yaml:"max_sqft" json:"max_sqft"`
	MaxFloors          int             `yaml:"max_floors" json:"max_floors"`
	MaxAcres           decimal.Decimal `yaml:"max_acres" json:"max_acres"`
	MaxCapExPriceRatio decimal.Decimal `yaml:"max_capex_price_ratio" json:"max_capex_price_ratio"`
}

// CalculatorConfig is the complete parameter set of the engine. A value is
// treated as immutable once handed to a calculator.
type CalculatorConfig struct {
	LookupTables LookupTables       `yaml:"lookup_tables" json:"lookup_tables"`
	Pricing      PricingConfig      `yaml:"pricing" json:"pricing"`
	LandValue    LandValueConfig    `yaml:"land_value" json:"land_value"`
	Depreciation DepreciationConfig `yaml:"depreciation" json:"depreciation"`
	Payments     PaymentMultipliers `yaml:"payments" json:"payments"`
	Validation   ValidationLimits   `yaml:"validation" json:"validation"`

	RushFee      *decimal.Decimal `yaml:"rush_fee,omitempty" json:"rush_fee,omitempty"`
	MinimumQuote *decimal.Decimal `yaml:"minimum_quote,omitempty" json:"minimum_quote,omitempty"`
	MaximumQuote *decimal.Decimal `yaml:"maximum_quote,omitempty" json:"maximum_quote,omitempty"`
}

// Clone returns a deep copy
func (c CalculatorConfig) Clone() CalculatorConfig {
	out := c
	out.LookupTables = c.LookupTables.Clone()
	out.Pricing.CostEstimate.Tiers = append([]RateTier(nil), c.Pricing.CostEstimate.Tiers...)
	out.Depreciation.MACRSRates = append([]decimal.Decimal(nil), c.Depreciation.MACRSRates...)
	out.RushFee = cloneDecimal(c.RushFee)
	out.MinimumQuote = cloneDecimal(c.MinimumQuote)
	out.MaximumQuote = cloneDecimal(c.MaximumQuote)
	return out
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// Validate reports the first inconsistency found, wrapped in ErrInvalidConfig.
func (c CalculatorConfig) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c CalculatorConfig) validate() error {
	if err := c.LookupTables.Validate(); err != nil {
		return fmt.Errorf("lookup_tables: %w", err)
	}

	p := c.Pricing
	if p.CostBasisRate.IsNegative() || p.BaseFee.IsNegative() {
		return fmt.Errorf("pricing: cost_basis_rate and base_fee cannot be negative")
	}
	if p.LogSteepness.IsNegative() {
		return fmt.Errorf("pricing: log_steepness cannot be negative")
	}
	ce := p.CostEstimate
	if ce.EngagementFee.IsNegative() || ce.TierBase.IsNegative() || ce.TierCap.IsNegative() {
		return fmt.Errorf("pricing.cost_estimate: amounts cannot be negative")
	}
	if len(ce.Tiers) == 0 {
		return fmt.Errorf("pricing.cost_estimate: at least one tier is required")
	}
	for i, tier := range ce.Tiers {
		if tier.Rate.IsNegative() {
			return fmt.Errorf("pricing.cost_estimate: tier %d rate cannot be negative", i)
		}
		if i > 0 && !tier.Threshold.GreaterThan(ce.Tiers[i-1].Threshold) {
			return fmt.Errorf("pricing.cost_estimate: tier thresholds must be strictly ascending")
		}
	}

	lv := c.LandValue
	one := decimal.NewFromInt(1)
	if lv.Floor.IsNegative() || lv.PerAcre.IsNegative() {
		return fmt.Errorf("land_value: floor and per_acre cannot be negative")
	}
	if lv.Ceiling.LessThan(lv.Floor) || lv.Ceiling.GreaterThan(one) {
		return fmt.Errorf("land_value: ceiling must be between floor and 1")
	}

	d := c.Depreciation
	if len(d.MACRSRates) != 6 {
		return fmt.Errorf("depreciation: expected 6 MACRS rates, got %d", len(d.MACRSRates))
	}
	for i, r := range d.MACRSRates {
		if r.IsNegative() || r.GreaterThan(one) {
			return fmt.Errorf("depreciation: MACRS rate %d must be between 0 and 1", i+1)
		}
	}
	if d.BonusRate.IsNegative() || d.BonusRate.GreaterThan(one) {
		return fmt.Errorf("depreciation: bonus_rate must be between 0 and 1")
	}
	if d.BonusCarveOut.IsNegative() || d.BonusCarveOut.GreaterThan(one) {
		return fmt.Errorf("depreciation: bonus_carve_out must be between 0 and 1")
	}
	if d.YearsToProject < 1 || d.YearsToProject > 100 {
		return fmt.Errorf("depreciation: years_to_project must be between 1 and 100")
	}
	if d.TaxRate.IsNegative() || d.TaxRate.GreaterThan(one) {
		return fmt.Errorf("depreciation: tax_rate must be between 0 and 1")
	}

	pm := c.Payments
	if !pm.Upfront.IsPositive() || !pm.Split.IsPositive() || !pm.Installment.IsPositive() {
		return fmt.Errorf("payments: multipliers must be positive")
	}
	if pm.SplitPayments < 1 || pm.InstallmentMonths < 1 {
		return fmt.Errorf("payments: split_payments and installment_months must be at least 1")
	}

	if c.RushFee != nil && c.RushFee.IsNegative() {
		return fmt.Errorf("rush_fee cannot be negative")
	}
	bounds := []struct {
		name  string
		value *decimal.Decimal
	}{{"minimum_quote", c.MinimumQuote}, {"maximum_quote", c.MaximumQuote}}
	for _, b := range bounds {
		if b.value == nil {
			continue
		}
		if b.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", b.name)
		}
		if !b.value.Equal(b.value.Truncate(0)) {
			return fmt.Errorf("%s %s must be a whole-dollar amount", b.name, b.value)
		}
	}
	if c.MinimumQuote != nil && c.MaximumQuote != nil && c.MaximumQuote.LessThan(*c.MinimumQuote) {
		return fmt.Errorf("maximum_quote %s is below minimum_quote %s", c.MaximumQuote, c.MinimumQuote)
	}
	return nil
}

// ConfigPatch is a partial update. Non-nil sections replace the matching
// section of the current configuration wholesale; the Clear flags remove an
// optional amount.
type ConfigPatch struct {
	LookupTables *LookupTables       `yaml:"lookup_tables,omitempty" json:"lookup_tables,omitempty"`
	Pricing      *PricingConfig      `yaml:"pricing,omitempty" json:"pricing,omitempty"`
	LandValue    *LandValueConfig    `yaml:"land_value,omitempty" json:"land_value,omitempty"`
	Depreciation *DepreciationConfig `yaml:"depreciation,omitempty" json:"depreciation,omitempty"`
	Payments     *PaymentMultipliers `yaml:"payments,omitempty" json:"payments,omitempty"`
	Validation   *ValidationLimits   `yaml:"validation,omitempty" json:"validation,omitempty"`

	RushFee      *decimal.Decimal `yaml:"rush_fee,omitempty" json:"rush_fee,omitempty"`
	MinimumQuote *decimal.Decimal `yaml:"minimum_quote,omitempty" json:"minimum_quote,omitempty"`
	MaximumQuote *decimal.Decimal `yaml:"maximum_quote,omitempty" json:"maximum_quote,omitempty"`

	ClearRushFee      bool `yaml:"clear_rush_fee,omitempty" json:"clear_rush_fee,omitempty"`
	ClearMinimumQuote bool `yaml:"clear_minimum_quote,omitempty" json:"clear_minimum_quote,omitempty"`
	ClearMaximumQuote bool `yaml:"clear_maximum_quote,omitempty" json:"clear_maximum_quote,omitempty"`
}

// Apply returns a new configuration with the patch merged over c. Neither c
// nor the patch is modified.
func (p ConfigPatch) Apply(c CalculatorConfig) CalculatorConfig {
	out := c.Clone()
	if p.LookupTables != nil {
		out.LookupTables = p.LookupTables.Clone()
	}
	if p.Pricing != nil {
		out.Pricing = *p.Pricing
		out.Pricing.CostEstimate.Tiers = append([]RateTier(nil), p.Pricing.CostEstimate.Tiers...)
	}
	if p.LandValue != nil {
		out.LandValue = *p.LandValue
	}
	if p.Depreciation != nil {
		out.Depreciation = *p.Depreciation
		out.Depreciation.MACRSRates = append([]decimal.Decimal(nil), p.Depreciation.MACRSRates...)
	}
	if p.Payments != nil {
		out.Payments = *p.Payments
	}
	if p.Validation != nil {
		out.Validation = *p.Validation
	}

	if p.RushFee != nil {
		out.RushFee = cloneDecimal(p.RushFee)
	}
	if p.MinimumQuote != nil {
		out.MinimumQuote = cloneDecimal(p.MinimumQuote)
	}
	if p.MaximumQuote != nil {
		out.MaximumQuote = cloneDecimal(p.MaximumQuote)
	}
	if p.ClearRushFee {
		out.RushFee = nil
	}
	if p.ClearMinimumQuote {
		out.MinimumQuote = nil
	}
	if p.ClearMaximumQuote {
		out.MaximumQuote = nil
	}
	return out
}
