package calculation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/costseg/quote-engine/internal/domain"
	"github.com/costseg/quote-engine/pkg/dateutil"
	money "github.com/costseg/quote-engine/pkg/decimal"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// yearBuiltLookahead is how far past the current year a construction year
// may be recorded for buildings still under construction.
const yearBuiltLookahead = 5

// fieldRules holds the input fields whose checks are expressed as tags.
type fieldRules struct {
	ZipCode   string `validate:"len=5,number"`
	TaxYear   int    `validate:"min=1900,max=2100"`
	YearBuilt int    `validate:"min=1800,built_by"`
}

var rules = newRuleValidator()

func newRuleValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("built_by", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(nowFunc().Year()+yearBuiltLookahead)
	}); err != nil {
		panic(err)
	}
	return v
}

// failedFields returns the names of fieldRules fields that failed.
func failedFields(input domain.QuoteInput) map[string]bool {
	failed := map[string]bool{}
	err := rules.Struct(fieldRules{ZipCode: input.ZipCode, TaxYear: input.TaxYear, YearBuilt: input.YearBuilt})
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			failed[fe.Field()] = true
		}
	}
	return failed
}

// ValidationResult separates blocking errors from informational warnings.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the input may be priced
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateInput checks an input against the hard rules and the soft warning
// limits. It never modifies the input.
func ValidateInput(input domain.QuoteInput, tables domain.LookupTables, limits domain.ValidationLimits) ValidationResult {
	var r ValidationResult
	failed := failedFields(input)

	if !input.PurchasePrice.IsPositive() {
		r.Errors = append(r.Errors, "Purchase price must be greater than 0")
	}
	if failed["ZipCode"] {
		r.Errors = append(r.Errors, "Zip code must be exactly 5 digits")
	}
	if !input.SqFtBuilding.IsPositive() {
		r.Errors = append(r.Errors, "Building square footage must be greater than 0")
	}
	if input.AcresLand.IsNegative() {
		r.Errors = append(r.Errors, "Land acres cannot be negative")
	}
	if _, ok := tables.PropertyType.Find(input.PropertyType); !ok {
		r.Errors = append(r.Errors, fmt.Sprintf("Unknown property type: %q", input.PropertyType))
	}
	if input.NumberOfFloors < 1 {
		r.Errors = append(r.Errors, "Number of floors must be at least 1")
	}
	if input.MultipleProperties < 1 {
		r.Errors = append(r.Errors, "Number of properties must be at least 1")
	}
	if input.CapEx.IsNegative() {
		r.Errors = append(r.Errors, "Capital expenditure cannot be negative")
	}
	if input.PriorDepreciation().IsNegative() {
		r.Errors = append(r.Errors, "Accumulated depreciation cannot be negative")
	}
	if input.PurchaseDate.IsZero() {
		r.Errors = append(r.Errors, "Purchase date is required")
	}
	if strings.TrimSpace(input.OwnerName) == "" {
		r.Errors = append(r.Errors, "Owner name is required")
	}
	if strings.TrimSpace(input.PropertyAddress) == "" {
		r.Errors = append(r.Errors, "Property address is required")
	}
	if !input.ProductType.Valid() {
		r.Errors = append(r.Errors, fmt.Sprintf("Product type must be %s or %s", domain.ProductRCGV, domain.ProductPro))
	}
	if failed["TaxYear"] {
		r.Errors = append(r.Errors, "Valid tax year is required")
	}
	if failed["YearBuilt"] {
		r.Errors = append(r.Errors, "Valid year built is required")
	}

	if limits.MaxPurchasePrice.IsPositive() && input.PurchasePrice.GreaterThan(limits.MaxPurchasePrice) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Purchase price is unusually high (>%s)", compact(limits.MaxPurchasePrice)))
	}
	if input.PurchasePrice.IsPositive() && input.PurchasePrice.LessThan(limits.MinPurchasePrice) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Purchase price is unusually low (<%s)", compact(limits.MinPurchasePrice)))
	}
	if limits.MaxSqFt.IsPositive() && input.SqFtBuilding.GreaterThan(limits.MaxSqFt) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Building size is unusually large (>%s sq ft)", limits.MaxSqFt.StringFixed(0)))
	}
	if limits.MaxFloors > 0 && input.NumberOfFloors > limits.MaxFloors {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Number of floors is unusually high (>%d)", limits.MaxFloors))
	}
	if limits.MaxAcres.IsPositive() && input.AcresLand.GreaterThan(limits.MaxAcres) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Land area is unusually large (>%s acres)", limits.MaxAcres.String()))
	}
	if limits.MaxCapExPriceRatio.IsPositive() && input.PurchasePrice.IsPositive() &&
		input.CapEx.GreaterThan(input.PurchasePrice.Mul(limits.MaxCapExPriceRatio)) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Capital expenditure exceeds %s%% of purchase price",
			limits.MaxCapExPriceRatio.Mul(decimal.NewFromInt(100)).StringFixed(0)))
	}
	if !failed["YearBuilt"] && dateutil.BuiltAfter(input.YearBuilt, input.PurchaseDate) {
		r.Warnings = append(r.Warnings, "Year built is after purchase date")
	}

	return r
}

// compact renders round millions as "$50M" and anything else as whole dollars.
func compact(amount decimal.Decimal) string {
	v := amount.IntPart()
	if v >= 1_000_000 && v%1_000_000 == 0 {
		return fmt.Sprintf("$%dM", v/1_000_000)
	}
	return money.NewMoneyFromInt(v).Format()
}
