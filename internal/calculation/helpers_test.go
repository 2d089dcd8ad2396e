package calculation

import (
	"time"

	"github.com/costseg/quote-engine/internal/config"
	"github.com/costseg/quote-engine/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// scenarioInput is the Scottsdale multi-family reference property.
func scenarioInput() domain.QuoteInput {
	return domain.QuoteInput{
		PurchasePrice:      d("2550000"),
		ZipCode:            "85260",
		SqFtBuilding:       d("1500"),
		AcresLand:          d("0.78"),
		PropertyType:       domain.PropertyMultiFamily,
		NumberOfFloors:     2,
		MultipleProperties: 1,
		PurchaseDate:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		TaxYear:            2024,
		YearBuilt:          1998,
		CapEx:              d("50000"),
		OwnerName:          "Jane Investor",
		PropertyAddress:    "123 Main St, Scottsdale, AZ",
		ProductType:        domain.ProductRCGV,
	}
}

func defaultConfig() domain.CalculatorConfig {
	return config.Default()
}
