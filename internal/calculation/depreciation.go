package calculation

import (
	"time"

	"github.com/costseg/quote-engine/internal/domain"
	money "github.com/costseg/quote-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// depreciationTrack walks one remaining-balance schedule: accelerated rates for
// years 1-6, then straight-line over the years left in the recovery period.
type depreciationTrack struct {
	remaining decimal.Decimal
	method    decimal.Decimal
	rates     []decimal.Decimal
}

func (t *depreciationTrack) next(year int, bonus decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	if year <= len(t.rates) {
		amount = t.remaining.Mul(t.rates[year-1])
	} else {
		yearsLeft := t.method.Sub(decimal.NewFromInt(int64(year - 1)))
		if yearsLeft.LessThan(one) {
			yearsLeft = one
		}
		amount = t.remaining.Div(yearsLeft)
	}
	if year == 1 {
		amount = amount.Add(bonus)
	}

	t.remaining = money.NewMoneyFromDecimal(t.remaining.Sub(amount)).FloorAtZero().Decimal
	return amount
}

// Schedule projects cost segregation against straight-line depreciation for
// cfg.YearsToProject years. Year one adds a bonus allowance on the carve-out
// share of the building. Amounts are whole dollars and cumulative savings is
// the running sum of the rounded yearly differences.
func Schedule(buildingValue decimal.Decimal, method domain.DepreciationMethod, cfg domain.DepreciationConfig) []domain.YearByYearData {
	if buildingValue.IsNegative() {
		buildingValue = decimal.Zero
	}
	years := method.Years()
	if !years.IsPositive() {
		years = domain.Commercial39.Years()
	}

	standard := buildingValue.Div(years).Round(0)
	bonus := buildingValue.Mul(cfg.BonusCarveOut).Mul(cfg.BonusRate)

	costSeg := &depreciationTrack{remaining: buildingValue, method: years, rates: cfg.MACRSRates}
	traditional := &depreciationTrack{remaining: buildingValue, method: years, rates: cfg.MACRSRates}

	schedule := make([]domain.YearByYearData, 0, cfg.YearsToProject)
	cumulative := decimal.Zero
	for year := 1; year <= cfg.YearsToProject; year++ {
		amount := costSeg.next(year, bonus).Round(0)
		withoutBonus := traditional.next(year, decimal.Zero).Round(0)

		yearBonus := decimal.Zero
		if year == 1 {
			yearBonus = bonus.Round(0)
		}

		cumulative = cumulative.Add(amount.Sub(standard))
		schedule = append(schedule, domain.YearByYearData{
			Year:                 year,
			CostSegEstimate:      amount,
			StandardDepreciation: standard,
			TraditionalCostSeg:   withoutBonus,
			BonusDepreciation:    yearBonus,
			CumulativeSavings:    cumulative,
		})
	}
	return schedule
}

// Compare totals a schedule and finds the break-even year. When cumulative
// savings never turn positive the break-even year is 1 and BreakEvenReached is
// false.
func Compare(schedule []domain.YearByYearData) domain.ComparisonTable {
	var totals domain.SavingsTotals
	breakEven, reached := 1, false

	for _, y := range schedule {
		totals.TotalCostSeg = totals.TotalCostSeg.Add(y.CostSegEstimate)
		totals.TotalStandard = totals.TotalStandard.Add(y.StandardDepreciation)
		totals.TotalBonus = totals.TotalBonus.Add(y.BonusDepreciation)
		if !reached && y.CumulativeSavings.IsPositive() {
			breakEven, reached = y.Year, true
		}
	}
	totals.StandardVsCostSeg = totals.TotalCostSeg.Sub(totals.TotalStandard)
	totals.StandardVsBonus = totals.TotalBonus

	return domain.ComparisonTable{
		YearByYear:       schedule,
		TotalSavings:     totals,
		BreakEvenYear:    breakEven,
		BreakEvenReached: reached,
	}
}

// EstimateTaxBenefits values the accelerated deductions at a flat tax rate.
func EstimateTaxBenefits(cmp domain.ComparisonTable, taxRate, finalBid decimal.Decimal) domain.TaxBenefits {
	yearOne := decimal.Zero
	if len(cmp.YearByYear) > 0 {
		yearOne = cmp.YearByYear[0].CumulativeSavings
	}
	total := cmp.TotalSavings.StandardVsCostSeg.Mul(taxRate).Round(0)

	returnOnFee := decimal.Zero
	if finalBid.IsPositive() {
		returnOnFee = total.Div(finalBid).Round(2)
	}

	return domain.TaxBenefits{
		YearOne:          yearOne.Mul(taxRate).Round(0),
		TotalOverPeriod:  total,
		EstimatedTaxRate: taxRate,
		ReturnOnFee:      returnOnFee,
	}
}

var tcjaEffective = time.Date(2017, time.September, 27, 0, 0, 0, 0, time.UTC)

// QualifiesForBonus reports whether property placed in service on date is
// eligible for bonus depreciation under the 2017 tax act.
func QualifiesForBonus(purchaseDate time.Time) bool {
	return !purchaseDate.Before(tcjaEffective)
}

// BonusRateForTaxYear returns the bonus depreciation percentage for a tax year
// under the 2017 phase-down.
func BonusRateForTaxYear(year int) decimal.Decimal {
	switch {
	case year <= 2022:
		return decimal.NewFromInt(1)
	case year == 2023:
		return decimal.NewFromFloat(0.8)
	case year == 2024:
		return decimal.NewFromFloat(0.6)
	case year == 2025:
		return decimal.NewFromFloat(0.4)
	case year == 2026:
		return decimal.NewFromFloat(0.2)
	default:
		return decimal.Zero
	}
}
