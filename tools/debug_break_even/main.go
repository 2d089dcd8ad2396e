package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/costseg/quote-engine/internal/calculation"
	"github.com/costseg/quote-engine/internal/config"
	"github.com/shopspring/decimal"
)

// Prints the cost seg and straight-line tracks side by side with the running
// savings and the tax-adjusted fee payback for one quote input.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <quote-input-file> [calculator-config]")
		return
	}
	p := config.NewInputParser()
	input, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	cfgPath := ""
	if len(os.Args) > 2 {
		cfgPath = os.Args[2]
	}
	cfg, err := config.LoadCalculatorConfig(cfgPath)
	if err != nil {
		panic(err)
	}
	engine, err := calc.NewQuoteCalculator(cfg)
	if err != nil {
		panic(err)
	}
	res, err := engine.Calculate(context.Background(), *input)
	if err != nil {
		panic(err)
	}
	if len(res.DepreciationSchedule) == 0 {
		fmt.Println("no projection data")
		return
	}

	fmt.Println("Year,CostSeg,Standard,Traditional,Bonus,Diff,Cumulative,TaxBenefit")
	rate := res.TaxBenefits.EstimatedTaxRate
	for _, y := range res.DepreciationSchedule {
		diff := y.CostSegEstimate.Sub(y.StandardDepreciation)
		fmt.Printf("%d,%s,%s,%s,%s,%s,%s,%s\n", y.Year,
			y.CostSegEstimate.StringFixed(0), y.StandardDepreciation.StringFixed(0),
			y.TraditionalCostSeg.StringFixed(0), y.BonusDepreciation.StringFixed(0),
			diff.StringFixed(0), y.CumulativeSavings.StringFixed(0),
			y.CumulativeSavings.Mul(rate).StringFixed(0))
	}

	paid := decimal.Zero
	for _, y := range res.DepreciationSchedule {
		if y.CumulativeSavings.Mul(rate).GreaterThanOrEqual(res.FinalBid) {
			paid = decimal.NewFromInt(int64(y.Year))
			break
		}
	}
	fmt.Printf("\nBreakEven: year=%d reached=%v fee=%s feeRecoveredYear=%s\n",
		res.Comparison.BreakEvenYear, res.Comparison.BreakEvenReached, res.FinalBid.StringFixed(0), paid.String())
}
