package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costseg/quote-engine/internal/calculation"
	"github.com/costseg/quote-engine/internal/config"
	"github.com/costseg/quote-engine/internal/domain"
	"github.com/costseg/quote-engine/internal/metrics"
	"github.com/costseg/quote-engine/internal/output"
)

func newCalculator(t *testing.T, opts ...calculation.Option) *calculation.QuoteCalculator {
	t.Helper()
	cfg, err := config.LoadCalculatorConfig("../../configs/calculator.yaml")
	require.NoError(t, err)
	tables, err := config.LoadLookupDataset("../../configs/lookup_tables.yaml")
	require.NoError(t, err)
	cfg = domain.ConfigPatch{LookupTables: &tables}.Apply(cfg)

	calc, err := calculation.NewQuoteCalculator(cfg, opts...)
	require.NoError(t, err)
	return calc
}

func loadExample(t *testing.T) domain.QuoteInput {
	t.Helper()
	input, err := config.NewInputParser().LoadFromFile("../../configs/example_quote.yaml")
	require.NoError(t, err)
	return *input
}

func TestEndToEndCalculation(t *testing.T) {
	calc := newCalculator(t)
	result, err := calc.Calculate(context.Background(), loadExample(t))
	require.NoError(t, err)

	assert.True(t, result.FinalBid.Equal(decimal.NewFromInt(3100)), result.FinalBid.String())
	assert.Equal(t, domain.ModelCostMethod, result.WinningModel)
	assert.True(t, result.Property.LandValue.Add(result.Property.BuildingValue).Equal(result.Property.PurchasePrice.Add(result.Property.CapEx)))
	assert.Equal(t, domain.Residential275, result.Property.DepreciationMethod)
	assert.True(t, result.PaymentOptions.Upfront.Equal(decimal.NewFromInt(2945)))
	assert.Len(t, result.DepreciationSchedule, 15)
	assert.True(t, result.Comparison.BreakEvenReached)
	assert.Equal(t, 1, result.Comparison.BreakEvenYear)
	assert.True(t, result.TaxBenefits.YearOne.IsPositive())

	// cumulative savings are the running sum of cost seg minus straight line
	running := decimal.Zero
	for _, y := range result.DepreciationSchedule {
		running = running.Add(y.CostSegEstimate.Sub(y.StandardDepreciation))
		assert.True(t, running.Equal(y.CumulativeSavings), "year %d", y.Year)
	}
}

func TestOutputGeneration(t *testing.T) {
	calc := newCalculator(t)
	result, err := calc.Calculate(context.Background(), loadExample(t))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, format := range output.AvailableFormatterNames() {
		files, err := output.GenerateReport(result, format, dir)
		require.NoError(t, err, format)
		require.Len(t, files, 1)
		info, err := os.Stat(files[0])
		require.NoError(t, err)
		assert.Positive(t, info.Size(), format)
	}

	data, err := os.ReadFile(filepath.Join(dir, "quote_"+result.QuoteID+".json"))
	require.NoError(t, err)
	var decoded domain.QuoteResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.QuoteID, decoded.QuoteID)
	assert.True(t, decoded.FinalBid.Equal(result.FinalBid))
}

func TestHotConfigUpdateWithMetrics(t *testing.T) {
	rec, err := metrics.NewRecorder()
	require.NoError(t, err)
	calc := newCalculator(t, calculation.WithRecorder(rec))
	input := loadExample(t)

	before, err := calc.Calculate(context.Background(), input)
	require.NoError(t, err)

	payments := calc.GetConfig().Payments
	payments.Upfront = decimal.RequireFromString("0.9")
	require.NoError(t, calc.UpdateConfig(domain.ConfigPatch{Payments: &payments}))

	after, err := calc.Calculate(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, before.PaymentOptions.Upfront.Equal(decimal.NewFromInt(2945)))
	assert.True(t, after.PaymentOptions.Upfront.Equal(decimal.NewFromInt(2790)))

	promFile := filepath.Join(t.TempDir(), "quotes.prom")
	require.NoError(t, rec.WriteToTextfile(promFile))
	data, err := os.ReadFile(promFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `quote_engine_config_updates_total{result="applied"} 1`)
}

func TestConcurrentQuotesDuringConfigSwaps(t *testing.T) {
	calc := newCalculator(t)
	input := loadExample(t)
	base := calc.GetConfig()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				r, err := calc.Calculate(context.Background(), input)
				if !assert.NoError(t, err) {
					return
				}
				// every result comes from exactly one snapshot
				up := r.PaymentOptions.Upfront
				assert.True(t, up.Equal(decimal.NewFromInt(2945)) || up.Equal(decimal.NewFromInt(2790)), up.String())
			}
		}()
	}
	for j := 0; j < 25; j++ {
		cfg := base.Clone()
		if j%2 == 0 {
			cfg.Payments.Upfront = decimal.RequireFromString("0.9")
		}
		require.NoError(t, calc.ReplaceConfig(cfg))
	}
	wg.Wait()
}
