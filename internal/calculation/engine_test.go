package calculation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/costseg/quote-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	mu     sync.Mutex
	errors []string
	warns  []string
}

func (l *captureLogger) Debugw(string, ...any) {}
func (l *captureLogger) Infow(string, ...any)  {}
func (l *captureLogger) Warnw(msg string, kv ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg+" "+fmt.Sprint(kv...))
}
func (l *captureLogger) Errorw(msg string, kv ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg+" "+fmt.Sprint(kv...))
}

type countingRecorder struct {
	mu         sync.Mutex
	quotes     int
	rejections map[string]int
	updates    map[bool]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{rejections: map[string]int{}, updates: map[bool]int{}}
}

func (r *countingRecorder) ObserveQuote(*domain.QuoteResult, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes++
}

func (r *countingRecorder) ObserveRejection(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections[kind]++
}

func (r *countingRecorder) ObserveConfigUpdate(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates[ok]++
}

type panickingLand struct{}

func (panickingLand) EstimateLandValue(price, acres decimal.Decimal) decimal.Decimal {
	panic("assessor table corrupted")
}

func newCalculator(t *testing.T, opts ...Option) *QuoteCalculator {
	t.Helper()
	qc, err := NewQuoteCalculator(defaultConfig(), opts...)
	require.NoError(t, err)
	return qc
}

func TestCalculate_Scenario(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	defer SetNowFunc(time.Now)

	qc := newCalculator(t)
	result, err := qc.Calculate(context.Background(), scenarioInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.QuoteID, "Q-"), result.QuoteID)
	assert.Equal(t, strings.ToUpper(result.QuoteID), result.QuoteID)
	assert.Equal(t, fixed, result.GeneratedAt)
	assert.Equal(t, domain.ProductRCGV, result.ProductType)

	assert.True(t, result.Factors.PropertyType.Equal(d("0.4")))
	assert.True(t, result.Factors.CostBasis.Equal(d("1.3")))
	assert.Equal(t, domain.Residential275, result.Property.DepreciationMethod)
	assert.True(t, result.FinalBid.GreaterThan(d("3000")), "final bid %s", result.FinalBid)
	assert.True(t, result.FinalBid.Equal(d("3100")))
	assert.Equal(t, domain.ModelCostMethod, result.WinningModel)
	assert.True(t, result.CostMethodQuote.Equal(d("3100")))
	assert.True(t, result.BaseQuote.Equal(d("3700.2")))

	assert.True(t, result.PaymentOptions.Upfront.Equal(d("2945")))
	assert.Nil(t, result.PaymentOptions.RushFee)

	require.Len(t, result.DepreciationSchedule, 15)
	assert.Equal(t, result.DepreciationSchedule, result.Comparison.YearByYear)
	assert.True(t, result.Comparison.BreakEvenReached)
	assert.Equal(t, 1, result.Comparison.BreakEvenYear)
	assert.True(t, result.TaxBenefits.YearOne.IsPositive())
	assert.Empty(t, result.Warnings)
}

func TestCalculate_ProductTiers(t *testing.T) {
	qc := newCalculator(t)

	in := scenarioInput()
	in.ProductType = domain.ProductPro
	in.PropertyType = domain.PropertyOffice
	in.ZipCode = "10001"
	in.PurchasePrice = d("7500000")
	in.SqFtBuilding = d("42000")
	in.AcresLand = d("1.2")
	in.NumberOfFloors = 6
	in.RushOrder = true

	result, err := qc.Calculate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, domain.ProductPro, result.ProductType)
	assert.Equal(t, domain.Commercial39, result.Property.DepreciationMethod)
	require.NotNil(t, result.PaymentOptions.RushFee)
	assert.True(t, result.PaymentOptions.RushFee.Equal(d("1500")))
	assert.True(t, result.FinalBid.GreaterThan(d("10000")), "final bid %s", result.FinalBid)
}

func TestCalculate_ValidationError(t *testing.T) {
	rec := newCountingRecorder()
	qc := newCalculator(t, WithRecorder(rec))

	inputs := map[string]func(*domain.QuoteInput){
		"zero price":    func(in *domain.QuoteInput) { in.PurchasePrice = decimal.Zero },
		"malformed zip": func(in *domain.QuoteInput) { in.ZipCode = "123" },
		"empty owner":   func(in *domain.QuoteInput) { in.OwnerName = "" },
		"empty address": func(in *domain.QuoteInput) { in.PropertyAddress = "" },
	}

	for name, mutate := range inputs {
		t.Run(name, func(t *testing.T) {
			in := scenarioInput()
			mutate(&in)

			result, err := qc.Calculate(context.Background(), in)
			assert.Nil(t, result)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.NotEmpty(t, verr.Errors)
		})
	}
	assert.Equal(t, 4, rec.rejections[RejectValidation])
	assert.Zero(t, rec.quotes)
}

func TestCalculate_WarningsAttached(t *testing.T) {
	qc := newCalculator(t)

	in := scenarioInput()
	in.NumberOfFloors = 30
	result, err := qc.Calculate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"Number of floors is unusually high (>20)"}, result.Warnings)
}

func TestCalculate_Deterministic(t *testing.T) {
	qc := newCalculator(t)

	a, err := qc.Calculate(context.Background(), scenarioInput())
	require.NoError(t, err)
	b, err := qc.Calculate(context.Background(), scenarioInput())
	require.NoError(t, err)

	assert.NotEqual(t, a.QuoteID, b.QuoteID)
	assert.True(t, a.FinalBid.Equal(b.FinalBid))
	assert.Equal(t, a.Factors, b.Factors)
	assert.Equal(t, a.DepreciationSchedule, b.DepreciationSchedule)
}

func TestCalculate_InternalFailureIsOpaque(t *testing.T) {
	logger := &captureLogger{}
	rec := newCountingRecorder()
	qc := newCalculator(t, WithLogger(logger), WithRecorder(rec), WithLandValueEstimator(panickingLand{}))

	result, err := qc.Calculate(context.Background(), scenarioInput())
	assert.Nil(t, result)

	var cerr *CalculationError
	require.True(t, errors.As(err, &cerr))
	assert.NotContains(t, err.Error(), "assessor")
	assert.Contains(t, err.Error(), cerr.Reference)
	assert.Contains(t, errors.Unwrap(err).Error(), "assessor table corrupted")

	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], cerr.Reference)
	assert.Equal(t, 1, rec.rejections[RejectInternal])
}

func TestCalculate_CancelledContext(t *testing.T) {
	qc := newCalculator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := qc.Calculate(ctx, scenarioInput())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculate_CustomLandEstimator(t *testing.T) {
	qc := newCalculator(t, WithLandValueEstimator(fixedLand{value: d("550000")}))

	result, err := qc.Calculate(context.Background(), scenarioInput())
	require.NoError(t, err)
	assert.True(t, result.Property.LandValue.Equal(d("550000")))
	assert.True(t, result.Property.BuildingValue.Equal(d("2050000")))
}

func TestNewQuoteCalculator_RejectsInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.LookupTables.SqFt[2].Threshold = d("10")

	_, err := NewQuoteCalculator(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestUpdateConfig(t *testing.T) {
	rec := newCountingRecorder()
	qc := newCalculator(t, WithRecorder(rec))

	payments := qc.GetConfig().Payments
	payments.Upfront = d("0.9")
	require.NoError(t, qc.UpdateConfig(domain.ConfigPatch{Payments: &payments}))

	result, err := qc.Calculate(context.Background(), scenarioInput())
	require.NoError(t, err)
	assert.True(t, result.PaymentOptions.Upfront.Equal(d("2790")), "got %s", result.PaymentOptions.Upfront)

	bad := qc.GetConfig().Depreciation
	bad.YearsToProject = 0
	err = qc.UpdateConfig(domain.ConfigPatch{Depreciation: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Equal(t, 15, qc.GetConfig().Depreciation.YearsToProject, "rejected patch must not apply")

	assert.Equal(t, 1, rec.updates[true])
	assert.Equal(t, 1, rec.updates[false])
}

func TestUpdateConfig_ClearsBounds(t *testing.T) {
	qc := newCalculator(t)

	in := scenarioInput()
	in.PurchasePrice = d("90000000")
	in.SqFtBuilding = d("800000")
	in.PropertyType = domain.PropertyIndustrial

	capped, err := qc.Calculate(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, capped.FinalBid.Equal(d("100000")))
	assert.Equal(t, domain.ModelMaximumQuote, capped.WinningModel)

	require.NoError(t, qc.UpdateConfig(domain.ConfigPatch{ClearMaximumQuote: true}))
	uncapped, err := qc.Calculate(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, uncapped.FinalBid.GreaterThan(d("100000")), "got %s", uncapped.FinalBid)
}

func TestReplaceConfig(t *testing.T) {
	qc := newCalculator(t)

	cfg := defaultConfig()
	cfg.Depreciation.YearsToProject = 5
	require.NoError(t, qc.ReplaceConfig(cfg))

	result, err := qc.Calculate(context.Background(), scenarioInput())
	require.NoError(t, err)
	assert.Len(t, result.DepreciationSchedule, 5)

	cfg.Payments.SplitPayments = 0
	assert.Error(t, qc.ReplaceConfig(cfg))
	assert.Equal(t, 5, qc.GetConfig().Depreciation.YearsToProject)
}

func TestGetConfigAndFactorsAreCopies(t *testing.T) {
	qc := newCalculator(t)

	tables := qc.GetAllFactors()
	tables.PropertyType[0].Factor = d("99")
	cfg := qc.GetConfig()
	cfg.Depreciation.MACRSRates[0] = d("0.99")
	*cfg.RushFee = d("1")

	fresh := qc.GetConfig()
	assert.True(t, fresh.LookupTables.PropertyType[0].Factor.Equal(d("1.01")))
	assert.True(t, fresh.Depreciation.MACRSRates[0].Equal(d("0.20")))
	assert.True(t, fresh.RushFee.Equal(d("1500")))
}

func TestCalculate_ConcurrentWithConfigUpdates(t *testing.T) {
	qc := newCalculator(t)

	base := qc.GetConfig().Payments
	alt := base
	alt.Upfront = d("0.9")

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			p := base
			if i%2 == 0 {
				p = alt
			}
			_ = qc.UpdateConfig(domain.ConfigPatch{Payments: &p})
		}
	}()

	results := make(chan *domain.QuoteResult, 200)
	var workers sync.WaitGroup
	for w := 0; w < 8; w++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for i := 0; i < 25; i++ {
				r, err := qc.Calculate(context.Background(), scenarioInput())
				if err != nil {
					t.Errorf("calculate: %v", err)
					return
				}
				results <- r
			}
		}()
	}
	workers.Wait()
	close(stop)
	wg.Wait()
	close(results)

	for r := range results {
		assert.True(t, r.FinalBid.Equal(d("3100")))
		upfront := r.PaymentOptions.Upfront
		assert.True(t, upfront.Equal(d("2945")) || upfront.Equal(d("2790")), "torn snapshot: upfront %s", upfront)
	}
}

func TestCalculateWith_LeavesSharedConfigAlone(t *testing.T) {
	rec := newCountingRecorder()
	qc := newCalculator(t, WithRecorder(rec))
	before := qc.GetConfig()

	dep := before.Depreciation
	dep.BonusRate = decimal.Zero
	result, err := qc.CalculateWith(context.Background(), scenarioInput(), domain.ConfigPatch{Depreciation: &dep})
	require.NoError(t, err)
	assert.True(t, result.DepreciationSchedule[0].BonusDepreciation.IsZero())

	assert.Equal(t, before, qc.GetConfig())
	assert.Empty(t, rec.updates)
	assert.Equal(t, 1, rec.quotes)

	plain, err := qc.Calculate(context.Background(), scenarioInput())
	require.NoError(t, err)
	assert.True(t, plain.DepreciationSchedule[0].BonusDepreciation.IsPositive())
}

func TestCalculateWith_InvalidPatch(t *testing.T) {
	qc := newCalculator(t)
	dep := qc.GetConfig().Depreciation
	dep.TaxRate = d("2")

	result, err := qc.CalculateWith(context.Background(), scenarioInput(), domain.ConfigPatch{Depreciation: &dep})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
