package calculation

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/costseg/quote-engine/internal/domain"
	money "github.com/costseg/quote-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// QuoteCalculator prices quotes against a shared configuration snapshot. It is
// safe for concurrent use; configuration updates swap the snapshot atomically
// and never touch one that an in-flight calculation is reading.
type QuoteCalculator struct {
	config   atomic.Pointer[domain.CalculatorConfig]
	logger   Logger
	recorder Recorder
	land     LandValueEstimator
}

// Option configures a QuoteCalculator
type Option func(*QuoteCalculator)

// WithLogger sets the logger. A nil logger is replaced with NopLogger.
func WithLogger(l Logger) Option {
	return func(qc *QuoteCalculator) {
		if l == nil {
			l = NopLogger{}
		}
		qc.logger = l
	}
}

// WithRecorder sets the outcome recorder
func WithRecorder(r Recorder) Option {
	return func(qc *QuoteCalculator) {
		if r == nil {
			r = NopRecorder{}
		}
		qc.recorder = r
	}
}

// WithLandValueEstimator replaces the configured percent-of-price land model.
func WithLandValueEstimator(e LandValueEstimator) Option {
	return func(qc *QuoteCalculator) { qc.land = e }
}

// NewQuoteCalculator validates cfg and returns a calculator holding a private
// copy of it.
func NewQuoteCalculator(cfg domain.CalculatorConfig, opts ...Option) (*QuoteCalculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	qc := &QuoteCalculator{
		logger:   NopLogger{},
		recorder: NopRecorder{},
	}
	for _, opt := range opts {
		opt(qc)
	}
	snapshot := cfg.Clone()
	qc.config.Store(&snapshot)
	return qc, nil
}

// GetConfig returns a copy of the current configuration
func (qc *QuoteCalculator) GetConfig() domain.CalculatorConfig {
	return qc.config.Load().Clone()
}

// GetAllFactors returns a copy of the current lookup tables
func (qc *QuoteCalculator) GetAllFactors() domain.LookupTables {
	return qc.config.Load().LookupTables.Clone()
}

// UpdateConfig merges a partial patch into the current configuration. The
// merged result must validate before it replaces the snapshot; concurrent
// updates are applied one after another.
func (qc *QuoteCalculator) UpdateConfig(patch domain.ConfigPatch) error {
	for {
		current := qc.config.Load()
		next := patch.Apply(*current)
		if err := next.Validate(); err != nil {
			qc.recorder.ObserveConfigUpdate(false)
			qc.logger.Warnw("rejected configuration update", "error", err)
			return err
		}
		if qc.config.CompareAndSwap(current, &next) {
			qc.recorder.ObserveConfigUpdate(true)
			qc.logger.Infow("configuration updated")
			return nil
		}
	}
}

// ReplaceConfig swaps in a whole new configuration.
func (qc *QuoteCalculator) ReplaceConfig(cfg domain.CalculatorConfig) error {
	if err := cfg.Validate(); err != nil {
		qc.recorder.ObserveConfigUpdate(false)
		qc.logger.Warnw("rejected configuration replacement", "error", err)
		return err
	}
	snapshot := cfg.Clone()
	qc.config.Store(&snapshot)
	qc.recorder.ObserveConfigUpdate(true)
	qc.logger.Infow("configuration replaced")
	return nil
}

// Calculate prices one quote. An invalid input returns *ValidationError; an
// internal failure returns *CalculationError. Warnings never block a result.
func (qc *QuoteCalculator) Calculate(ctx context.Context, input domain.QuoteInput) (*domain.QuoteResult, error) {
	return qc.calculate(ctx, input, qc.config.Load())
}

// CalculateWith prices one quote against the current configuration with
// patch applied to a private copy. The shared snapshot is not modified and no
// configuration update is recorded.
func (qc *QuoteCalculator) CalculateWith(ctx context.Context, input domain.QuoteInput, patch domain.ConfigPatch) (*domain.QuoteResult, error) {
	cfg := patch.Apply(*qc.config.Load())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return qc.calculate(ctx, input, &cfg)
}

func (qc *QuoteCalculator) calculate(ctx context.Context, input domain.QuoteInput, cfg *domain.CalculatorConfig) (result *domain.QuoteResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := nowFunc()

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = qc.internalError(fmt.Errorf("panic: %v", r))
		}
	}()

	validation := ValidateInput(input, cfg.LookupTables, cfg.Validation)
	if !validation.Valid() {
		qc.recorder.ObserveRejection(RejectValidation)
		qc.logger.Infow("quote rejected", "validation_errors", len(validation.Errors))
		return nil, &ValidationError{Errors: validation.Errors, Warnings: validation.Warnings}
	}
	for _, w := range validation.Warnings {
		qc.logger.Warnw("quote input warning", "warning", w)
	}

	land := qc.land
	if land == nil {
		land = NewPercentOfPriceEstimator(cfg.LandValue)
	}

	property := Valuate(input, cfg.LookupTables, land)
	factors := ResolveFactors(input, cfg.LookupTables)
	quote := Price(input, factors, *cfg)
	if quote.FinalBid.IsNegative() {
		return nil, qc.internalError(fmt.Errorf("final bid %s is negative", quote.FinalBid))
	}
	qc.logger.Debugw("candidate quotes",
		"base", quote.Candidates.Base.StringFixed(2),
		"natural_log", quote.Candidates.NaturalLog.StringFixed(2),
		"multiple_properties", quote.Candidates.MultipleProperties.StringFixed(2),
		"cost_method", quote.Candidates.CostMethod.StringFixed(2),
		"final_bid", quote.FinalBid.String(),
		"winner", quote.Winner)

	payments := PaymentPlan(quote.FinalBid, input.RushOrder, cfg.Payments, cfg.RushFee)

	schedule := Schedule(property.BuildingValue, property.DepreciationMethod, cfg.Depreciation)
	comparison := Compare(schedule)
	benefits := EstimateTaxBenefits(comparison, cfg.Depreciation.TaxRate, quote.FinalBid)

	result = &domain.QuoteResult{
		QuoteID:                 quoteIDFunc(),
		GeneratedAt:             nowFunc(),
		ProductType:             input.ProductType,
		Input:                   copyInput(input),
		Property:                property,
		BaseQuote:               cents(quote.Candidates.Base),
		NaturalLogQuote:         cents(quote.Candidates.NaturalLog),
		MultiplePropertiesQuote: cents(quote.Candidates.MultipleProperties),
		CostMethodQuote:         cents(quote.Candidates.CostMethod),
		FinalBid:                quote.FinalBid,
		WinningModel:            quote.Winner,
		Factors:                 factors,
		PaymentOptions:          payments,
		DepreciationSchedule:    schedule,
		Comparison:              comparison,
		TaxBenefits:             benefits,
		Warnings:                validation.Warnings,
	}

	qc.recorder.ObserveQuote(result, nowFunc().Sub(start))
	qc.logger.Infow("quote priced", "quote_id", result.QuoteID, "final_bid", result.FinalBid.String(), "property_type", input.PropertyType)
	return result, nil
}

func (qc *QuoteCalculator) internalError(cause error) *CalculationError {
	ce := &CalculationError{Reference: newReference(), cause: cause}
	qc.recorder.ObserveRejection(RejectInternal)
	qc.logger.Errorw("quote calculation failed", "reference", ce.Reference, "error", cause)
	return ce
}

func copyInput(in domain.QuoteInput) domain.QuoteInput {
	out := in
	if in.AccumulatedDepreciation != nil {
		v := *in.AccumulatedDepreciation
		out.AccumulatedDepreciation = &v
	}
	return out
}

func cents(d decimal.Decimal) decimal.Decimal {
	return money.NewMoneyFromDecimal(d).Round().Decimal
}
