package calculation

import (
	"math"

	"github.com/costseg/quote-engine/internal/domain"
	money "github.com/costseg/quote-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// QuoteCandidates are the competing prices evaluated for one input
type QuoteCandidates struct {
	Base               decimal.Decimal
	NaturalLog         decimal.Decimal
	MultipleProperties decimal.Decimal
	CostMethod         decimal.Decimal
}

// PriceQuote is the outcome of the pricing model.
type PriceQuote struct {
	BaseAmount decimal.Decimal
	Candidates QuoteCandidates
	FinalBid   decimal.Decimal
	Winner     domain.PricingModel
}

var logScale = decimal.NewFromFloat(0.001)

// BaseAmount is the unadjusted fee: (price + capex) * K1 + K2
func BaseAmount(input domain.QuoteInput, cfg domain.PricingConfig) decimal.Decimal {
	adjustedCostBasis := input.PurchasePrice.Add(input.CapEx)
	return adjustedCostBasis.Mul(cfg.CostBasisRate).Add(cfg.BaseFee)
}

// LogisticQuote damps the base amount with a logistic curve centred on
// LogOffset so small engagements are not overpriced, then applies the property
// type and portfolio factors.
func LogisticQuote(baseAmount decimal.Decimal, factors domain.PricingFactors, cfg domain.PricingConfig) decimal.Decimal {
	decay := baseAmount.Sub(cfg.LogOffset).Mul(logScale).Mul(cfg.LogSteepness.Neg())
	exp := math.Exp(decay.InexactFloat64())
	if math.IsInf(exp, 0) || math.IsNaN(exp) {
		return decimal.Zero
	}
	denominator := one.Add(decimal.NewFromFloat(exp))
	return baseAmount.Div(denominator).Mul(factors.PropertyType).Mul(factors.MultipleProperties)
}

// CostMethodQuote estimates the labor cost of the study from the building size.
// It is the floor under every other candidate.
func CostMethodQuote(sqft decimal.Decimal, factors domain.PricingFactors, cfg domain.CostEstimateConfig) decimal.Decimal {
	rate := tierRate(sqft, cfg.Tiers)
	tierCost := cfg.TierBase.Add(rate.Mul(sqft))
	if tierCost.GreaterThan(cfg.TierCap) {
		tierCost = cfg.TierCap
	}
	return cfg.EngagementFee.Add(tierCost).Mul(factors.PropertyType)
}

func tierRate(sqft decimal.Decimal, tiers []domain.RateTier) decimal.Decimal {
	table := make(domain.ThresholdTable, len(tiers))
	for i, t := range tiers {
		table[i] = domain.ThresholdEntry{Threshold: t.Threshold, Factor: t.Rate}
	}
	if len(table) == 0 {
		return decimal.Zero
	}
	return ResolveThreshold(sqft, table)
}

// Candidates computes all four candidate prices
func Candidates(input domain.QuoteInput, factors domain.PricingFactors, cfg domain.PricingConfig) (decimal.Decimal, QuoteCandidates) {
	baseAmount := BaseAmount(input, cfg)
	return baseAmount, QuoteCandidates{
		Base:               baseAmount.Mul(factors.Product()),
		NaturalLog:         LogisticQuote(baseAmount, factors, cfg),
		MultipleProperties: baseAmount.Mul(factors.MultipleProperties),
		CostMethod:         CostMethodQuote(input.SqFtBuilding, factors, cfg.CostEstimate),
	}
}

// SelectFinalBid takes the cheapest of the base, logistic and portfolio
// candidates unless it falls below the cost floor, rounds to whole dollars and
// applies the optional bounds. Ties go to the earlier model.
func SelectFinalBid(c QuoteCandidates, min, max *decimal.Decimal) (decimal.Decimal, domain.PricingModel) {
	base := money.NewMoneyFromDecimal(c.Base)
	naturalLog := money.NewMoneyFromDecimal(c.NaturalLog)
	portfolio := money.NewMoneyFromDecimal(c.MultipleProperties)
	cost := money.NewMoneyFromDecimal(c.CostMethod)

	cheapest := money.Min(base, naturalLog, portfolio)
	var winner domain.PricingModel
	switch {
	case cheapest.Equal(base):
		winner = domain.ModelBase
	case cheapest.Equal(naturalLog):
		winner = domain.ModelNaturalLog
	default:
		winner = domain.ModelMultipleProperties
	}
	bid := money.Max(cheapest, cost)
	if !bid.Equal(cheapest) {
		winner = domain.ModelCostMethod
	}

	rounded := bid.RoundDollar()
	clamped := rounded.Clamp(min, max).RoundDollar()
	switch {
	case clamped.GreaterThan(rounded):
		winner = domain.ModelMinimumQuote
	case clamped.LessThan(rounded):
		winner = domain.ModelMaximumQuote
	}
	return clamped.Decimal, winner
}

// Price runs the full pricing model for an input with resolved factors.
func Price(input domain.QuoteInput, factors domain.PricingFactors, cfg domain.CalculatorConfig) PriceQuote {
	baseAmount, candidates := Candidates(input, factors, cfg.Pricing)
	bid, winner := SelectFinalBid(candidates, cfg.MinimumQuote, cfg.MaximumQuote)
	return PriceQuote{
		BaseAmount: baseAmount,
		Candidates: candidates,
		FinalBid:   bid,
		Winner:     winner,
	}
}
