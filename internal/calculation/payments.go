package calculation

import (
	"github.com/costseg/quote-engine/internal/domain"
	money "github.com/costseg/quote-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// PaymentPlan derives the payment options for a final bid. Each amount is
// rounded to whole dollars independently, so installment periods need not sum
// exactly to the installment total.
func PaymentPlan(finalBid decimal.Decimal, rush bool, cfg domain.PaymentMultipliers, rushFee *decimal.Decimal) domain.PaymentOptions {
	bid := money.NewMoneyFromDecimal(finalBid)
	splitTotal := bid.Times(cfg.Split).RoundDollar()
	installmentTotal := bid.Times(cfg.Installment).RoundDollar()

	opts := domain.PaymentOptions{
		Upfront:              bid.Times(cfg.Upfront).RoundDollar().Decimal,
		SplitTotal:           splitTotal.Decimal,
		SplitPerPayment:      splitTotal.Per(cfg.SplitPayments).RoundDollar().Decimal,
		SplitPayments:        cfg.SplitPayments,
		InstallmentTotal:     installmentTotal.Decimal,
		InstallmentPerPeriod: installmentTotal.Per(cfg.InstallmentMonths).RoundDollar().Decimal,
		InstallmentPeriods:   cfg.InstallmentMonths,
	}

	if rush && rushFee != nil {
		fee := money.NewMoneyFromDecimal(*rushFee).RoundDollar().Decimal
		opts.RushFee = &fee
	}
	return opts
}
