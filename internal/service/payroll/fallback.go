package payroll

import (
	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Hard-coded statutory schedules, used only when the rate store is
// unreachable. They mirror the government deduction tables: GSIS 9% of
// salary, PhilHealth 2% capped at 1600, Pag-IBIG 2% capped at 100.

var (
	gsisRate      = decimal.NewFromFloat(0.09)
	twoPercent    = decimal.NewFromFloat(0.02)
	philHealthCap = decimal.NewFromInt(1600)
	pagIBIGCap    = decimal.NewFromInt(100)
)

func fallbackContribution(deductionType payroll.DeductionType, salary decimal.Decimal) decimal.Decimal {
	switch deductionType {
	case payroll.DeductionGSIS:
		return salary.Mul(gsisRate).Round(2)
	case payroll.DeductionPhilHealth:
		contribution := salary.Mul(twoPercent)
		if contribution.GreaterThan(philHealthCap) {
			contribution = philHealthCap
		}
		return contribution.Round(2)
	case payroll.DeductionPagIBIG:
		contribution := salary.Mul(twoPercent)
		if contribution.GreaterThan(pagIBIGCap) {
			contribution = pagIBIGCap
		}
		return contribution.Round(2)
	default:
		return decimal.Zero
	}
}

// fallbackTaxTier is one row of the fixed 6-tier monthly withholding
// schedule, applied with the same formula shape as the configured brackets:
// base + (income - excess) * rate.
type fallbackTaxTier struct {
	upTo   decimal.Decimal // inclusive upper bound; zero value = unbounded
	base   decimal.Decimal
	rate   decimal.Decimal
	excess decimal.Decimal
}

var fallbackTaxTiers = []fallbackTaxTier{
	{upTo: decimal.NewFromInt(20833)},
	{upTo: decimal.NewFromInt(33332), rate: decimal.NewFromFloat(0.15), excess: decimal.NewFromInt(20833)},
	{upTo: decimal.NewFromInt(66666), base: decimal.NewFromInt(1875), rate: decimal.NewFromFloat(0.20), excess: decimal.NewFromInt(33332)},
	{upTo: decimal.NewFromInt(166666), base: decimal.NewFromFloat(8541.80), rate: decimal.NewFromFloat(0.25), excess: decimal.NewFromInt(66666)},
	{upTo: decimal.NewFromInt(666666), base: decimal.NewFromFloat(33541.80), rate: decimal.NewFromFloat(0.30), excess: decimal.NewFromInt(166666)},
	{base: decimal.NewFromFloat(183541.80), rate: decimal.NewFromFloat(0.35), excess: decimal.NewFromInt(666666)},
}

func fallbackWithholdingTax(taxableIncome decimal.Decimal) decimal.Decimal {
	for _, tier := range fallbackTaxTiers {
		unbounded := tier.upTo.IsZero()
		if !unbounded && taxableIncome.GreaterThan(tier.upTo) {
			continue
		}

		tax := tier.base.Add(taxableIncome.Sub(tier.excess).Mul(tier.rate))
		if tax.IsNegative() {
			tax = decimal.Zero
		}
		return tax.Round(2)
	}
	return decimal.Zero
}
