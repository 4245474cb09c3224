package payroll

import (
	"context"

	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// RateResolver resolves a statutory contribution amount from the configured
// deduction-rate table. It never returns an error: an unreachable provider
// falls back to the hard-coded statutory formulas, and a salary no row covers
// resolves to 0.00.
type RateResolver struct {
	rates payroll.RateProvider
}

func NewRateResolver(rates payroll.RateProvider) *RateResolver {
	return &RateResolver{rates: rates}
}

func (r *RateResolver) Resolve(ctx context.Context, deductionType payroll.DeductionType, salary decimal.Decimal) decimal.Decimal {
	rows, err := r.rates.ActiveDeductionRates(ctx, deductionType)
	if err != nil {
		return fallbackContribution(deductionType, salary)
	}

	rate, ok := selectRate(rows, salary)
	if !ok {
		return decimal.Zero
	}

	var amount decimal.Decimal
	if rate.RateType == payroll.RateTypePercentage {
		amount = salary.Mul(rate.RateValue).Div(oneHundred)
	} else {
		amount = rate.RateValue
	}

	if rate.MinAmount != nil && amount.LessThan(*rate.MinAmount) {
		amount = *rate.MinAmount
	}
	if rate.MaxAmount != nil && amount.GreaterThan(*rate.MaxAmount) {
		amount = *rate.MaxAmount
	}

	return amount.Round(2)
}

// selectRate picks the single active row whose salary range contains salary.
// A nil bound is unbounded on that side. When several rows qualify the one
// with the highest salary_min wins; a row with no salary_min loses to any row
// that has one.
func selectRate(rows []payroll.DeductionRate, salary decimal.Decimal) (payroll.DeductionRate, bool) {
	var best payroll.DeductionRate
	found := false

	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		if row.SalaryMin != nil && salary.LessThan(*row.SalaryMin) {
			continue
		}
		if row.SalaryMax != nil && salary.GreaterThan(*row.SalaryMax) {
			continue
		}
		if !found || moreSpecific(row, best) {
			best = row
			found = true
		}
	}

	return best, found
}

func moreSpecific(a, b payroll.DeductionRate) bool {
	if a.SalaryMin == nil {
		return false
	}
	if b.SalaryMin == nil {
		return true
	}
	return a.SalaryMin.GreaterThan(*b.SalaryMin)
}

// TaxBracketResolver resolves progressive withholding tax from the configured
// bracket table. Like RateResolver it never returns an error; an unreachable
// provider falls back to the hard-coded schedule and income outside every
// bracket resolves to 0.00.
type TaxBracketResolver struct {
	rates payroll.RateProvider
}

func NewTaxBracketResolver(rates payroll.RateProvider) *TaxBracketResolver {
	return &TaxBracketResolver{rates: rates}
}

func (t *TaxBracketResolver) Resolve(ctx context.Context, taxableIncome decimal.Decimal) decimal.Decimal {
	brackets, err := t.rates.ActiveTaxBrackets(ctx)
	if err != nil {
		return fallbackWithholdingTax(taxableIncome)
	}

	for _, bracket := range brackets {
		if !bracket.IsActive {
			continue
		}
		if taxableIncome.LessThan(bracket.IncomeFrom) || taxableIncome.GreaterThan(bracket.IncomeTo) {
			continue
		}

		tax := bracket.BaseTax.Add(
			taxableIncome.Sub(bracket.ExcessOver).Mul(bracket.RatePercentage).Div(oneHundred))
		if tax.IsNegative() {
			tax = decimal.Zero
		}
		return tax.Round(2)
	}

	return decimal.Zero
}
