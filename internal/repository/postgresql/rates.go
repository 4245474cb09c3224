package postgresql

import (
	"context"
	"fmt"

	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/campus-hr/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type rateRepositoryImpl struct {
	db *database.DB
}

func NewRateRepository(db *database.DB) payroll.RateProvider {
	return &rateRepositoryImpl{db: db}
}

// ActiveDeductionRates implements payroll.RateProvider.
func (r *rateRepositoryImpl) ActiveDeductionRates(ctx context.Context, deductionType payroll.DeductionType) ([]payroll.DeductionRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, deduction_type, rate_type, rate_value,
			   min_amount, max_amount, salary_min, salary_max,
			   is_active, created_at, updated_at
		FROM deduction_rates
		WHERE deduction_type = $1 AND is_active = true
		ORDER BY salary_min DESC NULLS LAST
	`

	rows, err := q.Query(ctx, query, deductionType)
	if err != nil {
		return nil, fmt.Errorf("failed to get deduction rates: %w", err)
	}
	defer rows.Close()

	var rates []payroll.DeductionRate
	for rows.Next() {
		var rate payroll.DeductionRate
		var minAmount, maxAmount, salaryMin, salaryMax decimal.NullDecimal
		err := rows.Scan(
			&rate.ID,
			&rate.DeductionType,
			&rate.RateType,
			&rate.RateValue,
			&minAmount,
			&maxAmount,
			&salaryMin,
			&salaryMax,
			&rate.IsActive,
			&rate.CreatedAt,
			&rate.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deduction rate: %w", err)
		}

		rate.MinAmount = nullableDecimal(minAmount)
		rate.MaxAmount = nullableDecimal(maxAmount)
		rate.SalaryMin = nullableDecimal(salaryMin)
		rate.SalaryMax = nullableDecimal(salaryMax)
		rates = append(rates, rate)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return rates, nil
}

// ActiveTaxBrackets implements payroll.RateProvider.
func (r *rateRepositoryImpl) ActiveTaxBrackets(ctx context.Context) ([]payroll.TaxBracket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, income_from, income_to, base_tax, rate_percentage, excess_over,
			   is_active, created_at, updated_at
		FROM tax_brackets
		WHERE is_active = true
		ORDER BY income_from ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tax brackets: %w", err)
	}
	defer rows.Close()

	var brackets []payroll.TaxBracket
	for rows.Next() {
		var bracket payroll.TaxBracket
		err := rows.Scan(
			&bracket.ID,
			&bracket.IncomeFrom,
			&bracket.IncomeTo,
			&bracket.BaseTax,
			&bracket.RatePercentage,
			&bracket.ExcessOver,
			&bracket.IsActive,
			&bracket.CreatedAt,
			&bracket.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax bracket: %w", err)
		}
		brackets = append(brackets, bracket)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return brackets, nil
}

func nullableDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}
