package payroll

import (
	"context"
	"testing"

	domain "github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
)

func providerWithGSIS(rows ...domain.DeductionRate) *stubRateProvider {
	return &stubRateProvider{
		rates: map[domain.DeductionType][]domain.DeductionRate{
			domain.DeductionGSIS: rows,
		},
	}
}

func TestRateResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rows   []domain.DeductionRate
		salary string
		want   string
	}{
		{
			name: "percentage rate",
			rows: []domain.DeductionRate{
				{RateType: domain.RateTypePercentage, RateValue: dec("9"), IsActive: true},
			},
			salary: "22000",
			want:   "1980.00",
		},
		{
			name: "fixed rate ignores salary",
			rows: []domain.DeductionRate{
				{RateType: domain.RateTypeFixed, RateValue: dec("100"), IsActive: true},
			},
			salary: "90000",
			want:   "100.00",
		},
		{
			name: "clamped to max amount",
			rows: []domain.DeductionRate{
				{RateType: domain.RateTypePercentage, RateValue: dec("2"),
					MaxAmount: decPtr("1600"), IsActive: true},
			},
			salary: "100000",
			want:   "1600.00",
		},
		{
			name: "raised to min amount",
			rows: []domain.DeductionRate{
				{RateType: domain.RateTypePercentage, RateValue: dec("2"),
					MinAmount: decPtr("250"), IsActive: true},
			},
			salary: "5000",
			want:   "250.00",
		},
		{
			name: "salary below range excluded",
			rows: []domain.DeductionRate{
				{RateType: domain.RateTypePercentage, RateValue: dec("9"),
					SalaryMin: decPtr("30000"), IsActive: true},
			},
			salary: "22000",
			want:   "0.00",
		},
		{
			name: "salary above range excluded",
			rows: []domain.DeductionRate{
				{RateType: domain.RateTypePercentage, RateValue: dec("9"),
					SalaryMax: decPtr("20000"), IsActive: true},
			},
			salary: "22000",
			want:   "0.00",
		},
		{
			name: "range bounds are inclusive",
			rows: []domain.DeductionRate{
				{RateType: domain.RateTypePercentage, RateValue: dec("9"),
					SalaryMin: decPtr("22000"), SalaryMax: decPtr("22000"), IsActive: true},
			},
			salary: "22000",
			want:   "1980.00",
		},
		{
			name: "overlapping rows pick highest salary_min",
			rows: []domain.DeductionRate{
				{RateType: domain.RateTypePercentage, RateValue: dec("5"),
					SalaryMin: decPtr("0"), IsActive: true},
				{RateType: domain.RateTypePercentage, RateValue: dec("9"),
					SalaryMin: decPtr("20000"), IsActive: true},
			},
			salary: "22000",
			want:   "1980.00",
		},
		{
			name: "bounded row beats unbounded row",
			rows: []domain.DeductionRate{
				{RateType: domain.RateTypePercentage, RateValue: dec("5"), IsActive: true},
				{RateType: domain.RateTypePercentage, RateValue: dec("9"),
					SalaryMin: decPtr("10000"), IsActive: true},
			},
			salary: "22000",
			want:   "1980.00",
		},
		{
			name: "inactive row skipped",
			rows: []domain.DeductionRate{
				{RateType: domain.RateTypePercentage, RateValue: dec("9"), IsActive: false},
			},
			salary: "22000",
			want:   "0.00",
		},
		{
			name:   "no rows resolves to zero",
			rows:   nil,
			salary: "22000",
			want:   "0.00",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := NewRateResolver(providerWithGSIS(tt.rows...))
			got := resolver.Resolve(context.Background(), domain.DeductionGSIS, dec(tt.salary))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestRateResolver_FallbackWhenProviderFails(t *testing.T) {
	t.Parallel()

	resolver := NewRateResolver(&stubRateProvider{err: errStoreDown})
	salary := dec("22000")

	assertMoney(t, "1980.00", resolver.Resolve(context.Background(), domain.DeductionGSIS, salary))
	assertMoney(t, "440.00", resolver.Resolve(context.Background(), domain.DeductionPhilHealth, salary))
	assertMoney(t, "100.00", resolver.Resolve(context.Background(), domain.DeductionPagIBIG, salary))
}

func TestRateResolver_FallbackCaps(t *testing.T) {
	t.Parallel()

	resolver := NewRateResolver(&stubRateProvider{err: errStoreDown})
	salary := dec("200000")

	assertMoney(t, "1600.00", resolver.Resolve(context.Background(), domain.DeductionPhilHealth, salary))
	assertMoney(t, "100.00", resolver.Resolve(context.Background(), domain.DeductionPagIBIG, salary))
}

func TestTaxBracketResolver_Resolve(t *testing.T) {
	t.Parallel()

	brackets := []domain.TaxBracket{
		{IncomeFrom: dec("0"), IncomeTo: dec("20833"), IsActive: true},
		{IncomeFrom: dec("20833.01"), IncomeTo: dec("33332"),
			RatePercentage: dec("15"), ExcessOver: dec("20833"), IsActive: true},
		{IncomeFrom: dec("33332.01"), IncomeTo: dec("66666"), BaseTax: dec("1875"),
			RatePercentage: dec("20"), ExcessOver: dec("33332"), IsActive: true},
	}

	tests := []struct {
		name   string
		income string
		want   string
	}{
		{name: "zero tier", income: "20000", want: "0.00"},
		{name: "second tier", income: "20980", want: "22.05"},
		{name: "third tier", income: "40000", want: "3208.60"},
		{name: "above all brackets", income: "70000", want: "0.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := NewTaxBracketResolver(&stubRateProvider{brackets: brackets})
			got := resolver.Resolve(context.Background(), dec(tt.income))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestTaxBracketResolver_NegativeTaxClampedToZero(t *testing.T) {
	t.Parallel()

	// Misconfigured bracket whose excess_over exceeds the income it covers.
	resolver := NewTaxBracketResolver(&stubRateProvider{brackets: []domain.TaxBracket{
		{IncomeFrom: dec("0"), IncomeTo: dec("30000"),
			RatePercentage: dec("15"), ExcessOver: dec("50000"), IsActive: true},
	}})

	got := resolver.Resolve(context.Background(), dec("25000"))
	assertMoney(t, "0.00", got)
}

func TestTaxBracketResolver_InactiveBracketSkipped(t *testing.T) {
	t.Parallel()

	resolver := NewTaxBracketResolver(&stubRateProvider{brackets: []domain.TaxBracket{
		{IncomeFrom: dec("0"), IncomeTo: dec("100000"),
			RatePercentage: dec("50"), IsActive: false},
	}})

	got := resolver.Resolve(context.Background(), dec("25000"))
	assertMoney(t, "0.00", got)
}

func TestTaxBracketResolver_FallbackSchedule(t *testing.T) {
	t.Parallel()

	resolver := NewTaxBracketResolver(&stubRateProvider{err: errStoreDown})

	tests := []struct {
		name   string
		income string
		want   string
	}{
		{name: "below first threshold", income: "20833", want: "0.00"},
		{name: "15 percent tier", income: "20980", want: "22.05"},
		{name: "20 percent tier", income: "40000", want: "3208.60"},
		{name: "25 percent tier", income: "100000", want: "16875.30"},
		{name: "30 percent tier", income: "200000", want: "43542.00"},
		{name: "top tier", income: "700000", want: "195208.70"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolver.Resolve(context.Background(), dec(tt.income))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}
