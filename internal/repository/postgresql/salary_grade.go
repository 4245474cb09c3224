package postgresql

import (
	"context"
	"fmt"

	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/campus-hr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type salaryGradeRepositoryImpl struct {
	db *database.DB
}

func NewSalaryGradeRepository(db *database.DB) payroll.SalaryProvider {
	return &salaryGradeRepositoryImpl{db: db}
}

// MonthlySalary implements payroll.SalaryProvider.
func (r *salaryGradeRepositoryImpl) MonthlySalary(ctx context.Context, grade, step int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT monthly_salary
		FROM salary_grades
		WHERE grade = $1 AND step = $2
	`

	var salary decimal.Decimal
	err := q.QueryRow(ctx, query, grade, step).Scan(&salary)

	if err == pgx.ErrNoRows {
		return decimal.Zero, payroll.ErrSalaryGradeNotFound
	}

	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get salary grade: %w", err)
	}

	return salary, nil
}
