package postgresql

import (
	"context"
	"fmt"

	"github.com/campus-hr/payroll-backend-go/internal/domain/employee"
	"github.com/campus-hr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, first_name, last_name, position, salary_grade, step_increment,
	status, created_at, updated_at
`

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1
	`

	var result employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.FirstName,
		&result.LastName,
		&result.Position,
		&result.SalaryGrade,
		&result.StepIncrement,
		&result.Status,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return result, nil
}

// GetByIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = ANY($1)
		ORDER BY last_name ASC, first_name ASC
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// GetActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE status = 'active'
		ORDER BY last_name ASC, first_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func scanEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(
			&e.ID,
			&e.FirstName,
			&e.LastName,
			&e.Position,
			&e.SalaryGrade,
			&e.StepIncrement,
			&e.Status,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}
