package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/campus-hr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// ========== PERIODS ==========

type periodRepositoryImpl struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) payroll.PeriodRepository {
	return &periodRepositoryImpl{db: db}
}

// Create implements payroll.PeriodRepository.
func (r *periodRepositoryImpl) Create(ctx context.Context, period payroll.Period) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (id, name, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, start_date, end_date, status, created_at, updated_at
	`

	var result payroll.Period
	err := q.QueryRow(ctx, query, period.ID, period.Name, period.StartDate, period.EndDate, period.Status).Scan(
		&result.ID,
		&result.Name,
		&result.StartDate,
		&result.EndDate,
		&result.Status,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		return payroll.Period{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return result, nil
}

// GetByID implements payroll.PeriodRepository.
func (r *periodRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_date, end_date, status, created_at, updated_at
		FROM payroll_periods
		WHERE id = $1
	`

	var result payroll.Period
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.StartDate,
		&result.EndDate,
		&result.Status,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return payroll.Period{}, payroll.ErrPeriodNotFound
	}

	if err != nil {
		return payroll.Period{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return result, nil
}

// List implements payroll.PeriodRepository.
func (r *periodRepositoryImpl) List(ctx context.Context) ([]payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_date, end_date, status, created_at, updated_at
		FROM payroll_periods
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.Period
	for rows.Next() {
		var p payroll.Period
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.StartDate,
			&p.EndDate,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return periods, nil
}

// UpdateStatus implements payroll.PeriodRepository.
func (r *periodRepositoryImpl) UpdateStatus(ctx context.Context, id string, status payroll.PeriodStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payroll period status: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}

	return nil
}

// Delete implements payroll.PeriodRepository.
func (r *periodRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_periods WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll period: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}

	return nil
}

// ========== RECORDS ==========

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) payroll.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

const recordColumns = `
	pr.id, pr.employee_id, pr.period_id,
	pr.basic_salary, pr.daily_rate, pr.hourly_rate,
	pr.days_worked, pr.days_absent, pr.days_half_day,
	pr.undertime_minutes, pr.late_minutes_total,
	pr.allowance_rla, pr.honorarium, pr.overtime_pay, pr.gross_pay,
	pr.absence_deduction, pr.deduction_gsis, pr.deduction_philhealth,
	pr.deduction_pagibig, pr.deduction_tax, pr.other_deductions,
	pr.total_deductions, pr.net_salary,
	pr.status, pr.created_at, pr.updated_at
`

// Create implements payroll.RecordRepository. The payroll_records table
// carries a unique constraint on (employee_id, period_id); a violation maps to
// ErrRecordAlreadyExists so generation races resolve as conflicts.
func (r *recordRepositoryImpl) Create(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_id,
			basic_salary, daily_rate, hourly_rate,
			days_worked, days_absent, days_half_day,
			undertime_minutes, late_minutes_total,
			allowance_rla, honorarium, overtime_pay, gross_pay,
			absence_deduction, deduction_gsis, deduction_philhealth,
			deduction_pagibig, deduction_tax, other_deductions,
			total_deductions, net_salary, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		RETURNING id, employee_id, period_id,
			basic_salary, daily_rate, hourly_rate,
			days_worked, days_absent, days_half_day,
			undertime_minutes, late_minutes_total,
			allowance_rla, honorarium, overtime_pay, gross_pay,
			absence_deduction, deduction_gsis, deduction_philhealth,
			deduction_pagibig, deduction_tax, other_deductions,
			total_deductions, net_salary, status, created_at, updated_at
	`

	var result payroll.Record
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.PeriodID,
		record.BasicSalary, record.DailyRate, record.HourlyRate,
		record.DaysWorked, record.DaysAbsent, record.DaysHalfDay,
		record.UndertimeMinutes, record.LateMinutesTotal,
		record.AllowanceRLA, record.Honorarium, record.OvertimePay, record.GrossPay,
		record.AbsenceDeduction, record.DeductionGSIS, record.DeductionPhilHealth,
		record.DeductionPagIBIG, record.DeductionTax, record.OtherDeductions,
		record.TotalDeductions, record.NetSalary, record.Status,
	).Scan(
		&result.ID, &result.EmployeeID, &result.PeriodID,
		&result.BasicSalary, &result.DailyRate, &result.HourlyRate,
		&result.DaysWorked, &result.DaysAbsent, &result.DaysHalfDay,
		&result.UndertimeMinutes, &result.LateMinutesTotal,
		&result.AllowanceRLA, &result.Honorarium, &result.OvertimePay, &result.GrossPay,
		&result.AbsenceDeduction, &result.DeductionGSIS, &result.DeductionPhilHealth,
		&result.DeductionPagIBIG, &result.DeductionTax, &result.OtherDeductions,
		&result.TotalDeductions, &result.NetSalary, &result.Status,
		&result.CreatedAt, &result.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.Record{}, payroll.ErrRecordAlreadyExists
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return result, nil
}

// GetByID implements payroll.RecordRepository.
func (r *recordRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `,
			   e.first_name || ' ' || e.last_name AS employee_name
		FROM payroll_records pr
		LEFT JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

// ExistsForEmployeePeriod implements payroll.RecordRepository.
func (r *recordRepositoryImpl) ExistsForEmployeePeriod(ctx context.Context, employeeID, periodID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_records
			WHERE employee_id = $1 AND period_id = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, periodID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payroll record existence: %w", err)
	}

	return exists, nil
}

// ListByPeriod implements payroll.RecordRepository.
func (r *recordRepositoryImpl) ListByPeriod(ctx context.Context, periodID string) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `,
			   e.first_name || ' ' || e.last_name AS employee_name
		FROM payroll_records pr
		LEFT JOIN employees e ON pr.employee_id = e.id
		WHERE pr.period_id = $1
		ORDER BY e.last_name ASC, e.first_name ASC
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListByEmployee implements payroll.RecordRepository.
func (r *recordRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `,
			   e.first_name || ' ' || e.last_name AS employee_name
		FROM payroll_records pr
		LEFT JOIN employees e ON pr.employee_id = e.id
		WHERE pr.employee_id = $1
		ORDER BY pr.created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// UpdateStatus implements payroll.RecordRepository.
func (r *recordRepositoryImpl) UpdateStatus(ctx context.Context, id string, status payroll.RecordStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payroll record status: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

// Delete implements payroll.RecordRepository.
func (r *recordRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_records WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

func scanRecord(row pgx.Row) (payroll.Record, error) {
	var record payroll.Record
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.PeriodID,
		&record.BasicSalary, &record.DailyRate, &record.HourlyRate,
		&record.DaysWorked, &record.DaysAbsent, &record.DaysHalfDay,
		&record.UndertimeMinutes, &record.LateMinutesTotal,
		&record.AllowanceRLA, &record.Honorarium, &record.OvertimePay, &record.GrossPay,
		&record.AbsenceDeduction, &record.DeductionGSIS, &record.DeductionPhilHealth,
		&record.DeductionPagIBIG, &record.DeductionTax, &record.OtherDeductions,
		&record.TotalDeductions, &record.NetSalary, &record.Status,
		&record.CreatedAt, &record.UpdatedAt,
		&record.EmployeeName,
	)
	return record, err
}

func scanRecords(rows pgx.Rows) ([]payroll.Record, error) {
	var records []payroll.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
