package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateProvider exposes the configured deduction rates and tax brackets.
// The engine treats a provider error as "configuration unreachable" and falls
// back to hard-coded statutory formulas; it never surfaces the error.
type RateProvider interface {
	ActiveDeductionRates(ctx context.Context, deductionType DeductionType) ([]DeductionRate, error)
	ActiveTaxBrackets(ctx context.Context) ([]TaxBracket, error)
}

// AttendanceProvider returns the attendance rows for one employee inside a
// period, already validated by the attendance subsystem.
type AttendanceProvider interface {
	RecordsForPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceRecord, error)
}

// LeaveProvider returns approved leave grants overlapping a period, with the
// paid percentage of each grant's leave type resolved.
type LeaveProvider interface {
	ApprovedLeaves(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveGrant, error)
}

// SalaryProvider resolves the current monthly salary for a salary grade and
// step increment. Returns ErrSalaryGradeNotFound when no row matches.
type SalaryProvider interface {
	MonthlySalary(ctx context.Context, grade, step int) (decimal.Decimal, error)
}

// PeriodRepository defines data access for payroll periods.
type PeriodRepository interface {
	Create(ctx context.Context, period Period) (Period, error)
	GetByID(ctx context.Context, id string) (Period, error)
	List(ctx context.Context) ([]Period, error)
	UpdateStatus(ctx context.Context, id string, status PeriodStatus) error
	Delete(ctx context.Context, id string) error
}

// RecordRepository defines data access for generated payroll records.
// Create must map a unique-constraint violation on (employee_id, period_id)
// to ErrRecordAlreadyExists so concurrent generation resolves as a conflict.
type RecordRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	ExistsForEmployeePeriod(ctx context.Context, employeeID, periodID string) (bool, error)
	ListByPeriod(ctx context.Context, periodID string) ([]Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	UpdateStatus(ctx context.Context, id string, status RecordStatus) error
	Delete(ctx context.Context, id string) error
}
