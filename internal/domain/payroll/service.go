package payroll

import "context"

// PayrollService is the application surface over the computation engine:
// period management, batch generation and record access. The engine itself is
// a pure function; everything stateful (idempotency, persistence) lives here.
type PayrollService interface {
	// Generation
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// Records
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecordsByPeriod(ctx context.Context, periodID string) ([]RecordResponse, error)
	ListRecordsByEmployee(ctx context.Context, employeeID string) ([]RecordResponse, error)
	UpdateRecordStatus(ctx context.Context, req UpdateRecordStatusRequest) error
	DeleteRecord(ctx context.Context, id string) error

	// Periods
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (PeriodResponse, error)
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)
	UpdatePeriodStatus(ctx context.Context, req UpdatePeriodStatusRequest) error
	DeletePeriod(ctx context.Context, id string) error

	// Rate tables (read-only surface)
	ListDeductionRates(ctx context.Context, deductionType string) ([]DeductionRateResponse, error)
	ListTaxBrackets(ctx context.Context) ([]TaxBracketResponse, error)
}
