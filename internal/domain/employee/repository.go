package employee

import "context"

// EmployeeRepository defines the read surface payroll generation needs.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
}
