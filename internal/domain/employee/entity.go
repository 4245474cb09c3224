package employee

import "time"

// EmploymentStatus enum
type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

// Employee - The slice of employee identity the payroll engine consumes.
// SalaryGrade/StepIncrement resolve to a monthly salary through the salary
// provider; employees without an assignment are skipped during generation.
type Employee struct {
	ID            string
	FirstName     string
	LastName      string
	Position      *string
	SalaryGrade   *int
	StepIncrement *int
	Status        EmploymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName returns "First Last" for reporting.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// HasSalaryGrade reports whether the employee can be paid at all.
func (e Employee) HasSalaryGrade() bool {
	return e.SalaryGrade != nil && e.StepIncrement != nil
}
