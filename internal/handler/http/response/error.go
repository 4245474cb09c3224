package response

import (
	"errors"
	"net/http"

	"github.com/campus-hr/payroll-backend-go/internal/domain/employee"
	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/campus-hr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrSalaryGradeNotFound):
		NotFound(w, "Salary grade not found")
	case errors.Is(err, payroll.ErrRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrRecordAlreadyPaid):
		Conflict(w, "Payroll record is already paid")
	case errors.Is(err, payroll.ErrCannotDeletePaid):
		Conflict(w, "Paid payroll records cannot be deleted")
	case errors.Is(err, payroll.ErrInvalidRecordStatus):
		BadRequest(w, "Invalid payroll record status", nil)
	case errors.Is(err, payroll.ErrInvalidPeriodStatus):
		BadRequest(w, "Invalid payroll period status", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
