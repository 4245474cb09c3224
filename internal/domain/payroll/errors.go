package payroll

import "errors"

var (
	ErrPeriodNotFound      = errors.New("payroll period not found")
	ErrRecordNotFound      = errors.New("payroll record not found")
	ErrRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrRecordAlreadyPaid   = errors.New("payroll record already paid, cannot modify")
	ErrCannotDeletePaid    = errors.New("cannot delete paid payroll record")
	ErrSalaryGradeNotFound = errors.New("salary grade not found")
	ErrInvalidRecordStatus = errors.New("invalid payroll record status")
	ErrInvalidPeriodStatus = errors.New("invalid payroll period status")
)
