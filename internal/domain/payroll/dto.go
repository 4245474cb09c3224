package payroll

import (
	"github.com/campus-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

type GenerateRequest struct {
	PeriodID        string           `json:"period_id"`
	EmployeeIDs     []string         `json:"employee_ids,omitempty"` // Empty = all active employees
	AllowanceRLA    *decimal.Decimal `json:"allowance_rla,omitempty"`
	Honorarium      *decimal.Decimal `json:"honorarium,omitempty"`
	OvertimePay     *decimal.Decimal `json:"overtime_pay,omitempty"`
	OtherDeductions *decimal.Decimal `json:"other_deductions,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodID == "" {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}
	if r.AllowanceRLA != nil && r.AllowanceRLA.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowance_rla", Message: "must be non-negative"})
	}
	if r.Honorarium != nil && r.Honorarium.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "honorarium", Message: "must be non-negative"})
	}
	if r.OvertimePay != nil && r.OvertimePay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_pay", Message: "must be non-negative"})
	}
	if r.OtherDeductions != nil && r.OtherDeductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_deductions", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SkippedEmployee reports why one employee was left out of a generation run.
type SkippedEmployee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Reason       string `json:"reason"`
}

type GenerateResponse struct {
	Generated int               `json:"generated"`
	Records   []RecordResponse  `json:"records"`
	Skipped   []SkippedEmployee `json:"skipped,omitempty"`
}

// ========== RECORD DTOs ==========

type RecordResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        string          `json:"employee_name,omitempty"`
	PeriodID            string          `json:"period_id"`
	BasicSalary         decimal.Decimal `json:"basic_salary"`
	DailyRate           decimal.Decimal `json:"daily_rate"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	DaysWorked          float64         `json:"days_worked"`
	DaysAbsent          float64         `json:"days_absent"`
	DaysHalfDay         int             `json:"days_half_day"`
	UndertimeMinutes    int             `json:"undertime_minutes"`
	LateMinutesTotal    int             `json:"late_minutes_total"`
	AllowanceRLA        decimal.Decimal `json:"allowance_rla"`
	Honorarium          decimal.Decimal `json:"honorarium"`
	OvertimePay         decimal.Decimal `json:"overtime_pay"`
	GrossPay            decimal.Decimal `json:"gross_pay"`
	AbsenceDeduction    decimal.Decimal `json:"absence_deduction"`
	DeductionGSIS       decimal.Decimal `json:"deduction_gsis"`
	DeductionPhilHealth decimal.Decimal `json:"deduction_philhealth"`
	DeductionPagIBIG    decimal.Decimal `json:"deduction_pagibig"`
	DeductionTax        decimal.Decimal `json:"deduction_tax"`
	OtherDeductions     decimal.Decimal `json:"other_deductions"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetSalary           decimal.Decimal `json:"net_salary"`
	Status              string          `json:"status"`
}

type UpdateRecordStatusRequest struct {
	ID     string
	Status string `json:"status"`
}

func (r *UpdateRecordStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	switch RecordStatus(r.Status) {
	case RecordStatusPending, RecordStatusApproved, RecordStatusPaid:
	default:
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'pending', 'approved' or 'paid'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePeriodStatusRequest struct {
	ID     string
	Status string `json:"status"`
}

func (r *UpdatePeriodStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	switch PeriodStatus(r.Status) {
	case PeriodStatusDraft, PeriodStatusProcessing, PeriodStatusCompleted:
	default:
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'draft', 'processing' or 'completed'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// ========== RATE TABLE DTOs ==========

type DeductionRateResponse struct {
	ID            string           `json:"id"`
	DeductionType string           `json:"deduction_type"`
	RateType      string           `json:"rate_type"`
	RateValue     decimal.Decimal  `json:"rate_value"`
	MinAmount     *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount     *decimal.Decimal `json:"max_amount,omitempty"`
	SalaryMin     *decimal.Decimal `json:"salary_min,omitempty"`
	SalaryMax     *decimal.Decimal `json:"salary_max,omitempty"`
	IsActive      bool             `json:"is_active"`
}

type TaxBracketResponse struct {
	ID             string          `json:"id"`
	IncomeFrom     decimal.Decimal `json:"income_from"`
	IncomeTo       decimal.Decimal `json:"income_to"`
	BaseTax        decimal.Decimal `json:"base_tax"`
	RatePercentage decimal.Decimal `json:"rate_percentage"`
	ExcessOver     decimal.Decimal `json:"excess_over"`
	IsActive       bool            `json:"is_active"`
}
