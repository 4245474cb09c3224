package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceStatus enum
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceHalfDay AttendanceStatus = "half-day"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord - One attendance row per employee per calendar day.
// A working day with no record at all counts as absent.
type AttendanceRecord struct {
	EmployeeID string
	Date       time.Time
	Status     AttendanceStatus
	CheckIn    *time.Time
}

// LeaveGrant - Approved leave scoped to a payroll period. PaidPercentage is the
// fraction of normal pay (0-100) the employee receives for each leave day.
type LeaveGrant struct {
	EmployeeID     string
	LeaveTypeID    string
	NumberOfDays   float64
	PaidPercentage float64
}

// RateType enum
type RateType string

const (
	RateTypePercentage RateType = "percentage"
	RateTypeFixed      RateType = "fixed"
)

// DeductionType enum - the three mandatory statutory contributions
type DeductionType string

const (
	DeductionGSIS       DeductionType = "gsis"
	DeductionPhilHealth DeductionType = "philhealth"
	DeductionPagIBIG    DeductionType = "pagibig"
)

// DeductionRate - One configured rate row. Multiple rows may exist per
// deduction type, partitioned by [SalaryMin, SalaryMax]; a nil bound is
// unbounded on that side.
type DeductionRate struct {
	ID            string
	DeductionType DeductionType
	RateType      RateType
	RateValue     decimal.Decimal
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	SalaryMin     *decimal.Decimal
	SalaryMax     *decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TaxBracket - One progressive withholding bracket. The configured brackets
// are expected to partition the non-negative income axis.
type TaxBracket struct {
	ID             string
	IncomeFrom     decimal.Decimal
	IncomeTo       decimal.Decimal
	BaseTax        decimal.Decimal
	RatePercentage decimal.Decimal
	ExcessOver     decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusDraft      PeriodStatus = "draft"
	PeriodStatusProcessing PeriodStatus = "processing"
	PeriodStatusCompleted  PeriodStatus = "completed"
)

// Period - A payroll cycle with inclusive date bounds.
type Period struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultAllowanceRLA is the representation and living allowance applied when
// the generation request does not override it.
var DefaultAllowanceRLA = decimal.NewFromInt(1500)

// Extras - Configuration for one calculation. Defaults: AllowanceRLA 1500.00,
// everything else zero. PeriodStart/PeriodEnd bound the working-day count.
type Extras struct {
	AllowanceRLA    decimal.Decimal
	Honorarium      decimal.Decimal
	OvertimePay     decimal.Decimal
	OtherDeductions decimal.Decimal
	PeriodStart     time.Time
	PeriodEnd       time.Time
}

// DefaultExtras returns Extras with documented defaults for the given period.
func DefaultExtras(periodStart, periodEnd time.Time) Extras {
	return Extras{
		AllowanceRLA:    DefaultAllowanceRLA,
		Honorarium:      decimal.Zero,
		OvertimePay:     decimal.Zero,
		OtherDeductions: decimal.Zero,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
	}
}

// Result - The computed payroll breakdown for one employee for one period.
// Monetary fields are rounded to 2 decimals at assembly time; when
// DaysWorked <= 0 every monetary field is exactly zero.
type Result struct {
	BasicSalary         decimal.Decimal
	DailyRate           decimal.Decimal
	HourlyRate          decimal.Decimal
	DaysWorked          float64
	DaysAbsent          float64
	DaysHalfDay         int
	UndertimeMinutes    int
	LateMinutesTotal    int
	AllowanceRLA        decimal.Decimal
	Honorarium          decimal.Decimal
	OvertimePay         decimal.Decimal
	GrossPay            decimal.Decimal
	AbsenceDeduction    decimal.Decimal
	DeductionGSIS       decimal.Decimal
	DeductionPhilHealth decimal.Decimal
	DeductionPagIBIG    decimal.Decimal
	DeductionTax        decimal.Decimal
	OtherDeductions     decimal.Decimal
	TotalDeductions     decimal.Decimal
	NetSalary           decimal.Decimal
}

// RecordStatus enum
type RecordStatus string

const (
	RecordStatusPending  RecordStatus = "pending"
	RecordStatusApproved RecordStatus = "approved"
	RecordStatusPaid     RecordStatus = "paid"
)

// Record - A persisted payroll result. At most one record exists per
// (employee, period); the database enforces the uniqueness constraint.
type Record struct {
	ID         string
	EmployeeID string
	PeriodID   string
	Result
	Status    RecordStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}
