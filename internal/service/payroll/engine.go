// Package payroll implements the payroll computation engine: it converts a
// period's attendance records, approved leave grants and an employee's
// monthly salary into a fully itemized net-pay breakdown, with statutory
// contributions and progressive withholding tax resolved from configurable
// rate tables.
package payroll

import (
	"context"
	"math"

	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Standard government payroll conventions: 22 working days per month, 8-hour
// workdays.
const (
	workingDaysPerMonth = 22
	hoursPerDay         = 8
	minutesPerWorkday   = 480
)

var (
	decWorkingDaysPerMonth = decimal.NewFromInt(workingDaysPerMonth)
	decHoursPerDay         = decimal.NewFromInt(hoursPerDay)
	decMinutesPerWorkday   = decimal.NewFromInt(minutesPerWorkday)
)

// Engine computes payroll breakdowns. It holds no mutable state and performs
// no I/O of its own; rate lookups go through the injected provider, so the
// same inputs always produce the same Result and concurrent use across
// (employee, period) pairs is safe.
type Engine struct {
	contributions *RateResolver
	tax           *TaxBracketResolver
}

func NewEngine(rates payroll.RateProvider) *Engine {
	return &Engine{
		contributions: NewRateResolver(rates),
		tax:           NewTaxBracketResolver(rates),
	}
}

// Calculate produces the payroll breakdown for one employee for one period.
//
// Contributions are computed on the full monthly salary, not the
// absence-reduced basic salary: government contributions follow the salary
// grade, not attendance. The absence deduction is removed from basic salary
// once and is not part of total deductions.
func (e *Engine) Calculate(
	ctx context.Context,
	monthlySalary decimal.Decimal,
	records []payroll.AttendanceRecord,
	leaves []payroll.LeaveGrant,
	extras payroll.Extras,
) payroll.Result {
	// Intermediate rates keep full precision until used; rounding happens
	// only on reported fields.
	dailyRate := monthlySalary.Div(decWorkingDaysPerMonth)
	hourlyRate := dailyRate.Div(decHoursPerDay)

	profile := AggregateAttendance(records)
	daysWorked := MergeLeaveCredit(profile.DaysWorkedRaw, leaves)

	totalWorkingDays := 0
	if !extras.PeriodStart.IsZero() && !extras.PeriodEnd.IsZero() {
		totalWorkingDays = WorkingDaysBetween(extras.PeriodStart, extras.PeriodEnd)
	} else {
		// No period bounds supplied: fall back to counting the records.
		totalWorkingDays = len(records)
	}

	daysAbsent := math.Max(0, float64(totalWorkingDays)-daysWorked)

	// No compensable work means no statutory base, so no contributions can
	// be derived: every monetary field is zero and only the absence count is
	// still reported.
	if daysWorked <= 0 {
		return payroll.Result{DaysAbsent: daysAbsent}
	}

	absenceDeduction := dailyRate.Mul(decimal.NewFromFloat(daysAbsent)).Round(2)
	basicSalary := monthlySalary.Sub(absenceDeduction)

	grossPay := basicSalary.
		Add(extras.AllowanceRLA).
		Add(extras.Honorarium).
		Add(extras.OvertimePay)

	deductionGSIS := e.contributions.Resolve(ctx, payroll.DeductionGSIS, monthlySalary)
	deductionPhilHealth := e.contributions.Resolve(ctx, payroll.DeductionPhilHealth, monthlySalary)
	deductionPagIBIG := e.contributions.Resolve(ctx, payroll.DeductionPagIBIG, monthlySalary)

	taxableIncome := grossPay.
		Sub(deductionGSIS).
		Sub(deductionPhilHealth).
		Sub(deductionPagIBIG)
	deductionTax := e.tax.Resolve(ctx, taxableIncome)

	// Undertime charges a pro-rated fraction of a working day's basic pay.
	undertimeDeduction := decimal.Zero
	if profile.UndertimeMinutes > 0 {
		undertimeDeduction = decimal.NewFromInt(int64(profile.UndertimeMinutes)).
			Div(decMinutesPerWorkday).
			Mul(basicSalary.Div(decWorkingDaysPerMonth))
	}

	totalDeductions := deductionGSIS.
		Add(deductionPhilHealth).
		Add(deductionPagIBIG).
		Add(deductionTax).
		Add(undertimeDeduction).
		Add(extras.OtherDeductions)

	netSalary := grossPay.Sub(totalDeductions)

	return payroll.Result{
		BasicSalary:         basicSalary.Round(2),
		DailyRate:           dailyRate.Round(2),
		HourlyRate:          hourlyRate.Round(2),
		DaysWorked:          daysWorked,
		DaysAbsent:          daysAbsent,
		DaysHalfDay:         profile.DaysHalfDay,
		UndertimeMinutes:    profile.UndertimeMinutes,
		LateMinutesTotal:    profile.LateMinutesTotal,
		AllowanceRLA:        extras.AllowanceRLA.Round(2),
		Honorarium:          extras.Honorarium.Round(2),
		OvertimePay:         extras.OvertimePay.Round(2),
		GrossPay:            grossPay.Round(2),
		AbsenceDeduction:    absenceDeduction,
		DeductionGSIS:       deductionGSIS,
		DeductionPhilHealth: deductionPhilHealth,
		DeductionPagIBIG:    deductionPagIBIG,
		DeductionTax:        deductionTax,
		OtherDeductions:     extras.OtherDeductions.Round(2),
		TotalDeductions:     totalDeductions.Round(2),
		NetSalary:           netSalary.Round(2),
	}
}
