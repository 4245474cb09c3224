package payroll

import (
	"math"
	"time"

	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
)

const (
	// halfDayUndertimeMinutes is the fixed undertime charge for a half-day
	// absence: four hours of an eight-hour workday.
	halfDayUndertimeMinutes = 240

	workdayCutoffHour = 8
)

// AttendanceProfile is the reduction of a period's attendance rows before
// leave credit is merged in. DaysWorkedRaw counts present/late as 1.0 and
// half-day as 0.5; days with no row contribute nothing and are implicitly
// absent.
type AttendanceProfile struct {
	DaysWorkedRaw    float64
	DaysHalfDay      int
	LateMinutesTotal int
	UndertimeMinutes int
}

// AggregateAttendance folds attendance records into an AttendanceProfile.
// Late records with a check-in after 08:00 contribute the same minute count
// to both LateMinutesTotal and UndertimeMinutes; half-days contribute a fixed
// 240 undertime minutes.
func AggregateAttendance(records []payroll.AttendanceRecord) AttendanceProfile {
	var profile AttendanceProfile

	for _, record := range records {
		switch record.Status {
		case payroll.AttendancePresent:
			profile.DaysWorkedRaw += 1.0
		case payroll.AttendanceLate:
			profile.DaysWorkedRaw += 1.0
			if record.CheckIn != nil {
				minutes := minutesPastCutoff(*record.CheckIn)
				profile.LateMinutesTotal += minutes
				profile.UndertimeMinutes += minutes
			}
		case payroll.AttendanceHalfDay:
			profile.DaysWorkedRaw += 0.5
			profile.DaysHalfDay++
			profile.UndertimeMinutes += halfDayUndertimeMinutes
		}
		// absent adds nothing
	}

	return profile
}

// MergeLeaveCredit adds paid-percentage-weighted leave days to the raw
// worked-day count. A 5-day leave at 60% paid contributes 3.0 days.
func MergeLeaveCredit(daysWorkedRaw float64, leaves []payroll.LeaveGrant) float64 {
	days := daysWorkedRaw
	for _, leave := range leaves {
		days += leave.NumberOfDays * leave.PaidPercentage / 100
	}
	return days
}

// WorkingDaysBetween counts Monday-Friday calendar days in [start, end]
// inclusive. Weekends are excluded from the denominator entirely.
func WorkingDaysBetween(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

// minutesPastCutoff returns the whole minutes (rounded up) between the 08:00
// cutoff on the check-in's day and the check-in itself, or 0 when the
// check-in is not after the cutoff.
func minutesPastCutoff(checkIn time.Time) int {
	cutoff := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		workdayCutoffHour, 0, 0, 0, checkIn.Location())
	if !checkIn.After(cutoff) {
		return 0
	}
	return int(math.Ceil(checkIn.Sub(cutoff).Seconds() / 60))
}
