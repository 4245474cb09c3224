package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campus-hr/payroll-backend-go/internal/domain/employee"
	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/campus-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// Service orchestrates payroll generation around the pure engine: resolving
// employees and salaries, enforcing one record per (employee, period) and
// persisting results. Duplicate creation under concurrent generation requests
// is handled as an expected conflict, never a crash.
type Service struct {
	engine     *Engine
	rates      payroll.RateProvider
	employees  employee.EmployeeRepository
	salaries   payroll.SalaryProvider
	attendance payroll.AttendanceProvider
	leaves     payroll.LeaveProvider
	periods    payroll.PeriodRepository
	records    payroll.RecordRepository
	logger     *slog.Logger
}

func NewService(
	rates payroll.RateProvider,
	employees employee.EmployeeRepository,
	salaries payroll.SalaryProvider,
	attendance payroll.AttendanceProvider,
	leaves payroll.LeaveProvider,
	periods payroll.PeriodRepository,
	records payroll.RecordRepository,
	logger *slog.Logger,
) payroll.PayrollService {
	return &Service{
		engine:     NewEngine(rates),
		rates:      rates,
		employees:  employees,
		salaries:   salaries,
		attendance: attendance,
		leaves:     leaves,
		periods:    periods,
		records:    records,
		logger:     logger,
	}
}

// ========== GENERATION ==========

func (s *Service) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResponse{}, err
	}

	period, err := s.periods.GetByID(ctx, req.PeriodID)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	var employees []employee.Employee
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employees.GetByIDs(ctx, req.EmployeeIDs)
	} else {
		employees, err = s.employees.GetActive(ctx)
	}
	if err != nil {
		return payroll.GenerateResponse{}, fmt.Errorf("failed to get employees: %w", err)
	}

	extras := resolveExtras(req, period)

	resp := payroll.GenerateResponse{Records: []payroll.RecordResponse{}}
	for _, emp := range employees {
		exists, err := s.records.ExistsForEmployeePeriod(ctx, emp.ID, period.ID)
		if err != nil {
			return payroll.GenerateResponse{}, fmt.Errorf("failed to check existing payroll record: %w", err)
		}
		if exists {
			continue // already generated for this period
		}

		if !emp.HasSalaryGrade() {
			resp.Skipped = append(resp.Skipped, payroll.SkippedEmployee{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName(),
				Reason:       "no salary grade assigned",
			})
			continue
		}

		monthlySalary, err := s.salaries.MonthlySalary(ctx, *emp.SalaryGrade, *emp.StepIncrement)
		if errors.Is(err, payroll.ErrSalaryGradeNotFound) {
			resp.Skipped = append(resp.Skipped, payroll.SkippedEmployee{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName(),
				Reason:       "salary grade not found",
			})
			continue
		}
		if err != nil {
			return payroll.GenerateResponse{}, fmt.Errorf("failed to resolve monthly salary for employee %s: %w", emp.ID, err)
		}

		attendanceRecords, err := s.attendance.RecordsForPeriod(ctx, emp.ID, period.StartDate, period.EndDate)
		if err != nil {
			return payroll.GenerateResponse{}, fmt.Errorf("failed to get attendance for employee %s: %w", emp.ID, err)
		}

		approvedLeaves, err := s.leaves.ApprovedLeaves(ctx, emp.ID, period.StartDate, period.EndDate)
		if err != nil {
			return payroll.GenerateResponse{}, fmt.Errorf("failed to get approved leaves for employee %s: %w", emp.ID, err)
		}

		result := s.engine.Calculate(ctx, monthlySalary, attendanceRecords, approvedLeaves, extras)

		record := payroll.Record{
			ID:         uuid.NewString(),
			EmployeeID: emp.ID,
			PeriodID:   period.ID,
			Result:     result,
			Status:     payroll.RecordStatusPending,
		}

		created, err := s.records.Create(ctx, record)
		if err != nil {
			if errors.Is(err, payroll.ErrRecordAlreadyExists) {
				// Lost a concurrent generation race; the other run's record wins.
				continue
			}
			return payroll.GenerateResponse{}, fmt.Errorf("failed to create payroll record for employee %s: %w", emp.ID, err)
		}

		resp.Records = append(resp.Records, mapRecordResponse(created))
		resp.Generated++
	}

	s.logger.Info("payroll generated",
		slog.String("period_id", period.ID),
		slog.Int("generated", resp.Generated),
		slog.Int("skipped", len(resp.Skipped)),
	)

	return resp, nil
}

func resolveExtras(req payroll.GenerateRequest, period payroll.Period) payroll.Extras {
	extras := payroll.DefaultExtras(period.StartDate, period.EndDate)
	if req.AllowanceRLA != nil {
		extras.AllowanceRLA = *req.AllowanceRLA
	}
	if req.Honorarium != nil {
		extras.Honorarium = *req.Honorarium
	}
	if req.OvertimePay != nil {
		extras.OvertimePay = *req.OvertimePay
	}
	if req.OtherDeductions != nil {
		extras.OtherDeductions = *req.OtherDeductions
	}
	return extras
}

// ========== RECORDS ==========

func (s *Service) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapRecordResponse(record), nil
}

func (s *Service) ListRecordsByPeriod(ctx context.Context, periodID string) ([]payroll.RecordResponse, error) {
	records, err := s.records.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return mapRecordResponses(records), nil
}

func (s *Service) ListRecordsByEmployee(ctx context.Context, employeeID string) ([]payroll.RecordResponse, error) {
	records, err := s.records.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapRecordResponses(records), nil
}

func (s *Service) UpdateRecordStatus(ctx context.Context, req payroll.UpdateRecordStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	record, err := s.records.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if record.Status == payroll.RecordStatusPaid {
		return payroll.ErrRecordAlreadyPaid
	}

	return s.records.UpdateStatus(ctx, req.ID, payroll.RecordStatus(req.Status))
}

func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status == payroll.RecordStatusPaid {
		return payroll.ErrCannotDeletePaid
	}

	return s.records.Delete(ctx, id)
}

// ========== PERIODS ==========

func (s *Service) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	period := payroll.Period{
		ID:        uuid.NewString(),
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    payroll.PeriodStatusDraft,
	}

	created, err := s.periods.Create(ctx, period)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return mapPeriodResponse(created), nil
}

func (s *Service) GetPeriod(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	period, err := s.periods.GetByID(ctx, id)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return mapPeriodResponse(period), nil
}

func (s *Service) ListPeriods(ctx context.Context) ([]payroll.PeriodResponse, error) {
	periods, err := s.periods.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, mapPeriodResponse(p))
	}
	return result, nil
}

func (s *Service) UpdatePeriodStatus(ctx context.Context, req payroll.UpdatePeriodStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.periods.UpdateStatus(ctx, req.ID, payroll.PeriodStatus(req.Status))
}

func (s *Service) DeletePeriod(ctx context.Context, id string) error {
	return s.periods.Delete(ctx, id)
}

// ========== RATE TABLES ==========

func (s *Service) ListDeductionRates(ctx context.Context, deductionType string) ([]payroll.DeductionRateResponse, error) {
	types := []payroll.DeductionType{payroll.DeductionGSIS, payroll.DeductionPhilHealth, payroll.DeductionPagIBIG}
	if deductionType != "" {
		types = []payroll.DeductionType{payroll.DeductionType(deductionType)}
	}

	var result []payroll.DeductionRateResponse
	for _, dt := range types {
		rates, err := s.rates.ActiveDeductionRates(ctx, dt)
		if err != nil {
			return nil, err
		}
		for _, r := range rates {
			result = append(result, payroll.DeductionRateResponse{
				ID:            r.ID,
				DeductionType: string(r.DeductionType),
				RateType:      string(r.RateType),
				RateValue:     r.RateValue,
				MinAmount:     r.MinAmount,
				MaxAmount:     r.MaxAmount,
				SalaryMin:     r.SalaryMin,
				SalaryMax:     r.SalaryMax,
				IsActive:      r.IsActive,
			})
		}
	}
	return result, nil
}

func (s *Service) ListTaxBrackets(ctx context.Context) ([]payroll.TaxBracketResponse, error) {
	brackets, err := s.rates.ActiveTaxBrackets(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.TaxBracketResponse, 0, len(brackets))
	for _, b := range brackets {
		result = append(result, payroll.TaxBracketResponse{
			ID:             b.ID,
			IncomeFrom:     b.IncomeFrom,
			IncomeTo:       b.IncomeTo,
			BaseTax:        b.BaseTax,
			RatePercentage: b.RatePercentage,
			ExcessOver:     b.ExcessOver,
			IsActive:       b.IsActive,
		})
	}
	return result, nil
}

// ========== HELPERS ==========

func mapRecordResponse(r payroll.Record) payroll.RecordResponse {
	employeeName := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}

	return payroll.RecordResponse{
		ID:                  r.ID,
		EmployeeID:          r.EmployeeID,
		EmployeeName:        employeeName,
		PeriodID:            r.PeriodID,
		BasicSalary:         r.BasicSalary,
		DailyRate:           r.DailyRate,
		HourlyRate:          r.HourlyRate,
		DaysWorked:          r.DaysWorked,
		DaysAbsent:          r.DaysAbsent,
		DaysHalfDay:         r.DaysHalfDay,
		UndertimeMinutes:    r.UndertimeMinutes,
		LateMinutesTotal:    r.LateMinutesTotal,
		AllowanceRLA:        r.AllowanceRLA,
		Honorarium:          r.Honorarium,
		OvertimePay:         r.OvertimePay,
		GrossPay:            r.GrossPay,
		AbsenceDeduction:    r.AbsenceDeduction,
		DeductionGSIS:       r.DeductionGSIS,
		DeductionPhilHealth: r.DeductionPhilHealth,
		DeductionPagIBIG:    r.DeductionPagIBIG,
		DeductionTax:        r.DeductionTax,
		OtherDeductions:     r.OtherDeductions,
		TotalDeductions:     r.TotalDeductions,
		NetSalary:           r.NetSalary,
		Status:              string(r.Status),
	}
}

func mapRecordResponses(records []payroll.Record) []payroll.RecordResponse {
	result := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapRecordResponse(r))
	}
	return result
}

func mapPeriodResponse(p payroll.Period) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Status:    string(p.Status),
	}
}
