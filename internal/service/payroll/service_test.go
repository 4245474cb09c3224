package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/campus-hr/payroll-backend-go/internal/domain/employee"
	domain "github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== FAKES ==========

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, e := range f.employees {
		for _, id := range ids {
			if e.ID == id {
				result = append(result, e)
			}
		}
	}
	return result, nil
}

func (f *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakeSalaryProvider struct {
	salaries map[int]decimal.Decimal // keyed by grade, step ignored
}

func (f *fakeSalaryProvider) MonthlySalary(_ context.Context, grade, _ int) (decimal.Decimal, error) {
	salary, ok := f.salaries[grade]
	if !ok {
		return decimal.Zero, domain.ErrSalaryGradeNotFound
	}
	return salary, nil
}

type fakeAttendanceProvider struct {
	records map[string][]domain.AttendanceRecord
}

func (f *fakeAttendanceProvider) RecordsForPeriod(_ context.Context, employeeID string, _, _ time.Time) ([]domain.AttendanceRecord, error) {
	return f.records[employeeID], nil
}

type fakeLeaveProvider struct {
	leaves map[string][]domain.LeaveGrant
}

func (f *fakeLeaveProvider) ApprovedLeaves(_ context.Context, employeeID string, _, _ time.Time) ([]domain.LeaveGrant, error) {
	return f.leaves[employeeID], nil
}

type fakePeriodRepo struct {
	periods map[string]domain.Period
}

func (f *fakePeriodRepo) Create(_ context.Context, period domain.Period) (domain.Period, error) {
	f.periods[period.ID] = period
	return period, nil
}

func (f *fakePeriodRepo) GetByID(_ context.Context, id string) (domain.Period, error) {
	period, ok := f.periods[id]
	if !ok {
		return domain.Period{}, domain.ErrPeriodNotFound
	}
	return period, nil
}

func (f *fakePeriodRepo) List(_ context.Context) ([]domain.Period, error) {
	var result []domain.Period
	for _, p := range f.periods {
		result = append(result, p)
	}
	return result, nil
}

func (f *fakePeriodRepo) UpdateStatus(_ context.Context, id string, status domain.PeriodStatus) error {
	period, ok := f.periods[id]
	if !ok {
		return domain.ErrPeriodNotFound
	}
	period.Status = status
	f.periods[id] = period
	return nil
}

func (f *fakePeriodRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.periods[id]; !ok {
		return domain.ErrPeriodNotFound
	}
	delete(f.periods, id)
	return nil
}

type fakeRecordRepo struct {
	records map[string]domain.Record
	// conflictOn forces Create for this employee to fail with
	// ErrRecordAlreadyExists, simulating a lost insert race.
	conflictOn string
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[string]domain.Record{}}
}

func (f *fakeRecordRepo) Create(_ context.Context, record domain.Record) (domain.Record, error) {
	if record.EmployeeID == f.conflictOn {
		return domain.Record{}, domain.ErrRecordAlreadyExists
	}
	for _, r := range f.records {
		if r.EmployeeID == record.EmployeeID && r.PeriodID == record.PeriodID {
			return domain.Record{}, domain.ErrRecordAlreadyExists
		}
	}
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, id string) (domain.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return domain.Record{}, domain.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeRecordRepo) ExistsForEmployeePeriod(_ context.Context, employeeID, periodID string) (bool, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.PeriodID == periodID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecordRepo) ListByPeriod(_ context.Context, periodID string) ([]domain.Record, error) {
	var result []domain.Record
	for _, r := range f.records {
		if r.PeriodID == periodID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRecordRepo) ListByEmployee(_ context.Context, employeeID string) ([]domain.Record, error) {
	var result []domain.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRecordRepo) UpdateStatus(_ context.Context, id string, status domain.RecordStatus) error {
	record, ok := f.records[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	record.Status = status
	f.records[id] = record
	return nil
}

func (f *fakeRecordRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(f.records, id)
	return nil
}

// ========== FIXTURES ==========

const testPeriodID = "period-jan"

func intPtr(v int) *int { return &v }

func testEmployee(id string, grade *int) employee.Employee {
	return employee.Employee{
		ID:            id,
		FirstName:     "Maria",
		LastName:      "Santos",
		SalaryGrade:   grade,
		StepIncrement: intPtr(1),
		Status:        employee.StatusActive,
	}
}

type serviceFixture struct {
	employees *fakeEmployeeRepo
	records   *fakeRecordRepo
	service   domain.PayrollService
}

func newServiceFixture(employees []employee.Employee, attendance map[string][]domain.AttendanceRecord) serviceFixture {
	records := newFakeRecordRepo()
	periods := &fakePeriodRepo{periods: map[string]domain.Period{
		testPeriodID: {
			ID:        testPeriodID,
			Name:      "January 2024",
			StartDate: periodStart,
			EndDate:   periodEnd,
			Status:    domain.PeriodStatusDraft,
		},
	}}
	employeeRepo := &fakeEmployeeRepo{employees: employees}

	svc := NewService(
		&stubRateProvider{err: errStoreDown},
		employeeRepo,
		&fakeSalaryProvider{salaries: map[int]decimal.Decimal{11: dec("22000.00")}},
		&fakeAttendanceProvider{records: attendance},
		&fakeLeaveProvider{},
		periods,
		records,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return serviceFixture{employees: employeeRepo, records: records, service: svc}
}

// ========== TESTS ==========

func TestGenerate_CreatesPendingRecords(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(
		[]employee.Employee{testEmployee("emp-1", intPtr(11)), testEmployee("emp-2", intPtr(11))},
		map[string][]domain.AttendanceRecord{
			"emp-1": fullAttendance("emp-1", domain.AttendancePresent),
			"emp-2": fullAttendance("emp-2", domain.AttendancePresent),
		},
	)

	resp, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: testPeriodID})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Generated)
	assert.Len(t, resp.Records, 2)
	assert.Empty(t, resp.Skipped)
	for _, r := range resp.Records {
		assert.Equal(t, string(domain.RecordStatusPending), r.Status)
		assert.Equal(t, "20957.95", r.NetSalary.StringFixed(2))
	}
}

func TestGenerate_SkipsEmployeeWithoutSalaryGrade(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(
		[]employee.Employee{testEmployee("emp-1", nil)},
		map[string][]domain.AttendanceRecord{
			"emp-1": fullAttendance("emp-1", domain.AttendancePresent),
		},
	)

	resp, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: testPeriodID})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Generated)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "emp-1", resp.Skipped[0].EmployeeID)
	assert.Equal(t, "no salary grade assigned", resp.Skipped[0].Reason)
}

func TestGenerate_SkipsUnknownSalaryGrade(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(
		[]employee.Employee{testEmployee("emp-1", intPtr(99))},
		map[string][]domain.AttendanceRecord{
			"emp-1": fullAttendance("emp-1", domain.AttendancePresent),
		},
	)

	resp, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: testPeriodID})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Generated)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "salary grade not found", resp.Skipped[0].Reason)
}

func TestGenerate_SkipsExistingRecords(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(
		[]employee.Employee{testEmployee("emp-1", intPtr(11))},
		map[string][]domain.AttendanceRecord{
			"emp-1": fullAttendance("emp-1", domain.AttendancePresent),
		},
	)

	first, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: testPeriodID})
	require.NoError(t, err)
	require.Equal(t, 1, first.Generated)

	second, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: testPeriodID})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Generated)
	assert.Empty(t, second.Skipped)
	assert.Len(t, fx.records.records, 1)
}

func TestGenerate_LostInsertRaceIsNotAnError(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(
		[]employee.Employee{testEmployee("emp-1", intPtr(11)), testEmployee("emp-2", intPtr(11))},
		map[string][]domain.AttendanceRecord{
			"emp-1": fullAttendance("emp-1", domain.AttendancePresent),
			"emp-2": fullAttendance("emp-2", domain.AttendancePresent),
		},
	)
	fx.records.conflictOn = "emp-1"

	resp, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: testPeriodID})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generated)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "emp-2", resp.Records[0].EmployeeID)
}

func TestGenerate_UnknownPeriod(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(nil, nil)

	_, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: "missing"})

	assert.ErrorIs(t, err, domain.ErrPeriodNotFound)
}

func TestGenerate_RequiresPeriodID(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(nil, nil)

	_, err := fx.service.Generate(context.Background(), domain.GenerateRequest{})

	assert.Error(t, err)
}

func TestGenerate_ZeroAttendanceEmployeeStillGetsRecord(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(
		[]employee.Employee{testEmployee("emp-1", intPtr(11))},
		nil,
	)

	resp, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: testPeriodID})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Generated)
	record := resp.Records[0]
	assert.Equal(t, 22.0, record.DaysAbsent)
	assert.True(t, record.NetSalary.IsZero())
	assert.True(t, record.GrossPay.IsZero())
}

func TestGenerate_ExtrasOverrideDefaults(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(
		[]employee.Employee{testEmployee("emp-1", intPtr(11))},
		map[string][]domain.AttendanceRecord{
			"emp-1": fullAttendance("emp-1", domain.AttendancePresent),
		},
	)

	resp, err := fx.service.Generate(context.Background(), domain.GenerateRequest{
		PeriodID:     testPeriodID,
		AllowanceRLA: decPtr("0"),
		Honorarium:   decPtr("2000"),
	})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Generated)
	record := resp.Records[0]
	assert.Equal(t, "0.00", record.AllowanceRLA.StringFixed(2))
	assert.Equal(t, "2000.00", record.Honorarium.StringFixed(2))
	assert.Equal(t, "24000.00", record.GrossPay.StringFixed(2))
}

func TestUpdateRecordStatus(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(
		[]employee.Employee{testEmployee("emp-1", intPtr(11))},
		map[string][]domain.AttendanceRecord{
			"emp-1": fullAttendance("emp-1", domain.AttendancePresent),
		},
	)
	resp, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: testPeriodID})
	require.NoError(t, err)
	recordID := resp.Records[0].ID

	err = fx.service.UpdateRecordStatus(context.Background(), domain.UpdateRecordStatusRequest{
		ID: recordID, Status: string(domain.RecordStatusApproved),
	})
	require.NoError(t, err)

	record, err := fx.service.GetRecord(context.Background(), recordID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RecordStatusApproved), record.Status)
}

func TestUpdateRecordStatus_PaidRecordIsFinal(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(
		[]employee.Employee{testEmployee("emp-1", intPtr(11))},
		map[string][]domain.AttendanceRecord{
			"emp-1": fullAttendance("emp-1", domain.AttendancePresent),
		},
	)
	resp, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: testPeriodID})
	require.NoError(t, err)
	recordID := resp.Records[0].ID

	require.NoError(t, fx.service.UpdateRecordStatus(context.Background(), domain.UpdateRecordStatusRequest{
		ID: recordID, Status: string(domain.RecordStatusPaid),
	}))

	err = fx.service.UpdateRecordStatus(context.Background(), domain.UpdateRecordStatusRequest{
		ID: recordID, Status: string(domain.RecordStatusPending),
	})
	assert.ErrorIs(t, err, domain.ErrRecordAlreadyPaid)
}

func TestUpdateRecordStatus_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(nil, nil)

	err := fx.service.UpdateRecordStatus(context.Background(), domain.UpdateRecordStatusRequest{
		ID: "any", Status: "archived",
	})
	assert.Error(t, err)
}

func TestDeleteRecord_PaidRecordCannotBeDeleted(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(
		[]employee.Employee{testEmployee("emp-1", intPtr(11))},
		map[string][]domain.AttendanceRecord{
			"emp-1": fullAttendance("emp-1", domain.AttendancePresent),
		},
	)
	resp, err := fx.service.Generate(context.Background(), domain.GenerateRequest{PeriodID: testPeriodID})
	require.NoError(t, err)
	recordID := resp.Records[0].ID

	require.NoError(t, fx.service.UpdateRecordStatus(context.Background(), domain.UpdateRecordStatusRequest{
		ID: recordID, Status: string(domain.RecordStatusPaid),
	}))

	assert.ErrorIs(t, fx.service.DeleteRecord(context.Background(), recordID), domain.ErrCannotDeletePaid)

	require.NoError(t, fx.records.UpdateStatus(context.Background(), recordID, domain.RecordStatusApproved))
	assert.NoError(t, fx.service.DeleteRecord(context.Background(), recordID))
}

func TestCreatePeriod(t *testing.T) {
	t.Parallel()

	fx := newServiceFixture(nil, nil)

	created, err := fx.service.CreatePeriod(context.Background(), domain.CreatePeriodRequest{
		Name:      "February 2024",
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "February 2024", created.Name)
	assert.Equal(t, "2024-02-01", created.StartDate)
	assert.Equal(t, "2024-02-29", created.EndDate)
	assert.Equal(t, string(domain.PeriodStatusDraft), created.Status)
}

func TestCreatePeriod_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  domain.CreatePeriodRequest
	}{
		{name: "missing name", req: domain.CreatePeriodRequest{StartDate: "2024-02-01", EndDate: "2024-02-29"}},
		{name: "bad start date", req: domain.CreatePeriodRequest{Name: "Feb", StartDate: "02/01/2024", EndDate: "2024-02-29"}},
		{name: "end before start", req: domain.CreatePeriodRequest{Name: "Feb", StartDate: "2024-02-29", EndDate: "2024-02-01"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fx := newServiceFixture(nil, nil)
			_, err := fx.service.CreatePeriod(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
}
