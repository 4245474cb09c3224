package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/campus-hr/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) payroll.AttendanceProvider {
	return &attendanceRepositoryImpl{db: db}
}

// RecordsForPeriod implements payroll.AttendanceProvider.
func (r *attendanceRepositoryImpl) RecordsForPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]payroll.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, date, status, check_in
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance records: %w", err)
	}
	defer rows.Close()

	var records []payroll.AttendanceRecord
	for rows.Next() {
		var record payroll.AttendanceRecord
		err := rows.Scan(
			&record.EmployeeID,
			&record.Date,
			&record.Status,
			&record.CheckIn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
