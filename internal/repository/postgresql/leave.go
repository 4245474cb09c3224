package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/campus-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/campus-hr/payroll-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) payroll.LeaveProvider {
	return &leaveRepositoryImpl{db: db}
}

// ApprovedLeaves implements payroll.LeaveProvider. Only approved requests that
// overlap the period are returned; the paid percentage comes from the leave
// type configuration.
func (r *leaveRepositoryImpl) ApprovedLeaves(ctx context.Context, employeeID string, start, end time.Time) ([]payroll.LeaveGrant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.employee_id, lr.leave_type_id, lr.number_of_days, lt.paid_percentage
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1
		  AND lr.status = 'approved'
		  AND lr.start_date <= $3
		  AND lr.end_date >= $2
		ORDER BY lr.start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved leaves: %w", err)
	}
	defer rows.Close()

	var leaves []payroll.LeaveGrant
	for rows.Next() {
		var leave payroll.LeaveGrant
		err := rows.Scan(
			&leave.EmployeeID,
			&leave.LeaveTypeID,
			&leave.NumberOfDays,
			&leave.PaidPercentage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave grant: %w", err)
		}
		leaves = append(leaves, leave)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return leaves, nil
}
