package postgresql

import (
	"context"
	"fmt"

	"github.com/congeflow/leave-backend-go/internal/domain/leave"
	"github.com/congeflow/leave-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, employee_name, leave_type,
			start_date, end_date, day_count, reason,
			status, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10
		)
	`

	_, err := q.Exec(ctx, query,
		request.ID, request.EmployeeID, request.EmployeeName, request.LeaveType,
		request.StartDate, request.EndDate, request.DayCount, request.Reason,
		request.Status, request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert leave request %s: %w", request.ID, err)
	}
	return nil
}

// UpdateDecision implements leave.LeaveRequestRepository.
// Only pending rows are updated so a stale writer cannot overwrite a recorded decision.
func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, decision_comment = $3, decided_by = $4, decided_at = $5
		WHERE id = $1 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query,
		request.ID, request.Status, request.DecisionComment, request.DecidedBy, request.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("update leave request %s: %w", request.ID, err)
	}
	if commandTag.RowsAffected() != 1 {
		return fmt.Errorf("leave request %s: %w", request.ID, leave.ErrLeaveRequestAlreadyDecided)
	}
	return nil
}

// List implements leave.LeaveRequestRepository. Rows come back in insertion order.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, employee_name, leave_type, start_date, end_date, day_count,
			   reason, status, decision_comment, decided_by, decided_at, created_at
		FROM leave_requests
		ORDER BY seq
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var lr leave.LeaveRequest
		err := rows.Scan(
			&lr.ID,
			&lr.EmployeeID,
			&lr.EmployeeName,
			&lr.LeaveType,
			&lr.StartDate,
			&lr.EndDate,
			&lr.DayCount,
			&lr.Reason,
			&lr.Status,
			&lr.DecisionComment,
			&lr.DecidedBy,
			&lr.DecidedAt,
			&lr.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
