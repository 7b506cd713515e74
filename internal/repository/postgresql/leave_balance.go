package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/congeflow/leave-backend-go/internal/domain/leave"
	"github.com/congeflow/leave-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Upsert implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, balance leave.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)

	days, err := json.Marshal(balance.Days)
	if err != nil {
		return fmt.Errorf("encode leave balance days: %w", err)
	}

	query := `
		INSERT INTO leave_balances (employee_id, days, seniority_years, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id) DO UPDATE
		SET days = EXCLUDED.days,
			seniority_years = EXCLUDED.seniority_years,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := q.Exec(ctx, query, balance.EmployeeID, days, balance.SeniorityYears, balance.UpdatedAt); err != nil {
		return fmt.Errorf("upsert leave balance %s: %w", balance.EmployeeID, err)
	}
	return nil
}

// List implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) List(ctx context.Context) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, days, seniority_years, updated_at
		FROM leave_balances
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var (
			b    leave.LeaveBalance
			days []byte
		)
		if err := rows.Scan(&b.EmployeeID, &days, &b.SeniorityYears, &b.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(days, &b.Days); err != nil {
			return nil, fmt.Errorf("decode leave balance days for %s: %w", b.EmployeeID, err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}
