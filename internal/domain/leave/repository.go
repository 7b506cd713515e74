package leave

import (
	"context"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) error
	UpdateDecision(ctx context.Context, request LeaveRequest) error
	List(ctx context.Context) ([]LeaveRequest, error)
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	Upsert(ctx context.Context, balance LeaveBalance) error
	List(ctx context.Context) ([]LeaveBalance, error)
}

// Journal persists ledger mutations. The ledger calls it while holding its lock and
// only applies a mutation in memory once the journal accepted it.
type Journal interface {
	SaveRequest(ctx context.Context, request LeaveRequest) error
	// SaveDecision stores a decided request and, when balance is non-nil, the
	// balance adjusted by that decision, atomically.
	SaveDecision(ctx context.Context, request LeaveRequest, balance *LeaveBalance) error
	SaveBalance(ctx context.Context, balance LeaveBalance) error
	Load(ctx context.Context) ([]LeaveRequest, []LeaveBalance, error)
}
