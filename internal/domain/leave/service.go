package leave

import (
	"context"

	"github.com/congeflow/leave-backend-go/internal/domain/user"
)

type LeaveService interface {
	// Type
	ListLeaveTypes(ctx context.Context) []LeaveTypeResponse
	// Request
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, decider user.Identity, req DecideLeaveRequestRequest) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, decider user.Identity, req DecideLeaveRequestRequest) (LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, caller user.Identity, requestID string) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, employeeID string, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	GetSummary(ctx context.Context) (LeaveSummaryResponse, error)
	// Balance
	GetMyBalance(ctx context.Context, employeeID string) (LeaveBalanceResponse, error)
	ListBalances(ctx context.Context) ([]LeaveBalanceResponse, error)
	SetBalance(ctx context.Context, req SetBalanceRequest) (LeaveBalanceResponse, error)
}
