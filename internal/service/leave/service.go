package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/congeflow/leave-backend-go/internal/domain/leave"
	"github.com/congeflow/leave-backend-go/internal/domain/user"
	"github.com/congeflow/leave-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	ledger                 *Ledger
	defaultApprovalComment string
}

func NewLeaveService(ledger *Ledger, defaultApprovalComment string) leave.LeaveService {
	return &LeaveServiceImpl{
		ledger:                 ledger,
		defaultApprovalComment: defaultApprovalComment,
	}
}

// ListLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) []leave.LeaveTypeResponse {
	catalog := leave.Catalog()
	types := make([]leave.LeaveTypeResponse, 0, len(catalog))
	for _, info := range catalog {
		types = append(types, leave.LeaveTypeResponse{
			Code:           string(info.Type),
			Label:          info.Label,
			BalanceBearing: info.BalanceBearer,
		})
	}
	return types
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, ok := validator.IsValidDate(req.StartDate)
	if !ok {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date %q", req.StartDate)
	}
	endDate, ok := validator.IsValidDate(req.EndDate)
	if !ok {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date %q", req.EndDate)
	}

	request, err := l.ledger.CreateRequest(ctx, NewRequest{
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		LeaveType:    leave.LeaveType(req.LeaveType),
		StartDate:    startDate,
		EndDate:      endDate,
		Reason:       strings.TrimSpace(req.Reason),
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.InfoContext(ctx, "Leave request created",
		"request_id", request.ID,
		"employee_id", request.EmployeeID,
		"leave_type", request.LeaveType,
		"day_count", request.DayCount,
	)

	return leave.NewLeaveRequestResponse(request), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, decider user.Identity, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	comment := req.Comment
	if validator.IsEmpty(comment) {
		comment = l.defaultApprovalComment
	}

	return l.decide(ctx, decider, req.RequestID, leave.DecisionApproved, comment)
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, decider user.Identity, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return l.decide(ctx, decider, req.RequestID, leave.DecisionRejected, req.Comment)
}

func (l *LeaveServiceImpl) decide(ctx context.Context, decider user.Identity, requestID string, outcome leave.DecisionOutcome, comment string) (leave.LeaveRequestResponse, error) {
	request, err := l.ledger.Decide(ctx, requestID, outcome, comment, decider)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to decide leave request: %w", err)
	}

	slog.InfoContext(ctx, "Leave request decided",
		"request_id", request.ID,
		"status", request.Status,
		"decided_by", decider.UserID,
	)

	return leave.NewLeaveRequestResponse(request), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, caller user.Identity, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := l.ledger.Get(requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Employees only see their own requests
	if !user.HasPermission(caller.Role, user.PermissionLeaveViewAll) && request.EmployeeID != caller.EmployeeID {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
	}

	return leave.NewLeaveRequestResponse(request), nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, employeeID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if validator.IsEmpty(employeeID) {
		return leave.ListLeaveRequestResponse{}, leave.ErrEmployeeRequired
	}

	filter.EmployeeID = employeeID
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	return toListResponse(l.ledger.ListByEmployee(employeeID), filter), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	return toListResponse(l.ledger.ListAll(), filter), nil
}

func toListResponse(requests []leave.LeaveRequest, filter leave.LeaveRequestFilter) leave.ListLeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		if filter.Matches(request) {
			responses = append(responses, leave.NewLeaveRequestResponse(request))
		}
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: int64(len(responses)),
		Requests:   responses,
	}
}

// GetSummary implements leave.LeaveService.
func (l *LeaveServiceImpl) GetSummary(ctx context.Context) (leave.LeaveSummaryResponse, error) {
	summary := l.ledger.Summary()
	return leave.LeaveSummaryResponse{
		Total:    summary.Total,
		Pending:  summary.Pending,
		Approved: summary.Approved,
		Rejected: summary.Rejected,
	}, nil
}

// GetMyBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetMyBalance(ctx context.Context, employeeID string) (leave.LeaveBalanceResponse, error) {
	if validator.IsEmpty(employeeID) {
		return leave.LeaveBalanceResponse{}, leave.ErrEmployeeRequired
	}

	balance, ok := l.ledger.Balance(employeeID)
	if !ok {
		balance = leave.LeaveBalance{EmployeeID: employeeID}
	}

	return leave.NewLeaveBalanceResponse(balance), nil
}

// ListBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) ListBalances(ctx context.Context) ([]leave.LeaveBalanceResponse, error) {
	balances := l.ledger.Balances()
	responses := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.NewLeaveBalanceResponse(b))
	}
	return responses, nil
}

// SetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) SetBalance(ctx context.Context, req leave.SetBalanceRequest) (leave.LeaveBalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	days := make(map[leave.LeaveType]float64, len(req.Days))
	for code, d := range req.Days {
		days[leave.LeaveType(code)] = d
	}

	balance, err := l.ledger.SetBalance(ctx, leave.LeaveBalance{
		EmployeeID:     req.EmployeeID,
		Days:           days,
		SeniorityYears: req.SeniorityYears,
	})
	if err != nil {
		return leave.LeaveBalanceResponse{}, fmt.Errorf("failed to set leave balance: %w", err)
	}

	slog.InfoContext(ctx, "Leave balance updated", "employee_id", balance.EmployeeID)

	return leave.NewLeaveBalanceResponse(balance), nil
}
