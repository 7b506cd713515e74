package leave

import (
	"context"
	"testing"

	"github.com/congeflow/leave-backend-go/internal/domain/leave"
	"github.com/congeflow/leave-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultComment = "Approved, enjoy your time off"

func newTestService(t *testing.T, opts ...Option) (leave.LeaveService, *Ledger) {
	t.Helper()
	ledger := newTestLedger(opts...)
	setBalance(t, ledger, "emp-1", map[leave.LeaveType]float64{
		leave.LeaveTypePaidLeave: 25,
		leave.LeaveTypeRTT:       10,
	})
	return NewLeaveService(ledger, defaultComment), ledger
}

func createRequest(t *testing.T, svc leave.LeaveService, employeeID, leaveType, start, end string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:   employeeID,
		EmployeeName: "Lea Dubois",
		LeaveType:    leaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       "  Long weekend  ",
	})
	require.NoError(t, err)
	return resp
}

func TestLeaveService_ListLeaveTypes(t *testing.T) {
	svc, _ := newTestService(t)

	types := svc.ListLeaveTypes(context.Background())

	require.Len(t, types, len(leave.Catalog()))
	assert.Equal(t, "paid_leave", types[0].Code)
	assert.True(t, types[0].BalanceBearing)

	bearing := 0
	for _, lt := range types {
		assert.NotEmpty(t, lt.Label)
		if lt.BalanceBearing {
			bearing++
		}
	}
	assert.Equal(t, 2, bearing)
}

func TestLeaveService_CreateLeaveRequest(t *testing.T) {
	svc, _ := newTestService(t)

	resp := createRequest(t, svc, "emp-1", "paid_leave", "2024-03-04", "2024-03-08")

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2024-03-04", resp.StartDate)
	assert.Equal(t, "2024-03-08", resp.EndDate)
	assert.Equal(t, 5, resp.DayCount)
	assert.Equal(t, "Long weekend", resp.Reason)
	assert.Nil(t, resp.DecidedBy)
}

func TestLeaveService_CreateLeaveRequest_Validation(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		req   leave.CreateLeaveRequestRequest
		field string
	}{
		{
			name:  "missing leave type",
			req:   leave.CreateLeaveRequestRequest{EmployeeID: "emp-1", StartDate: "2024-03-04", EndDate: "2024-03-04"},
			field: "leave_type",
		},
		{
			name:  "unknown leave type",
			req:   leave.CreateLeaveRequestRequest{EmployeeID: "emp-1", LeaveType: "sabbatical", StartDate: "2024-03-04", EndDate: "2024-03-04"},
			field: "leave_type",
		},
		{
			name:  "malformed start date",
			req:   leave.CreateLeaveRequestRequest{EmployeeID: "emp-1", LeaveType: "sick", StartDate: "04/03/2024", EndDate: "2024-03-04"},
			field: "start_date",
		},
		{
			name:  "missing employee",
			req:   leave.CreateLeaveRequestRequest{LeaveType: "sick", StartDate: "2024-03-04", EndDate: "2024-03-04"},
			field: "employee_id",
		},
		{
			name:  "span longer than a year",
			req:   leave.CreateLeaveRequestRequest{EmployeeID: "emp-1", LeaveType: "sick", StartDate: "0001-01-01", EndDate: "9999-12-31"},
			field: "end_date",
		},
		{
			name:  "span just over a leap year",
			req:   leave.CreateLeaveRequestRequest{EmployeeID: "emp-1", LeaveType: "sick", StartDate: "2024-01-01", EndDate: "2025-01-01"},
			field: "end_date",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.CreateLeaveRequest(ctx, c.req)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), c.field)
		})
	}

	assert.Empty(t, ledger.ListAll())
}

func TestLeaveService_CreateLeaveRequest_DomainErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: "emp-1", LeaveType: "sick", StartDate: "2024-03-08", EndDate: "2024-03-04",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidRange)

	_, err = svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: "emp-1", LeaveType: "sick", StartDate: "2024-03-09", EndDate: "2024-03-10",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDuration)

	_, err = svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: "emp-1", LeaveType: "rtt", StartDate: "2024-03-04", EndDate: "2024-03-22",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestLeaveService_CreateLeaveRequest_FullLeapYear(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID: "emp-1", LeaveType: "sick", StartDate: "2024-01-01", EndDate: "2024-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 262, resp.DayCount)
}

func TestLeaveService_DecideRejectsMalformedID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"missing", "0190b5a4-3c1e-4b6a-9d2f-5e8c1a2b3c4d"} {
		_, err := svc.ApproveLeaveRequest(ctx, testManager, leave.DecideLeaveRequestRequest{RequestID: id})

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, id)
		assert.Contains(t, verrs.ToMap(), "request_id")
	}

	_, err := svc.ApproveLeaveRequest(ctx, testManager, leave.DecideLeaveRequestRequest{RequestID: "0190b5a4-3c1e-7b6a-9d2f-5e8c1a2b3c4d"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_ApproveUsesDefaultComment(t *testing.T) {
	svc, _ := newTestService(t)
	created := createRequest(t, svc, "emp-1", "rtt", "2024-03-04", "2024-03-04")

	resp, err := svc.ApproveLeaveRequest(context.Background(), testManager, leave.DecideLeaveRequestRequest{RequestID: created.ID})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.DecisionComment)
	assert.Equal(t, defaultComment, *resp.DecisionComment)
	require.NotNil(t, resp.DecidedBy)
	assert.Equal(t, testManager.UserID, *resp.DecidedBy)
}

func TestLeaveService_RejectRequiresComment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	created := createRequest(t, svc, "emp-1", "paid_leave", "2024-03-04", "2024-03-05")

	_, err := svc.RejectLeaveRequest(ctx, testManager, leave.DecideLeaveRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrCommentRequired)

	resp, err := svc.RejectLeaveRequest(ctx, testAdmin, leave.DecideLeaveRequestRequest{RequestID: created.ID, Comment: "Inventory week"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, "Inventory week", *resp.DecisionComment)

	_, err = svc.ApproveLeaveRequest(ctx, testAdmin, leave.DecideLeaveRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyDecided)
}

func TestLeaveService_EmployeeCannotDecide(t *testing.T) {
	svc, _ := newTestService(t)
	created := createRequest(t, svc, "emp-1", "paid_leave", "2024-03-04", "2024-03-05")

	_, err := svc.ApproveLeaveRequest(context.Background(), testEmployee, leave.DecideLeaveRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrUnauthorizedDecider)
}

func TestLeaveService_GetLeaveRequest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	created := createRequest(t, svc, "emp-1", "paid_leave", "2024-03-04", "2024-03-05")

	got, err := svc.GetLeaveRequest(ctx, testEmployee, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetLeaveRequest(ctx, testManager, created.ID)
	assert.NoError(t, err)

	stranger := testEmployee
	stranger.EmployeeID = "emp-2"
	_, err = svc.GetLeaveRequest(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedAccess)

	_, err = svc.GetLeaveRequest(ctx, testManager, "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_ListRequests(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()
	setBalance(t, ledger, "emp-2", map[leave.LeaveType]float64{leave.LeaveTypePaidLeave: 5})

	first := createRequest(t, svc, "emp-1", "paid_leave", "2024-03-04", "2024-03-05")
	createRequest(t, svc, "emp-1", "sick", "2024-03-06", "2024-03-06")
	createRequest(t, svc, "emp-2", "paid_leave", "2024-03-04", "2024-03-04")

	_, err := svc.ApproveLeaveRequest(ctx, testManager, leave.DecideLeaveRequestRequest{RequestID: first.ID})
	require.NoError(t, err)

	mine, err := svc.ListMyLeaveRequests(ctx, "emp-1", leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalCount)

	// employee filter cannot widen the own listing
	mine, err = svc.ListMyLeaveRequests(ctx, "emp-1", leave.LeaveRequestFilter{EmployeeID: "emp-2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalCount)

	pending, err := svc.ListLeaveRequests(ctx, leave.LeaveRequestFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending.TotalCount)

	paid, err := svc.ListLeaveRequests(ctx, leave.LeaveRequestFilter{LeaveType: "paid_leave", EmployeeID: "emp-2"})
	require.NoError(t, err)
	require.Len(t, paid.Requests, 1)
	assert.Equal(t, "emp-2", paid.Requests[0].EmployeeID)

	empty, err := svc.ListMyLeaveRequests(ctx, "emp-404", leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.NotNil(t, empty.Requests)
	assert.Zero(t, empty.TotalCount)

	_, err = svc.ListLeaveRequests(ctx, leave.LeaveRequestFilter{Status: "cancelled"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "status must be one of: pending, approved, rejected", verrs.ToMap()["status"])
}

func TestLeaveService_SummaryAndBalances(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	created := createRequest(t, svc, "emp-1", "paid_leave", "2024-03-04", "2024-03-05")
	createRequest(t, svc, "emp-1", "sick", "2024-03-06", "2024-03-06")
	_, err := svc.RejectLeaveRequest(ctx, testManager, leave.DecideLeaveRequestRequest{RequestID: created.ID, Comment: "Overlap"})
	require.NoError(t, err)

	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveSummaryResponse{Total: 2, Pending: 1, Rejected: 1}, summary)

	mine, err := svc.GetMyBalance(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, float64(25), mine.Days["paid_leave"])
	assert.NotNil(t, mine.UpdatedAt)

	none, err := svc.GetMyBalance(ctx, "emp-404")
	require.NoError(t, err)
	assert.Equal(t, "emp-404", none.EmployeeID)
	assert.Empty(t, none.Days)
	assert.Nil(t, none.UpdatedAt)

	updated, err := svc.SetBalance(ctx, leave.SetBalanceRequest{
		EmployeeID:     "emp-2",
		Days:           map[string]float64{"paid_leave": 12.5},
		SeniorityYears: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.Days["paid_leave"])

	all, err := svc.ListBalances(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "emp-1", all[0].EmployeeID)
	assert.Equal(t, "emp-2", all[1].EmployeeID)
	assert.Equal(t, 3, all[1].SeniorityYears)

	_, err = svc.SetBalance(ctx, leave.SetBalanceRequest{EmployeeID: "emp-2", Days: map[string]float64{"paid_leave": -1}})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "days.paid_leave")
}
