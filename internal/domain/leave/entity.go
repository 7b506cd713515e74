package leave

import (
	"time"
)

// LeaveType is the category of a leave request.
type LeaveType string

const (
	LeaveTypePaidLeave   LeaveType = "paid_leave"
	LeaveTypeRTT         LeaveType = "rtt" // compensatory rest days
	LeaveTypeUnpaid      LeaveType = "unpaid"
	LeaveTypeSick        LeaveType = "sick"
	LeaveTypeExceptional LeaveType = "exceptional"
	LeaveTypeMaternity   LeaveType = "maternity"
	LeaveTypePaternity   LeaveType = "paternity"
	LeaveTypeTraining    LeaveType = "training"
)

// LeaveTypeInfo describes an entry of the leave type catalog
type LeaveTypeInfo struct {
	Type          LeaveType
	Label         string
	BalanceBearer bool
}

var catalog = []LeaveTypeInfo{
	{Type: LeaveTypePaidLeave, Label: "Paid leave", BalanceBearer: true},
	{Type: LeaveTypeRTT, Label: "RTT", BalanceBearer: true},
	{Type: LeaveTypeUnpaid, Label: "Unpaid leave"},
	{Type: LeaveTypeSick, Label: "Sick leave"},
	{Type: LeaveTypeExceptional, Label: "Exceptional leave"},
	{Type: LeaveTypeMaternity, Label: "Maternity leave"},
	{Type: LeaveTypePaternity, Label: "Paternity leave"},
	{Type: LeaveTypeTraining, Label: "Training"},
}

// Catalog returns the leave types in display order.
func Catalog() []LeaveTypeInfo {
	out := make([]LeaveTypeInfo, len(catalog))
	copy(out, catalog)
	return out
}

// IsValid reports whether t belongs to the catalog.
func (t LeaveType) IsValid() bool {
	for _, info := range catalog {
		if info.Type == t {
			return true
		}
	}
	return false
}

// IsBalanceBearing reports whether requests of this type are checked against a balance.
func (t LeaveType) IsBalanceBearing() bool {
	for _, info := range catalog {
		if info.Type == t {
			return info.BalanceBearer
		}
	}
	return false
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// IsValid reports whether s is a known status.
func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

// DecisionOutcome is the target status of a decision.
type DecisionOutcome string

const (
	DecisionApproved DecisionOutcome = "approved"
	DecisionRejected DecisionOutcome = "rejected"
)

// Status maps the outcome to the resulting request status.
func (o DecisionOutcome) Status() (LeaveRequestStatus, bool) {
	switch o {
	case DecisionApproved:
		return LeaveRequestStatusApproved, true
	case DecisionRejected:
		return LeaveRequestStatusRejected, true
	}
	return "", false
}

// LeaveRequest entity
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	LeaveType    LeaveType

	StartDate time.Time
	EndDate   time.Time
	DayCount  int

	Reason string

	Status          LeaveRequestStatus // 'pending', 'approved', 'rejected'
	DecisionComment *string
	DecidedBy       *string
	DecidedAt       *time.Time

	CreatedAt time.Time
}

// IsPending reports whether the request still awaits a decision.
func (r LeaveRequest) IsPending() bool {
	return r.Status == LeaveRequestStatusPending
}

// Clone returns a copy that shares no pointers with r.
func (r LeaveRequest) Clone() LeaveRequest {
	c := r
	if r.DecisionComment != nil {
		v := *r.DecisionComment
		c.DecisionComment = &v
	}
	if r.DecidedBy != nil {
		v := *r.DecidedBy
		c.DecidedBy = &v
	}
	if r.DecidedAt != nil {
		v := *r.DecidedAt
		c.DecidedAt = &v
	}
	return c
}

// LeaveBalance holds the remaining days per leave category for one employee.
type LeaveBalance struct {
	EmployeeID     string
	Days           map[LeaveType]float64
	SeniorityYears int
	UpdatedAt      time.Time
}

// Available returns the remaining days for t, zero when the category is absent.
func (b LeaveBalance) Available(t LeaveType) float64 {
	if b.Days == nil {
		return 0
	}
	return b.Days[t]
}

// Clone returns a copy with its own Days map.
func (b LeaveBalance) Clone() LeaveBalance {
	c := b
	c.Days = make(map[LeaveType]float64, len(b.Days))
	for k, v := range b.Days {
		c.Days[k] = v
	}
	return c
}

// LeaveSummary counts requests per status.
type LeaveSummary struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}
