package leave

import (
	"fmt"
	"time"

	"github.com/congeflow/leave-backend-go/internal/pkg/validator"
)

// MaxLeaveSpanDays bounds the calendar days a single request may cover.
const MaxLeaveSpanDays = 366

type CreateLeaveRequestRequest struct {
	EmployeeID   string `json:"-"`
	EmployeeName string `json:"-"`
	LeaveType    string `json:"leave_type" validate:"required"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason       string `json:"reason,omitempty" validate:"max=1000"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !LeaveType(r.LeaveType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is not part of the leave type catalog",
		})
	}

	startDate, _ := validator.IsValidDate(r.StartDate)
	endDate, _ := validator.IsValidDate(r.EndDate)
	if endDate.Sub(startDate) >= MaxLeaveSpanDays*24*time.Hour {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: fmt.Sprintf("a leave request cannot span more than %d calendar days", MaxLeaveSpanDays),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideLeaveRequestRequest struct {
	RequestID string `json:"-"`
	Comment   string `json:"comment,omitempty" validate:"max=1000"`
}

func (r *DecideLeaveRequestRequest) Validate() error {
	if validator.IsEmpty(r.RequestID) {
		return validator.ValidationErrors{{
			Field:   "request_id",
			Message: "request_id is required",
		}}
	}
	if !validator.IsValidUUID(r.RequestID) {
		return validator.ValidationErrors{{
			Field:   "request_id",
			Message: "request_id must be a valid UUID",
		}}
	}
	return validator.Struct(r)
}

type SetBalanceRequest struct {
	EmployeeID     string             `json:"-"`
	Days           map[string]float64 `json:"days" validate:"required"`
	SeniorityYears int                `json:"seniority_years" validate:"gte=0"`
}

func (r *SetBalanceRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	for code, days := range r.Days {
		if !LeaveType(code).IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "days." + code,
				Message: "unknown leave type",
			})
			continue
		}
		if days < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "days." + code,
				Message: "days must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveRequestFilter narrows request listings. Empty fields match everything.
type LeaveRequestFilter struct {
	Status     string `json:"status,omitempty"`
	LeaveType  string `json:"leave_type,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" {
		validStatuses := []string{
			string(LeaveRequestStatusPending),
			string(LeaveRequestStatusApproved),
			string(LeaveRequestStatusRejected),
		}
		if !validator.IsInSlice(f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected",
			})
		}
	}

	if f.LeaveType != "" && !LeaveType(f.LeaveType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is not part of the leave type catalog",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Matches reports whether request passes the filter.
func (f LeaveRequestFilter) Matches(request LeaveRequest) bool {
	if f.Status != "" && string(request.Status) != f.Status {
		return false
	}
	if f.LeaveType != "" && string(request.LeaveType) != f.LeaveType {
		return false
	}
	if f.EmployeeID != "" && request.EmployeeID != f.EmployeeID {
		return false
	}
	return true
}

type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    string     `json:"employee_name"`
	LeaveType       string     `json:"leave_type"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	DayCount        int        `json:"day_count"`
	Reason          string     `json:"reason,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	DecisionComment *string    `json:"decision_comment,omitempty"`
	DecidedBy       *string    `json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		LeaveType:       string(r.LeaveType),
		StartDate:       r.StartDate.Format(validator.DateLayout),
		EndDate:         r.EndDate.Format(validator.DateLayout),
		DayCount:        r.DayCount,
		Reason:          r.Reason,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		DecisionComment: r.DecisionComment,
		DecidedBy:       r.DecidedBy,
		DecidedAt:       r.DecidedAt,
	}
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

type LeaveBalanceResponse struct {
	EmployeeID     string             `json:"employee_id"`
	Days           map[string]float64 `json:"days"`
	SeniorityYears int                `json:"seniority_years"`
	UpdatedAt      *time.Time         `json:"updated_at,omitempty"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	days := make(map[string]float64, len(b.Days))
	for t, d := range b.Days {
		days[string(t)] = d
	}
	resp := LeaveBalanceResponse{
		EmployeeID:     b.EmployeeID,
		Days:           days,
		SeniorityYears: b.SeniorityYears,
	}
	if !b.UpdatedAt.IsZero() {
		updatedAt := b.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

type LeaveSummaryResponse struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type LeaveTypeResponse struct {
	Code           string `json:"code"`
	Label          string `json:"label"`
	BalanceBearing bool   `json:"balance_bearing"`
}
