package leave

import "errors"

var (
	ErrInvalidRange               = errors.New("end date precedes start date")
	ErrInvalidDuration            = errors.New("leave request covers no business day")
	ErrInsufficientBalance        = errors.New("insufficient leave balance")
	ErrLeaveRequestNotFound       = errors.New("leave request not found")
	ErrLeaveRequestAlreadyDecided = errors.New("leave request already decided")
	ErrCommentRequired            = errors.New("a comment is required to reject a leave request")
	ErrUnauthorizedDecider        = errors.New("only managers and admins can decide leave requests")
	ErrUnauthorizedAccess         = errors.New("unauthorized access to leave request")
	ErrInvalidLeaveType           = errors.New("invalid leave type")
	ErrInvalidOutcome             = errors.New("invalid decision outcome")
	ErrNegativeBalance            = errors.New("leave balance must not be negative")
	ErrEmployeeRequired           = errors.New("employee id is required")
)
