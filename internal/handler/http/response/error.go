package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/congeflow/leave-backend-go/internal/domain/auth"
	"github.com/congeflow/leave-backend-go/internal/domain/leave"
	"github.com/congeflow/leave-backend-go/internal/domain/user"
	"github.com/congeflow/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyDecided):
		Conflict(w, "Leave request already decided")
	case errors.Is(err, leave.ErrCommentRequired):
		UnprocessableEntity(w, "A comment is required to reject a leave request", map[string]string{
			"comment": "comment is required",
		})
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrInvalidRange):
		BadRequest(w, "End date must not precede start date", nil)
	case errors.Is(err, leave.ErrInvalidDuration):
		BadRequest(w, "Leave request must cover at least one business day", nil)
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, "Invalid leave type", nil)
	case errors.Is(err, leave.ErrInvalidOutcome):
		BadRequest(w, "Invalid decision outcome", nil)
	case errors.Is(err, leave.ErrNegativeBalance):
		BadRequest(w, "Leave balance must not be negative", nil)
	case errors.Is(err, leave.ErrEmployeeRequired):
		BadRequest(w, "Employee ID is required", nil)
	case errors.Is(err, leave.ErrUnauthorizedDecider):
		Forbidden(w, "Only managers and admins can decide leave requests")
	case errors.Is(err, leave.ErrUnauthorizedAccess):
		Forbidden(w, "You are not allowed to access this leave request")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
