package user

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - full access, manages balances
	RoleManager  Role = "manager"  // Can approve or reject leave
	RoleEmployee Role = "employee" // Regular employee
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Identity is the authenticated caller as supplied by the identity provider.
type Identity struct {
	UserID     string
	EmployeeID string
	Name       string
	Email      string
	Role       Role
}

// CanDecide reports whether the identity may approve or reject leave requests.
func (i Identity) CanDecide() bool {
	return HasPermission(i.Role, PermissionLeaveApprove)
}

// User is a demo account of the mock identity provider.
type User struct {
	ID           string
	EmployeeID   string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}

// Identity returns the identity carried by tokens issued for u.
func (u User) Identity() Identity {
	return Identity{
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
	}
}
