package fixtures

import (
	"context"
	"errors"
	"fmt"

	"github.com/congeflow/leave-backend-go/internal/domain/leave"
	"github.com/congeflow/leave-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// DemoAccount is a login of the mock identity provider.
type DemoAccount struct {
	UserID     string
	EmployeeID string
	Name       string
	Email      string
	Password   string
	Role       user.Role
}

// DemoAccounts returns one account per role.
func DemoAccounts() []DemoAccount {
	return []DemoAccount{
		{
			UserID:     "usr-employee-001",
			EmployeeID: "EMP-001",
			Name:       "Lea Dubois",
			Email:      "employee@congeflow.dev",
			Password:   "employee123",
			Role:       user.RoleEmployee,
		},
		{
			UserID:     "usr-manager-001",
			EmployeeID: "EMP-002",
			Name:       "Claire Martin",
			Email:      "manager@congeflow.dev",
			Password:   "manager123",
			Role:       user.RoleManager,
		},
		{
			UserID:     "usr-admin-001",
			EmployeeID: "EMP-003",
			Name:       "Hugo Bernard",
			Email:      "admin@congeflow.dev",
			Password:   "admin123",
			Role:       user.RoleAdmin,
		},
	}
}

// DefaultBalanceDays is the yearly allowance granted to every demo employee.
func DefaultBalanceDays() map[leave.LeaveType]float64 {
	return map[leave.LeaveType]float64{
		leave.LeaveTypePaidLeave: 25,
		leave.LeaveTypeRTT:       10,
	}
}

// BalanceStore is the part of the ledger the seeder writes to.
type BalanceStore interface {
	Balance(employeeID string) (leave.LeaveBalance, bool)
	SetBalance(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error)
}

// SeedUsers registers the demo accounts. Accounts already present are left alone.
func SeedUsers(ctx context.Context, users user.UserRepository, cost int) error {
	for _, account := range DemoAccounts() {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), cost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", account.Email, err)
		}

		_, err = users.Create(ctx, user.User{
			ID:           account.UserID,
			EmployeeID:   account.EmployeeID,
			Name:         account.Name,
			Email:        account.Email,
			PasswordHash: string(hash),
			Role:         account.Role,
		})
		if err != nil && !errors.Is(err, user.ErrUserEmailExists) {
			return fmt.Errorf("failed to create demo user %s: %w", account.Email, err)
		}
	}
	return nil
}

// SeedBalances gives each demo employee the default allowance unless a balance was
// already restored for them.
func SeedBalances(ctx context.Context, store BalanceStore) error {
	for _, account := range DemoAccounts() {
		if _, ok := store.Balance(account.EmployeeID); ok {
			continue
		}
		_, err := store.SetBalance(ctx, leave.LeaveBalance{
			EmployeeID: account.EmployeeID,
			Days:       DefaultBalanceDays(),
		})
		if err != nil {
			return fmt.Errorf("failed to seed balance for %s: %w", account.EmployeeID, err)
		}
	}
	return nil
}
