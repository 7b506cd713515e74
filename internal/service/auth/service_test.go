package auth

import (
	"context"
	"testing"

	"github.com/congeflow/leave-backend-go/internal/domain/auth"
	"github.com/congeflow/leave-backend-go/internal/domain/user"
	"github.com/congeflow/leave-backend-go/internal/fixtures"
	"github.com/congeflow/leave-backend-go/internal/pkg/jwt"
	"github.com/congeflow/leave-backend-go/internal/pkg/validator"
	"github.com/congeflow/leave-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	repo := memory.NewUserRepository()
	require.NoError(t, fixtures.SeedUsers(context.Background(), repo, bcrypt.MinCost))

	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	return NewAuthService(repo, jwtService), jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService := newTestAuthService(t)
	ctx := context.Background()

	for _, account := range fixtures.DemoAccounts() {
		t.Run(string(account.Role), func(t *testing.T) {
			resp, err := svc.Login(ctx, auth.LoginRequest{Email: account.Email, Password: account.Password})
			require.NoError(t, err)

			assert.NotEmpty(t, resp.AccessToken)
			assert.NotZero(t, resp.AccessTokenExpiresIn)
			assert.Equal(t, account.UserID, resp.User.UserID)
			assert.Equal(t, account.EmployeeID, resp.User.EmployeeID)
			assert.Equal(t, string(account.Role), resp.User.Role)

			token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
			require.NoError(t, err)
			claims, err := token.AsMap(ctx)
			require.NoError(t, err)
			identity, err := jwt.IdentityFromClaims(claims)
			require.NoError(t, err)
			assert.Equal(t, account.Role, identity.Role)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "employee@congeflow.dev", Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "ghost@congeflow.dev", Password: "employee123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestLogout(t *testing.T) {
	svc, jwtService := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "manager@congeflow.dev", Password: "manager123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))

	assert.ErrorIs(t, svc.Logout(ctx, resp.AccessToken), auth.ErrTokenRevoked)
	assert.ErrorIs(t, svc.Logout(ctx, ""), auth.ErrInvalidToken)
}

func TestMe(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	identity, err := svc.Me(ctx, "usr-admin-001")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, identity.Role)
	assert.Equal(t, "EMP-003", identity.EmployeeID)

	_, err = svc.Me(ctx, "usr-404")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
