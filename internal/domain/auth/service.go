package auth

import (
	"context"

	"github.com/congeflow/leave-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID string) (user.Identity, error)
}
