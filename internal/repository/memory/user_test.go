package memory

import (
	"context"
	"testing"

	"github.com/congeflow/leave-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	created, err := repo.Create(ctx, user.User{
		ID:    "usr-1",
		Email: "Lea.Dubois@congeflow.dev",
		Name:  "Lea Dubois",
		Role:  user.RoleEmployee,
	})
	require.NoError(t, err)
	assert.Equal(t, "usr-1", created.ID)

	byEmail, err := repo.GetByEmail(ctx, "  lea.dubois@CONGEFLOW.dev")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", byEmail.ID)

	byID, err := repo.GetByID(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "Lea Dubois", byID.Name)

	_, err = repo.Create(ctx, user.User{ID: "usr-2", Email: "lea.dubois@congeflow.dev", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = repo.Create(ctx, user.User{ID: "usr-3", Email: "x@congeflow.dev", Role: "owner"})
	assert.ErrorIs(t, err, user.ErrInvalidRole)

	_, err = repo.GetByEmail(ctx, "nobody@congeflow.dev")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = repo.GetByID(ctx, "usr-404")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
