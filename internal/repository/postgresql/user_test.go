package postgresql_test

import (
	"context"
	"testing"

	"github.com/congeflow/leave-backend-go/internal/domain/user"
	"github.com/congeflow/leave-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDatabase(t)
	ctx := context.Background()
	_, err := db.Exec(ctx, "TRUNCATE TABLE users")
	require.NoError(t, err)

	repo := postgresql.NewUserRepository(db)

	created, err := repo.Create(ctx, user.User{
		ID:           "usr-manager-001",
		EmployeeID:   "EMP-002",
		Name:         "Claire Martin",
		Email:        "Manager@Congeflow.dev",
		PasswordHash: "$2a$04$hash",
		Role:         user.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "manager@congeflow.dev", created.Email)

	found, err := repo.GetByEmail(ctx, "MANAGER@congeflow.dev")
	require.NoError(t, err)
	assert.Equal(t, "usr-manager-001", found.ID)
	assert.Equal(t, user.RoleManager, found.Role)

	found, err = repo.GetByID(ctx, "usr-manager-001")
	require.NoError(t, err)
	assert.Equal(t, "EMP-002", found.EmployeeID)

	_, err = repo.Create(ctx, user.User{ID: "usr-other", Email: "manager@congeflow.dev", PasswordHash: "x", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = repo.GetByID(ctx, "usr-404")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
