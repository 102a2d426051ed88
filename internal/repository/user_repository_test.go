package repository

import (
	"context"
	"testing"

	"go-gin-ticket-store/internal/model"
	apperrors "go-gin-ticket-store/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	repo := NewUserRepository(testDB)

	t.Run("Success", func(t *testing.T) {
		user, err := repo.Create(ctx, &model.User{
			Email:        "alice@test.com",
			PasswordHash: "hash",
			Name:         "Alice",
			Role:         model.RoleUser,
			Attributes:   map[string]any{"vip": true},
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, model.RoleUser, user.Role)
	})

	t.Run("Failed - duplicate email maps to ErrEmailTaken", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.User{
			Email:        "alice@test.com",
			PasswordHash: "hash",
			Name:         "Another Alice",
			Role:         model.RoleUser,
			Attributes:   map[string]any{},
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	repo := NewUserRepository(testDB)
	insertTestUser(t, "alice@test.com")

	user, err := repo.FindByEmail(ctx, "alice@test.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@test.com", user.Email)

	_, err = repo.FindByEmail(ctx, "ghost@test.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
