package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("returns accounts", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users, nil)

		users.On("List", ctx).Return([]domain.User{*storedUser()}, nil)

		result, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "ana@example.com", result[0].Email)
	})

	t.Run("empty store yields empty slice, not nil", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users, nil)

		users.On("List", ctx).Return(nil, nil)

		result, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the account", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users, nil)

		users.On("Delete", ctx, "user-1").Return(nil)

		require.NoError(t, svc.DeleteUser(ctx, "user-1"))
		users.AssertExpectations(t)
	})

	t.Run("missing account reports not found", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users, nil)

		users.On("Delete", ctx, "ghost").Return(pgx.ErrNoRows)

		err := svc.DeleteUser(ctx, "ghost")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	})
}
