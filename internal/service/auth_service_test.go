package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

func newAuthService(users *MockUserRepository) *AuthService {
	cfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 24, BcryptCost: bcrypt.MinCost}
	return NewAuthService(cfg, users, nil, zap.NewNop())
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with default role and returns token", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users)

		users.On("GetByEmail", ctx, "ana@example.com").Return(nil, pgx.ErrNoRows)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "user-1"
		}).Return(nil)

		user, token, exp, err := svc.Register(ctx, "Ana", "ana@example.com", "secret123", "+15550001111")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NotEmpty(t, token)
		assert.False(t, exp.IsZero())
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
		users.AssertExpectations(t)
	})

	t.Run("duplicate email fails with conflict and does not write", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users)

		existing := &domain.User{ID: "user-1", Email: "ana@example.com"}
		users.On("GetByEmail", ctx, "ana@example.com").Return(existing, nil)

		_, _, _, err := svc.Register(ctx, "Ana Again", "ana@example.com", "other456", "")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns token and user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users)

		stored := &domain.User{ID: "user-1", Email: "ana@example.com", PasswordHash: hashFor(t, "secret123"), Role: domain.RoleUser}
		users.On("GetByEmail", ctx, "ana@example.com").Return(stored, nil)

		user, token, _, err := svc.Login(ctx, "ana@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users)

		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, pgx.ErrNoRows)
		stored := &domain.User{ID: "user-1", Email: "ana@example.com", PasswordHash: hashFor(t, "secret123")}
		users.On("GetByEmail", ctx, "ana@example.com").Return(stored, nil)

		_, _, _, unknownErr := svc.Login(ctx, "ghost@example.com", "whatever")
		_, _, _, wrongErr := svc.Login(ctx, "ana@example.com", "not-the-password")

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)
		unknownDomain := apperrors.ToDomainError(unknownErr)
		wrongDomain := apperrors.ToDomainError(wrongErr)
		assert.Equal(t, unknownDomain.Code, wrongDomain.Code)
		assert.Equal(t, unknownDomain.Message, wrongDomain.Message)
		assert.Equal(t, unknownDomain.HTTPStatus, wrongDomain.HTTPStatus)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong current password is rejected without update", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users)

		stored := &domain.User{ID: "user-1", PasswordHash: hashFor(t, "secret123")}
		users.On("GetByID", ctx, "user-1").Return(stored, nil)

		err := svc.ChangePassword(ctx, "user-1", "wrong-current", "newpass789")
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		assert.Equal(t, 400, domainErr.HTTPStatus)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("correct current password rehashes and persists", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users)

		stored := &domain.User{ID: "user-1", PasswordHash: hashFor(t, "secret123")}
		users.On("GetByID", ctx, "user-1").Return(stored, nil)
		users.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		err := svc.ChangePassword(ctx, "user-1", "secret123", "newpass789")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass789")))
		users.AssertExpectations(t)
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users)

	token, _, err := svc.TokenManager().GenerateToken("user-1", domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}
