package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// UserService covers admin-side account management. Route-level permission
// checks gate access; the service assumes an authorized caller.
type UserService struct {
	users repository.UserRepository
	cache ProfileCache
}

// NewUserService builds the service. Cache may be nil.
func NewUserService(users repository.UserRepository, cache ProfileCache) *UserService {
	return &UserService{users: users, cache: cache}
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// GetUser loads a single account by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Self-deletion has no API path; only
// admin-initiated deletion of other accounts reaches here.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
	return nil
}
