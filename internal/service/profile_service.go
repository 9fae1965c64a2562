package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// ProfileUpdate is a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// ProfileService handles self-service reads and updates of contact data.
type ProfileService struct {
	users repository.UserRepository
	cache ProfileCache
}

// NewProfileService builds the service. Cache may be nil.
func NewProfileService(users repository.UserRepository, cache ProfileCache) *ProfileService {
	return &ProfileService{users: users, cache: cache}
}

// GetProfile returns the user's own record, preferring the cache.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, userID); ok {
			return user, nil
		}
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, user)
	}
	return user, nil
}

// UpdateProfile applies a partial update. Changing email to one owned by
// another user fails with a conflict.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		if err := s.checkEmailAvailable(ctx, *update.Email, userID); err != nil {
			return nil, err
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
	return user, nil
}

// UpdatePhone is the single-field variant for phone.
func (s *ProfileService) UpdatePhone(ctx context.Context, userID, phone string) (*domain.User, error) {
	return s.UpdateProfile(ctx, userID, ProfileUpdate{Phone: &phone})
}

// UpdateEmail is the single-field variant for email, keeping the
// uniqueness check.
func (s *ProfileService) UpdateEmail(ctx context.Context, userID, email string) (*domain.User, error) {
	return s.UpdateProfile(ctx, userID, ProfileUpdate{Email: &email})
}

func (s *ProfileService) checkEmailAvailable(ctx context.Context, email, selfID string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewConflict("email already in use")
	}
	return nil
}
