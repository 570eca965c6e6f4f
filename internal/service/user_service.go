package service

import (
	"context"

	"newsdesk/internal/cache"
	"newsdesk/internal/models"
	"newsdesk/internal/repository"
	"newsdesk/internal/validation"
)

// UserService manages the admin accounts that operate the console.
type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	UserID uint
	Name   string
	Email  string
	Avatar string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.CacheAside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxNameLen = 60

	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 60 characters)")
		}
		user.Name = in.Name
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	cache.InvalidateUser(ctx, user.ID)
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, id)
	return nil
}
