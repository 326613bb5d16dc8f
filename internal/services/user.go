package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fieldbooking/internal/domain"
)

type userService struct {
	userRepo domain.UserRepository
	clock    domain.Clock
}

// NewUserService creates a UserService for profile reads and updates.
func NewUserService(userRepo domain.UserRepository, clock domain.Clock) domain.UserService {
	return &userService{userRepo: userRepo, clock: clock}
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, name, lastName *string) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		user.Name = strings.TrimSpace(*name)
	}
	if lastName != nil {
		user.LastName = strings.TrimSpace(*lastName)
	}
	user.UpdatedAt = s.clock.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
