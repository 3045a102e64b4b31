// internal/services/user_service.go
// Crew/TO account profile management.

package services

import (
	"context"
	"fmt"
	"log"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// UserService handles crew/TO account profile operations.
type UserService struct {
	userRepo *repositories.UserRepository
	logger   *log.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo *repositories.UserRepository, logger *log.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// GetByID retrieves an account by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile updates profile fields on a crew/TO account.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if fullName, ok := updates["full_name"].(string); ok && fullName != "" {
		user.FullName = fullName
	}
	if phone, ok := updates["phone"].(string); ok {
		user.Phone = &phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// PromoteToTO grants the TO role to a crew account.
func (s *UserService) PromoteToTO(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleTO {
		return fmt.Errorf("account is already a TO")
	}
	user.Role = models.RoleTO
	return s.userRepo.Update(ctx, user)
}
