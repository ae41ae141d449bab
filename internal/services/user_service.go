package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/audiovault/backend/internal/models"
	"github.com/audiovault/backend/internal/repositories"
	"github.com/google/uuid"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is filled in on success.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByID retrieves a user by ID.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByName checks if a user with such name exists.
	//
	// "name" parameter is used to check if a user with such name exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByName(ctx context.Context, name string) (bool, error)
	// Method DeleteWithRecords deletes a user and all of the user's audio
	// records as a single atomic unit of work.
	//
	// "userID" parameter identifies the user to delete.
	//
	// If some error occurs during deletion, the error will be returned.
	DeleteWithRecords(ctx context.Context, userID int) error
}

// UserService handles business logic for user registration and deletion
type UserService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser registers a new user with the given name and a freshly
// generated token. Returns ErrNameTaken if the name is already in use
func (s *UserService) CreateUser(ctx context.Context, name string) (*models.User, error) {
	exists, err := s.userRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name existence: %w", err)
	}
	if exists {
		return nil, ErrNameTaken
	}

	user := &models.User{
		Name:  name,
		Token: uuid.New().String(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// DeleteUser deletes the user and every audio record the user owns.
// Returns ErrUserNotFound if no such user exists
func (s *UserService) DeleteUser(ctx context.Context, userID int) error {
	if err := s.userRepo.DeleteWithRecords(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
