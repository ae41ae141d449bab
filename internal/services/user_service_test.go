package services

import (
	"context"
	"errors"
	"testing"

	"github.com/audiovault/backend/internal/models"
	"github.com/audiovault/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user        *models.User
	exists      bool
	existsErr   error
	createErr   error
	getErr      error
	deleteErr   error
	createdUser *models.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.createdUser = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func (m *mockUserRepository) DeleteWithRecords(ctx context.Context, userID int) error {
	return m.deleteErr
}

func TestNewUserService(t *testing.T) {
	mockRepo := &mockUserRepository{}

	svc := NewUserService(mockRepo)

	assert.NotNil(t, svc)
	assert.Equal(t, mockRepo, svc.userRepo)
}

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		mockRepo      *mockUserRepository
		expectedError error
	}{
		{
			name:     "success",
			userName: "alice",
			mockRepo: &mockUserRepository{},
		},
		{
			name:          "name already taken",
			userName:      "alice",
			mockRepo:      &mockUserRepository{exists: true},
			expectedError: ErrNameTaken,
		},
		{
			name:          "error checking name existence",
			userName:      "alice",
			mockRepo:      &mockUserRepository{existsErr: errors.New("database error")},
			expectedError: errors.New("database error"),
		},
		{
			name:          "error creating user",
			userName:      "alice",
			mockRepo:      &mockUserRepository{createErr: errors.New("database error")},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.mockRepo)

			user, err := svc.CreateUser(context.Background(), tt.userName)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, user)
				if errors.Is(tt.expectedError, ErrNameTaken) {
					assert.ErrorIs(t, err, ErrNameTaken)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, 1, user.ID)
			assert.Equal(t, tt.userName, user.Name)

			// The token must be a freshly generated UUID
			_, parseErr := uuid.Parse(user.Token)
			assert.NoError(t, parseErr)
		})
	}
}

func TestUserService_CreateUser_UniqueTokens(t *testing.T) {
	svc := NewUserService(&mockUserRepository{})

	first, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	second, err := svc.CreateUser(context.Background(), "bob")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestUserService_DeleteUser(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		mockRepo      *mockUserRepository
		expectedError error
	}{
		{
			name:     "success",
			userID:   1,
			mockRepo: &mockUserRepository{},
		},
		{
			name:          "user not found",
			userID:        42,
			mockRepo:      &mockUserRepository{deleteErr: repositories.ErrNotFound},
			expectedError: ErrUserNotFound,
		},
		{
			name:          "database error",
			userID:        1,
			mockRepo:      &mockUserRepository{deleteErr: errors.New("database error")},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.mockRepo)

			err := svc.DeleteUser(context.Background(), tt.userID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectedError, ErrUserNotFound) {
					assert.ErrorIs(t, err, ErrUserNotFound)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
