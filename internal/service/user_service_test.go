package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ideavote/internal/errors"
	"ideavote/internal/model"
)

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		role          string
		setupMock     func(*MockUserRepository)
		expectedRole  string
		expectedError error
	}{
		{
			name:     "role defaults to standard",
			username: "bob",
			password: "secret123",
			role:     "",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleStandard,
		},
		{
			name:     "explicit admin role",
			username: "root",
			password: "secret123",
			role:     model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name:          "unknown role is rejected",
			username:      "eve",
			password:      "secret123",
			role:          "superuser",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrInvalidRole,
		},
		{
			name:     "duplicate username",
			username: "bob",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			user, err := svc.CreateUser(context.Background(), tt.username, tt.password, tt.role)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.expectedRole, user.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// The stored hash must verify against the submitted password; the returned
// view must not carry password material.
func TestUserService_CreateUser_HashesPassword(t *testing.T) {
	var stored *model.User
	mockRepo := new(MockUserRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.User)
		}).Return(nil)

	svc := NewUserService(mockRepo)
	user, err := svc.CreateUser(context.Background(), "bob", "secret123", "")

	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))

	payload, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(payload), stored.PasswordHash)
	assert.NotContains(t, string(payload), "password")
}

func TestUserService_ListUsers(t *testing.T) {
	users := []model.User{
		{ID: uuid.New(), Username: "alice", PasswordHash: "$2a$10$abcdef", Role: model.RoleAdmin},
		{ID: uuid.New(), Username: "bob", PasswordHash: "$2a$10$ghijkl", Role: model.RoleStandard},
	}

	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return(users, nil)

	svc := NewUserService(mockRepo)
	listed, err := svc.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, listed, 2)
	for i, u := range listed {
		assert.Equal(t, users[i].ID, u.ID)
		assert.Equal(t, users[i].Username, u.Username)
		assert.Equal(t, users[i].Role, u.Role)
	}

	// Serialized listing must never include hashes.
	payload, err := json.Marshal(listed)
	assert.NoError(t, err)
	assert.NotContains(t, string(payload), "$2a$10$")
}

func TestUserService_DeleteUser(t *testing.T) {
	userID := uuid.New()

	mockRepo := new(MockUserRepository)
	mockRepo.On("Delete", mock.Anything, userID).Return(nil)

	svc := NewUserService(mockRepo)
	assert.NoError(t, svc.DeleteUser(context.Background(), userID))
	mockRepo.AssertExpectations(t)
}
