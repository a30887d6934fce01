package service

import (
	"context"
	goerrors "errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ideavote/internal/errors"
	"ideavote/internal/model"
	"ideavote/internal/repository"
)

// UserService exposes admin user management operations.
type UserService interface {
	CreateUser(ctx context.Context, username, password, role string) (*model.PublicUser, error)
	ListUsers(ctx context.Context) ([]model.PublicUser, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// CreateUser hashes the password and stores the account. Role defaults to
// standard when empty. The response never carries password material.
func (s *userService) CreateUser(ctx context.Context, username, password, role string) (*model.PublicUser, error) {
	if role == "" {
		role = model.RoleStandard
	}
	if !model.ValidRole(role) {
		return nil, errors.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if goerrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	public := user.Public()
	return &public, nil
}

// ListUsers returns the client-facing view of all accounts.
func (s *userService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// DeleteUser removes the account unconditionally. There is no guard against
// self-deletion or removing the last admin; cmd/seed can always mint a new one.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
