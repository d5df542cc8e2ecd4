package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "archives/internal/errors"
	"archives/internal/model"
	"archives/internal/repository"
)

// UserService exposes admin user management.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	RegisterUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error)
	UpdateRole(ctx context.Context, id uint, role model.Role) (*model.User, error)
	DeleteUser(ctx context.Context, actorEmail string, id uint) error
}

type userService struct {
	repo repository.UserRepository
	log  *zap.Logger
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{repo: repo, log: log}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// RegisterUser creates an account with an explicit role.
func (s *userService) RegisterUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	if role == "" {
		role = model.RoleUser
	}
	user, err := createUser(ctx, s.repo, name, email, password, role)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, id uint, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	user.Role = role

	s.log.Info("user role updated", zap.Uint("user_id", id), zap.String("role", string(role)))
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *userService) DeleteUser(ctx context.Context, actorEmail string, id uint) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(user.Email, strings.TrimSpace(actorEmail)) {
		return apperrors.ErrSelfDelete
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("user deleted", zap.Uint("user_id", id))
	return nil
}

func (s *userService) find(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
