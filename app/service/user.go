package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
	"github.com/huynhdieutuong/DevCamper-API/app/repository"
	"github.com/huynhdieutuong/DevCamper-API/config"

	"golang.org/x/crypto/bcrypt"
)

func validRole(role string) bool {
	switch role {
	case entity.RoleUser, entity.RolePublisher, entity.RoleAdmin:
		return true
	}
	return false
}

// UserService backs the admin-only user management routes. Admin-created
// accounts skip email verification.
type UserService struct {
	repo *repository.UserRepository
	cfg  *config.Config
}

func NewUserService(repo *repository.UserRepository, cfg *config.Config) *UserService {
	return &UserService{repo: repo, cfg: cfg}
}

func (s *UserService) List(ctx context.Context, page, limit int) ([]*entity.User, int, error) {
	users, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *UserService) Get(ctx context.Context, id uint64) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, name, email, password, role string) (*entity.User, error) {
	if role == "" {
		role = entity.RoleUser
	}
	if !validRole(role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	if err := s.cfg.PasswordPolicy.Validate(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Name:         name,
		Email:        NormalizeEmail(email),
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint64, name, email, role string) (*entity.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = NormalizeEmail(email)
	}
	if role != "" {
		if !validRole(role) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
		}
		user.Role = role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrUserNotFound
	}
	return nil
}
