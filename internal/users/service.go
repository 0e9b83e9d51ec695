package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/restaurant-backend/pkg/db"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"gorm.io/gorm"
)

type userRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// Service maintains back-office users.
type Service interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, input Input) (*models.User, error)
	Update(ctx context.Context, id int64, input Input) error
	Delete(ctx context.Context, id int64) error
}

type Input struct {
	Username string
	Email    string
	Role     string
}

type service struct {
	repo userRepository
}

func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch users")
	}
	return users, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("User not found")
	}
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch user")
	}
	return user, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.User, error) {
	user, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, pkgerrors.Internal(err, "Failed to create user")
	}
	return user, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) error {
	user, err := input.toModel()
	if err != nil {
		return err
	}
	user.ID = id
	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("User not found")
		}
		return pkgerrors.Internal(err, "Failed to update user")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("User not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Validation("User still owns addresses")
		}
		return pkgerrors.Internal(err, "Failed to delete user")
	}
	return nil
}

func (in Input) toModel() (*models.User, error) {
	user := &models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Role:     strings.TrimSpace(in.Role),
	}
	if user.Username == "" || user.Email == "" || user.Role == "" {
		return nil, pkgerrors.Validation("Username, email, and role are required")
	}
	return user, nil
}
