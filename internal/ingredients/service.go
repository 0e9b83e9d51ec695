package ingredients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/restaurant-backend/pkg/db"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ingredientRepository interface {
	List(ctx context.Context) ([]models.Ingredient, error)
	FindByID(ctx context.Context, id int64) (*models.Ingredient, error)
	Create(ctx context.Context, row *models.Ingredient) error
	Update(ctx context.Context, row *models.Ingredient) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	List(ctx context.Context) ([]models.Ingredient, error)
	Get(ctx context.Context, id int64) (*models.Ingredient, error)
	Create(ctx context.Context, input Input) (*models.Ingredient, error)
	Update(ctx context.Context, id int64, input Input) error
	Delete(ctx context.Context, id int64) error
}

type Input struct {
	Name        string
	Unit        string
	CostPerUnit decimal.NullDecimal
	Description *string
}

type service struct {
	repo ingredientRepository
}

func NewService(repo ingredientRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ingredient repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Ingredient, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch ingredients")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Ingredient, error) {
	row, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("Ingredient not found")
	}
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch ingredient")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Ingredient, error) {
	row, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Internal(err, "Failed to create ingredient")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) error {
	row, err := input.toModel()
	if err != nil {
		return err
	}
	row.ID = id
	if err := s.repo.Update(ctx, row); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Ingredient not found")
		}
		return pkgerrors.Internal(err, "Failed to update ingredient")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Ingredient not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Validation("Ingredient is used by recipes or inventory")
		}
		return pkgerrors.Internal(err, "Failed to delete ingredient")
	}
	return nil
}

func (in Input) toModel() (*models.Ingredient, error) {
	row := &models.Ingredient{
		Name:        strings.TrimSpace(in.Name),
		Unit:        strings.TrimSpace(in.Unit),
		CostPerUnit: in.CostPerUnit,
	}
	if row.Name == "" || row.Unit == "" {
		return nil, pkgerrors.Validation("Name and unit are required")
	}
	if row.CostPerUnit.Valid && row.CostPerUnit.Decimal.IsNegative() {
		return nil, pkgerrors.Validation("cost_per_unit must not be negative")
	}
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			row.Description = &d
		}
	}
	return row, nil
}
