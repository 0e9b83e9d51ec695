package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/restaurant-backend/pkg/db"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type menuRepository interface {
	List(ctx context.Context, filter ListFilter) ([]ItemView, error)
	FindView(ctx context.Context, id int64) (*ItemView, error)
	FindByID(ctx context.Context, id int64) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id int64) error
}

type categoryChecker interface {
	InGroup(ctx context.Context, id int64, group enums.LookupGroup) (bool, error)
}

// Service manages the menu.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ItemView, error)
	Get(ctx context.Context, id int64) (*ItemView, error)
	Create(ctx context.Context, input Input) (*models.MenuItem, error)
	Update(ctx context.Context, id int64, input Input) error
	Delete(ctx context.Context, id int64) error
}

// Input carries the editable menu item fields.
type Input struct {
	Name       string
	Price      decimal.Decimal
	CategoryID int64
	Image      *string
}

type service struct {
	repo       menuRepository
	categories categoryChecker
}

func NewService(repo menuRepository, categories categoryChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category checker required")
	}
	return &service{repo: repo, categories: categories}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ItemView, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch menu items")
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id int64) (*ItemView, error) {
	item, err := s.repo.FindView(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("Menu item not found")
	}
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch menu item")
	}
	return item, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.MenuItem, error) {
	item, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Internal(err, "Failed to create menu item")
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) error {
	item, err := s.validate(ctx, input)
	if err != nil {
		return err
	}
	item.ID = id
	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Menu item not found")
		}
		return pkgerrors.Internal(err, "Failed to update menu item")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Menu item not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Validation("Menu item is referenced by existing orders or recipes")
		}
		return pkgerrors.Internal(err, "Failed to delete menu item")
	}
	return nil
}

func (s *service) validate(ctx context.Context, input Input) (*models.MenuItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.Validation("Name is required")
	}
	if !input.Price.IsPositive() {
		return nil, pkgerrors.Validation("Price must be greater than zero")
	}
	ok, err := s.categories.InGroup(ctx, input.CategoryID, enums.LookupGroupMenuCategory)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to validate category")
	}
	if !ok {
		return nil, pkgerrors.Validation("Invalid category_id")
	}

	var image *string
	if input.Image != nil {
		if trimmed := strings.TrimSpace(*input.Image); trimmed != "" {
			image = &trimmed
		}
	}
	return &models.MenuItem{
		Name:       name,
		Price:      input.Price.Round(2),
		CategoryID: input.CategoryID,
		Image:      image,
	}, nil
}
