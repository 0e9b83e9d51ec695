package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type recipeRepository interface {
	ListByMenuItem(ctx context.Context, menuItemID int64) ([]Line, error)
	Upsert(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, menuItemID, ingredientID int64) error
}

type menuLoader interface {
	FindByID(ctx context.Context, id int64) (*models.MenuItem, error)
}

type ingredientLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Ingredient, error)
}

// Service maintains which ingredients, and how much of each, make a menu item.
type Service interface {
	List(ctx context.Context, menuItemID int64) ([]Line, error)
	Upsert(ctx context.Context, input Input) (*models.Recipe, error)
	Update(ctx context.Context, input Input) error
	Delete(ctx context.Context, menuItemID, ingredientID int64) error
}

type Input struct {
	MenuItemID   int64
	IngredientID int64
	Quantity     decimal.Decimal
	Unit         string
}

type service struct {
	repo        recipeRepository
	menu        menuLoader
	ingredients ingredientLoader
}

func NewService(repo recipeRepository, menu menuLoader, ingredients ingredientLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recipe repository required")
	}
	if menu == nil {
		return nil, fmt.Errorf("menu loader required")
	}
	if ingredients == nil {
		return nil, fmt.Errorf("ingredient loader required")
	}
	return &service{repo: repo, menu: menu, ingredients: ingredients}, nil
}

func (s *service) List(ctx context.Context, menuItemID int64) ([]Line, error) {
	lines, err := s.repo.ListByMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch recipe")
	}
	return lines, nil
}

func (s *service) Upsert(ctx context.Context, input Input) (*models.Recipe, error) {
	recipe, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.requireReferences(ctx, recipe); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, recipe); err != nil {
		return nil, pkgerrors.Internal(err, "Failed to save recipe ingredient")
	}
	return recipe, nil
}

func (s *service) Update(ctx context.Context, input Input) error {
	recipe, err := input.toModel()
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, recipe); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Recipe not found")
		}
		return pkgerrors.Internal(err, "Failed to update recipe ingredient")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, menuItemID, ingredientID int64) error {
	if err := s.repo.Delete(ctx, menuItemID, ingredientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Recipe not found")
		}
		return pkgerrors.Internal(err, "Failed to delete recipe ingredient")
	}
	return nil
}

func (s *service) requireReferences(ctx context.Context, recipe *models.Recipe) error {
	if _, err := s.menu.FindByID(ctx, recipe.MenuItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Validation("Invalid menu_item_id")
		}
		return pkgerrors.Internal(err, "Failed to save recipe ingredient")
	}
	if _, err := s.ingredients.FindByID(ctx, recipe.IngredientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Validation("Invalid ingredient_id")
		}
		return pkgerrors.Internal(err, "Failed to save recipe ingredient")
	}
	return nil
}

func (in Input) toModel() (*models.Recipe, error) {
	unit := strings.TrimSpace(in.Unit)
	if !in.Quantity.IsPositive() || unit == "" {
		return nil, pkgerrors.Validation("Quantity must be greater than zero and unit is required")
	}
	return &models.Recipe{
		MenuItemID:   in.MenuItemID,
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Unit:         unit,
	}, nil
}
