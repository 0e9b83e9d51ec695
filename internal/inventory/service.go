package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/angelmondragon/restaurant-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type inventoryRepository interface {
	List(ctx context.Context, after *pagination.Cursor, limit int) ([]Movement, error)
	Create(ctx context.Context, row *models.IngredientInventory) error
}

type ingredientLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Ingredient, error)
}

type typeChecker interface {
	InGroup(ctx context.Context, id int64, group enums.LookupGroup) (bool, error)
}

// Service records ingredient stock movements.
type Service interface {
	// List returns one page of movements and the cursor of the next page,
	// or every movement when page is the zero value.
	List(ctx context.Context, page pagination.Params) ([]Movement, string, error)
	Record(ctx context.Context, input Input) (*models.IngredientInventory, error)
}

type Input struct {
	IngredientID      int64
	TransactionTypeID int64
	Quantity          decimal.Decimal
	Unit              string
	Notes             *string
}

type service struct {
	repo        inventoryRepository
	ingredients ingredientLoader
	types       typeChecker
}

func NewService(repo inventoryRepository, ingredients ingredientLoader, types typeChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if ingredients == nil {
		return nil, fmt.Errorf("ingredient loader required")
	}
	if types == nil {
		return nil, fmt.Errorf("transaction type checker required")
	}
	return &service{repo: repo, ingredients: ingredients, types: types}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) ([]Movement, string, error) {
	if !page.Enabled() {
		rows, err := s.repo.List(ctx, nil, 0)
		if err != nil {
			return nil, "", pkgerrors.Internal(err, "Failed to fetch inventory")
		}
		return rows, "", nil
	}

	after, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Validation("Invalid cursor")
	}
	limit := pagination.NormalizeLimit(page.Limit)
	rows, err := s.repo.List(ctx, after, pagination.LimitWithBuffer(page.Limit))
	if err != nil {
		return nil, "", pkgerrors.Internal(err, "Failed to fetch inventory")
	}
	if len(rows) <= limit {
		return rows, "", nil
	}
	rows = rows[:limit]
	last := rows[limit-1]
	return rows, pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.InventoryID}), nil
}

func (s *service) Record(ctx context.Context, input Input) (*models.IngredientInventory, error) {
	unit := strings.TrimSpace(input.Unit)
	if input.Quantity.IsZero() || unit == "" {
		return nil, pkgerrors.Validation("Quantity and unit are required")
	}

	if _, err := s.ingredients.FindByID(ctx, input.IngredientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Validation("Invalid ingredient_id")
		}
		return nil, pkgerrors.Internal(err, "Failed to record inventory transaction")
	}
	ok, err := s.types.InGroup(ctx, input.TransactionTypeID, enums.LookupGroupInventoryTransactionType)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to record inventory transaction")
	}
	if !ok {
		return nil, pkgerrors.Validation("Invalid transaction_type_id")
	}

	row := &models.IngredientInventory{
		IngredientID:      input.IngredientID,
		TransactionTypeID: input.TransactionTypeID,
		Quantity:          input.Quantity,
		Unit:              unit,
	}
	if input.Notes != nil {
		if notes := strings.TrimSpace(*input.Notes); notes != "" {
			row.Notes = &notes
		}
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Internal(err, "Failed to record inventory transaction")
	}
	return row, nil
}
