package inventory

import (
	"context"
	"time"

	"github.com/angelmondragon/restaurant-backend/internal/repo"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/angelmondragon/restaurant-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Movement is a stock movement joined with ingredient and type names.
type Movement struct {
	InventoryID       int64           `json:"inventory_id"`
	IngredientID      int64           `json:"ingredient_id"`
	IngredientName    string          `json:"ingredient_name"`
	TransactionTypeID int64           `json:"transaction_type_id"`
	TransactionType   *string         `json:"transaction_type"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit"`
	Notes             *string         `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
}

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns movements newest first. A nil after starts at the top and a
// zero limit returns everything.
func (r *Repository) List(ctx context.Context, after *pagination.Cursor, limit int) ([]Movement, error) {
	rows := []Movement{}
	query := r.DB(ctx).
		Table("ingredient_inventory AS inv").
		Select(`inv.id AS inventory_id, inv.ingredient_id, i.name AS ingredient_name,
			inv.transaction_type_id, l.display AS transaction_type,
			inv.quantity, inv.unit, inv.notes, inv.created_at`).
		Joins("JOIN ingredients i ON i.ingredient_id = inv.ingredient_id").
		Joins("LEFT JOIN lookup l ON l.id = inv.transaction_type_id").
		Order("inv.created_at DESC").
		Order("inv.id DESC")
	if after != nil {
		query = query.Where("inv.created_at < ? OR (inv.created_at = ? AND inv.id < ?)", after.CreatedAt, after.CreatedAt, after.ID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Create(ctx context.Context, row *models.IngredientInventory) error {
	return r.DB(ctx).Create(row).Error
}
