package recipes

import (
	"context"

	"github.com/angelmondragon/restaurant-backend/internal/repo"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Line is a recipe row joined with the ingredient name.
type Line struct {
	MenuItemID     int64           `json:"menu_item_id"`
	IngredientID   int64           `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
}

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) ListByMenuItem(ctx context.Context, menuItemID int64) ([]Line, error) {
	lines := []Line{}
	err := r.DB(ctx).
		Table("recipes AS r").
		Select("r.menu_item_id, r.ingredient_id, i.name AS ingredient_name, r.quantity, r.unit").
		Joins("JOIN ingredients i ON i.ingredient_id = r.ingredient_id").
		Where("r.menu_item_id = ?", menuItemID).
		Order("i.name").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Upsert inserts the pair or overwrites quantity and unit when it exists.
func (r *Repository) Upsert(ctx context.Context, recipe *models.Recipe) error {
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "menu_item_id"}, {Name: "ingredient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "unit"}),
	}).Create(recipe).Error
}

func (r *Repository) Update(ctx context.Context, recipe *models.Recipe) error {
	return repo.RequireAffected(r.DB(ctx).
		Model(&models.Recipe{}).
		Where("menu_item_id = ? AND ingredient_id = ?", recipe.MenuItemID, recipe.IngredientID).
		Updates(map[string]any{"quantity": recipe.Quantity, "unit": recipe.Unit}))
}

func (r *Repository) Delete(ctx context.Context, menuItemID, ingredientID int64) error {
	return repo.RequireAffected(r.DB(ctx).
		Where("menu_item_id = ? AND ingredient_id = ?", menuItemID, ingredientID).
		Delete(&models.Recipe{}))
}
