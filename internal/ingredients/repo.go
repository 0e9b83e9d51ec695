package ingredients

import (
	"context"

	"github.com/angelmondragon/restaurant-backend/internal/repo"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"gorm.io/gorm"
)

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) List(ctx context.Context) ([]models.Ingredient, error) {
	rows := []models.Ingredient{}
	if err := r.DB(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	var row models.Ingredient
	if err := r.DB(ctx).First(&row, "ingredient_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Create(ctx context.Context, row *models.Ingredient) error {
	return r.DB(ctx).Create(row).Error
}

func (r *Repository) Update(ctx context.Context, row *models.Ingredient) error {
	return repo.RequireAffected(r.DB(ctx).
		Model(&models.Ingredient{}).
		Where("ingredient_id = ?", row.ID).
		Updates(map[string]any{
			"name":          row.Name,
			"unit":          row.Unit,
			"cost_per_unit": row.CostPerUnit,
			"description":   row.Description,
		}))
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return repo.RequireAffected(r.DB(ctx).Delete(&models.Ingredient{}, "ingredient_id = ?", id))
}
