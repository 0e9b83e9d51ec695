package vendors

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

func (r *Repository) List(ctx context.Context) ([]models.Vendor, error) {
	rows := []models.Vendor{}
	if err := r.DB(ctx).Order("vendor_name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Vendor, error) {
	var row models.Vendor
	if err := r.DB(ctx).First(&row, "vendor_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Create(ctx context.Context, row *models.Vendor) error {
	return r.DB(ctx).Create(row).Error
}

// Update overwrites every editable column; created_at is preserved.
func (r *Repository) Update(ctx context.Context, row *models.Vendor) error {
	return repo.RequireAffected(r.DB(ctx).
		Model(&models.Vendor{}).
		Where("vendor_id = ?", row.ID).
		Select("*").
		Omit("vendor_id", "created_at").
		Updates(row))
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return repo.RequireAffected(r.DB(ctx).Delete(&models.Vendor{}, "vendor_id = ?", id))
}
