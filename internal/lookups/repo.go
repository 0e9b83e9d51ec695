package lookups

import (
	"context"

	"github.com/angelmondragon/restaurant-backend/internal/repo"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"gorm.io/gorm"
)

// Repository reads and maintains the shared lookup table.
type Repository struct {
	repo.Base
}

// NewRepository constructs a lookup repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every lookup row ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.Lookup, error) {
	var rows []models.Lookup
	if err := r.DB(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListGroup returns the id/display pairs of one group in the group's order.
func (r *Repository) ListGroup(ctx context.Context, group enums.LookupGroup) ([]types.Option, error) {
	f := group.Filter()
	query := scopeGroup(r.DB(ctx).Model(&models.Lookup{}), f)
	if f.OrderBy != "" {
		query = query.Order(f.OrderBy)
	}
	options := []types.Option{}
	if err := query.Select("id", "display").Scan(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// FindByID loads one lookup row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Lookup, error) {
	var row models.Lookup
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByDisplay loads the row of a group carrying the display value.
func (r *Repository) FindByDisplay(ctx context.Context, group enums.LookupGroup, display string) (*models.Lookup, error) {
	var row models.Lookup
	err := scopeGroup(r.DB(ctx), group.Filter()).
		Where("display = ?", display).
		Order("id").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a lookup row.
func (r *Repository) Create(ctx context.Context, row *models.Lookup) error {
	return r.DB(ctx).Create(row).Error
}

// Update overwrites the group and display of an existing row.
func (r *Repository) Update(ctx context.Context, row *models.Lookup) error {
	return repo.RequireAffected(r.DB(ctx).
		Model(&models.Lookup{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"group_id":   row.GroupID,
			"group_name": row.GroupName,
			"display":    row.Display,
		}))
}

// Delete removes a lookup row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return repo.RequireAffected(r.DB(ctx).Delete(&models.Lookup{}, "id = ?", id))
}

func scopeGroup(query *gorm.DB, f enums.LookupFilter) *gorm.DB {
	if f.GroupID != 0 {
		query = query.Where("group_id = ?", f.GroupID)
	}
	if f.GroupName != "" {
		query = query.Where("group_name = ?", f.GroupName)
	}
	return query
}
