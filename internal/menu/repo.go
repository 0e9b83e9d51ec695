package menu

import (
	"context"

	"github.com/angelmondragon/restaurant-backend/internal/repo"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemView is a menu item joined with its category display.
type ItemView struct {
	MenuItemID int64           `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID int64           `json:"category_id"`
	Category   *string         `json:"category"`
	Image      *string         `json:"image"`
}

// ListFilter narrows and orders menu listings.
type ListFilter struct {
	CategoryID *int64
	SortByName bool
}

// Repository persists menu items.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]ItemView, error) {
	query := r.views(ctx)
	if filter.CategoryID != nil {
		query = query.Where("m.category_id = ?", *filter.CategoryID)
	}
	if filter.SortByName {
		query = query.Order("m.name")
	} else {
		query = query.Order("m.menu_item_id")
	}
	items := []ItemView{}
	if err := query.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) FindView(ctx context.Context, id int64) (*ItemView, error) {
	var items []ItemView
	if err := r.views(ctx).Where("m.menu_item_id = ?", id).Limit(1).Scan(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &items[0], nil
}

// FindByID loads the raw menu item row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB(ctx).First(&item, "menu_item_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.DB(ctx).Create(item).Error
}

func (r *Repository) Update(ctx context.Context, item *models.MenuItem) error {
	return repo.RequireAffected(r.DB(ctx).
		Model(&models.MenuItem{}).
		Where("menu_item_id = ?", item.ID).
		Updates(map[string]any{
			"name":        item.Name,
			"price":       item.Price,
			"category_id": item.CategoryID,
			"image":       item.Image,
		}))
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return repo.RequireAffected(r.DB(ctx).Delete(&models.MenuItem{}, "menu_item_id = ?", id))
}

func (r *Repository) views(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Table("menu_items AS m").
		Select("m.menu_item_id, m.name, m.price, m.category_id, l.display AS category, m.image").
		Joins("LEFT JOIN lookup l ON l.id = m.category_id")
}
