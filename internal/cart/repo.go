package cart

import (
	"context"

	"github.com/angelmondragon/restaurant-backend/internal/repo"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for cart items.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// ListByTransaction returns the items of one order in insertion order.
func (r *Repository) ListByTransaction(ctx context.Context, transactionID int64) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := r.DB(ctx).
		Where("transaction_id = ?", transactionID).
		Order("cart_item_id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB(ctx).First(&item, "cart_item_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) Create(ctx context.Context, item *models.CartItem) error {
	return r.DB(ctx).Create(item).Error
}

func (r *Repository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return repo.RequireAffected(r.DB(ctx).
		Model(&models.CartItem{}).
		Where("cart_item_id = ?", id).
		Update("quantity", quantity))
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return repo.RequireAffected(r.DB(ctx).Delete(&models.CartItem{}, "cart_item_id = ?", id))
}

// DeleteByTransaction removes every item of an order and reports how many went.
func (r *Repository) DeleteByTransaction(ctx context.Context, transactionID int64) (int64, error) {
	result := r.DB(ctx).Where("transaction_id = ?", transactionID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}
