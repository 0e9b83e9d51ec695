package cart

import (
	"context"

	"github.com/angelmondragon/restaurant-backend/internal/orders"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"gorm.io/gorm"
)

// CartRepository is the cart item persistence surface.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	ListByTransaction(ctx context.Context, transactionID int64) ([]models.CartItem, error)
	FindByID(ctx context.Context, id int64) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
	DeleteByTransaction(ctx context.Context, transactionID int64) (int64, error)
}

// TotalsRepository keeps transactions.total_amount in sync.
type TotalsRepository = orders.TransactionRepository

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type menuLoader interface {
	FindByID(ctx context.Context, id int64) (*models.MenuItem, error)
}
