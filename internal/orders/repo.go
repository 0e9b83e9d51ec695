package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/restaurant-backend/internal/repo"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const recomputeTotalSQL = `UPDATE transactions
SET total_amount = COALESCE((
	SELECT SUM(c.quantity * c.price) FROM cart_items c WHERE c.transaction_id = ?
), 0)
WHERE transaction_id = ?`

// Repository persists transactions (customer orders).
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) TransactionRepository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

func (r *Repository) Create(ctx context.Context, txn *models.Transaction) error {
	return r.DB(ctx).Create(txn).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.DB(ctx).First(&txn, "transaction_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// Exists reports whether the transaction row is present.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Transaction{}).Where("transaction_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update applies column updates to one transaction.
func (r *Repository) Update(ctx context.Context, id int64, fields map[string]any) error {
	return repo.RequireAffected(r.DB(ctx).
		Model(&models.Transaction{}).
		Where("transaction_id = ?", id).
		Updates(fields))
}

// RecomputeTotal rewrites total_amount from the captured cart item prices and
// returns the stored value.
func (r *Repository) RecomputeTotal(ctx context.Context, id int64) (decimal.Decimal, error) {
	if err := repo.RequireAffected(r.DB(ctx).Exec(recomputeTotalSQL, id, id)); err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	err := r.DB(ctx).
		Model(&models.Transaction{}).
		Where("transaction_id = ?", id).
		Select("total_amount").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// detailRow is one transaction x cart item row of the detail query.
type detailRow struct {
	TransactionID   int64
	TransactionDate time.Time
	TotalAmount     decimal.Decimal
	StatusID        int64
	Status          *string
	AddressID       *int64
	Street          *string
	City            *string
	State           *string
	ZipCode         *string
	Country         *string
	CartItemID      *int64
	MenuItemID      *int64
	Quantity        *int
	ItemName        *string
	Price           decimal.NullDecimal
	Category        *string
}

// ListDetails returns orders by id with their cart items.
func (r *Repository) ListDetails(ctx context.Context, statusID *int64) ([]Detail, error) {
	query := r.details(ctx)
	if statusID != nil {
		query = query.Where("t.status_id = ?", *statusID)
	}
	var rows []detailRow
	if err := query.Order("t.transaction_id").Order("c.cart_item_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return groupDetails(rows), nil
}

// FindDetail returns one order with its cart items.
func (r *Repository) FindDetail(ctx context.Context, id int64) (*Detail, error) {
	var rows []detailRow
	err := r.details(ctx).
		Where("t.transaction_id = ?", id).
		Order("c.cart_item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	details := groupDetails(rows)
	if len(details) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &details[0], nil
}

func (r *Repository) details(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Table("transactions AS t").
		Select(`t.transaction_id, t.transaction_date, t.total_amount, t.status_id, s.display AS status,
			t.address_id, a.street, a.city, a.state, a.zip_code, a.country,
			c.cart_item_id, c.menu_item_id, c.quantity, c.item_name, c.price, cat.display AS category`).
		Joins("LEFT JOIN lookup s ON s.id = t.status_id").
		Joins("LEFT JOIN addresses a ON a.address_id = t.address_id").
		Joins("LEFT JOIN cart_items c ON c.transaction_id = t.transaction_id").
		Joins("LEFT JOIN menu_items m ON m.menu_item_id = c.menu_item_id").
		Joins("LEFT JOIN lookup cat ON cat.id = m.category_id")
}

func groupDetails(rows []detailRow) []Detail {
	details := []Detail{}
	index := map[int64]int{}
	for _, row := range rows {
		pos, ok := index[row.TransactionID]
		if !ok {
			details = append(details, Detail{
				TransactionID:   row.TransactionID,
				TransactionDate: row.TransactionDate,
				TotalAmount:     row.TotalAmount,
				StatusID:        row.StatusID,
				Status:          row.Status,
				AddressID:       row.AddressID,
				Street:          row.Street,
				City:            row.City,
				State:           row.State,
				ZipCode:         row.ZipCode,
				Country:         row.Country,
				CartItems:       []DetailItem{},
			})
			pos = len(details) - 1
			index[row.TransactionID] = pos
		}
		if row.CartItemID == nil {
			continue
		}
		item := DetailItem{
			CartItemID: *row.CartItemID,
			Category:   row.Category,
			Price:      row.Price.Decimal,
		}
		if row.MenuItemID != nil {
			item.MenuItemID = *row.MenuItemID
		}
		if row.Quantity != nil {
			item.Quantity = *row.Quantity
		}
		if row.ItemName != nil {
			item.ItemName = *row.ItemName
		}
		details[pos].CartItems = append(details[pos].CartItems, item)
	}
	return details
}
