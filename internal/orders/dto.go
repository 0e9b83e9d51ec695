package orders

import (
	"time"

	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Detail is an order as shown on the orders page.
type Detail struct {
	TransactionID   int64           `json:"transaction_id"`
	TransactionDate time.Time       `json:"transaction_date"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	StatusID        int64           `json:"status_id"`
	Status          *string         `json:"status"`
	AddressID       *int64          `json:"address_id"`
	Street          *string         `json:"street"`
	City            *string         `json:"city"`
	State           *string         `json:"state"`
	ZipCode         *string         `json:"zip_code"`
	Country         *string         `json:"country"`
	CartItems       []DetailItem    `json:"cart_items"`
}

// DetailItem is one cart line of an order.
type DetailItem struct {
	CartItemID int64           `json:"cart_item_id"`
	MenuItemID int64           `json:"menu_item_id"`
	Quantity   int             `json:"quantity"`
	ItemName   string          `json:"item_name"`
	Price      decimal.Decimal `json:"price"`
	Category   *string         `json:"category"`
}

// CreateInput opens a new order. A nil StatusID means Pending.
type CreateInput struct {
	StatusID *int64
}

// UpdateInput carries the fields a PUT may change. Unset fields are left alone.
type UpdateInput struct {
	StatusID    types.NullableID
	AddressID   types.NullableID
	TotalAmount *decimal.Decimal
}

func (in UpdateInput) empty() bool {
	return !in.StatusID.Valid && !in.AddressID.Valid && in.TotalAmount == nil
}
