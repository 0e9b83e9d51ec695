package models

import "github.com/shopspring/decimal"

// CartItem snapshots the menu item name and price at the moment it was added.
type CartItem struct {
	ID            int64           `gorm:"column:cart_item_id;primaryKey;autoIncrement" json:"cart_item_id"`
	MenuItemID    int64           `gorm:"column:menu_item_id;not null" json:"menu_item_id"`
	TransactionID int64           `gorm:"column:transaction_id;not null;index" json:"transaction_id"`
	Quantity      int             `gorm:"column:quantity;not null" json:"quantity"`
	ItemName      string          `gorm:"column:item_name;not null" json:"item_name"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
}

func (CartItem) TableName() string { return "cart_items" }

// LineTotal is quantity x captured price.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
