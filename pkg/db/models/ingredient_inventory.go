package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngredientInventory records one stock movement (receipt, usage, waste, ...).
type IngredientInventory struct {
	ID                int64           `gorm:"column:id;primaryKey;autoIncrement" json:"inventory_id"`
	IngredientID      int64           `gorm:"column:ingredient_id;not null;index" json:"ingredient_id"`
	TransactionTypeID int64           `gorm:"column:transaction_type_id;not null" json:"transaction_type_id"`
	Quantity          decimal.Decimal `gorm:"column:quantity;type:numeric(10,3);not null" json:"quantity"`
	Unit              string          `gorm:"column:unit;not null" json:"unit"`
	Notes             *string         `gorm:"column:notes" json:"notes"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (IngredientInventory) TableName() string { return "ingredient_inventory" }
