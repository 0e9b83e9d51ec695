package models

import "github.com/shopspring/decimal"

// Recipe links a menu item to one ingredient; the pair is the primary key.
type Recipe struct {
	MenuItemID   int64           `gorm:"column:menu_item_id;primaryKey;autoIncrement:false" json:"menu_item_id"`
	IngredientID int64           `gorm:"column:ingredient_id;primaryKey;autoIncrement:false" json:"ingredient_id"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:numeric(10,3);not null" json:"quantity"`
	Unit         string          `gorm:"column:unit;not null" json:"unit"`
}

func (Recipe) TableName() string { return "recipes" }
