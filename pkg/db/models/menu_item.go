package models

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID         int64           `gorm:"column:menu_item_id;primaryKey;autoIncrement" json:"menu_item_id"`
	Name       string          `gorm:"column:name;not null" json:"name"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	CategoryID int64           `gorm:"column:category_id;not null;index" json:"category_id"`
	Image      *string         `gorm:"column:image" json:"image"`
}

func (MenuItem) TableName() string { return "menu_items" }
