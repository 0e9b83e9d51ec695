package models

import "github.com/shopspring/decimal"

type Ingredient struct {
	ID          int64               `gorm:"column:ingredient_id;primaryKey;autoIncrement" json:"ingredient_id"`
	Name        string              `gorm:"column:name;not null" json:"name"`
	Unit        string              `gorm:"column:unit;not null" json:"unit"`
	CostPerUnit decimal.NullDecimal `gorm:"column:cost_per_unit;type:numeric(10,2)" json:"cost_per_unit"`
	Description *string             `gorm:"column:description" json:"description"`
}

func (Ingredient) TableName() string { return "ingredients" }
