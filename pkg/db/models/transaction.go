package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a customer order. TotalAmount mirrors the sum of its cart items.
type Transaction struct {
	ID              int64           `gorm:"column:transaction_id;primaryKey;autoIncrement" json:"transaction_id"`
	TransactionDate time.Time       `gorm:"column:transaction_date;not null;autoCreateTime" json:"transaction_date"`
	StatusID        int64           `gorm:"column:status_id;not null;index" json:"status_id"`
	AddressID       *int64          `gorm:"column:address_id" json:"address_id"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(10,2);not null;default:0" json:"total_amount"`
}

func (Transaction) TableName() string { return "transactions" }
