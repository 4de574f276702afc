package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment represents a single investment record
type Investment struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Title         string          `gorm:"not null" json:"title"`
	Area          string          `gorm:"not null;index" json:"area"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Quantity      float64         `gorm:"default:1" json:"quantity"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric(14,2)" json:"purchase_price"`
	CurrentValue  decimal.Decimal `gorm:"type:numeric(14,2)" json:"current_value"`
	Date          time.Time       `gorm:"not null" json:"date"`
}
