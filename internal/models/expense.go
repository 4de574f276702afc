package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single expense record
type Expense struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Title         string          `gorm:"not null" json:"title"`
	Category      string          `gorm:"not null;index" json:"category"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date          time.Time       `gorm:"not null" json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Description   string          `json:"description"`
}
