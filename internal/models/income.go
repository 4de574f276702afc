package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income represents a single income record
type Income struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Title       string          `gorm:"not null" json:"title"`
	Source      string          `gorm:"not null;index" json:"source"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Frequency   string          `gorm:"default:'monthly'" json:"frequency"`
	Description string          `json:"description"`
}
