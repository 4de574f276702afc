package models

import "github.com/shopspring/decimal"

// Budget represents a spending budget for a category. Spent is manually
// settable and is never auto-computed from expenses.
type Budget struct {
	Base
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	Name           string          `gorm:"not null" json:"name"`
	Category       string          `gorm:"index" json:"category"`
	Spent          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"spent"`
	LimitAmount    decimal.Decimal `gorm:"column:limit_amount;type:numeric(14,2);not null" json:"limit"`
	Color          string          `gorm:"default:'#6366f1'" json:"color"`
	Icon           string          `json:"icon"`
	Frequency      string          `gorm:"default:'monthly'" json:"frequency"`
	AlertThreshold int             `gorm:"default:80" json:"alert_threshold"`
	Followed       bool            `gorm:"default:false" json:"followed"`
}
