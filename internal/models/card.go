package models

import "github.com/shopspring/decimal"

// Card holds payment card metadata. Only the last four digits are ever stored.
// At most one card per user may have IsDefault set.
type Card struct {
	Base
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	Type           string          `gorm:"not null" json:"type"`
	Issuer         string          `json:"issuer"`
	LastFour       string          `gorm:"size:4;not null" json:"last4"`
	CardholderName string          `json:"cardholder_name"`
	ExpiryMonth    int             `json:"expiry_month"`
	ExpiryYear     int             `json:"expiry_year"`
	CreditLimit    decimal.Decimal `gorm:"type:numeric(14,2)" json:"limit"`
	IsDefault      bool            `gorm:"default:false" json:"is_default"`
}
