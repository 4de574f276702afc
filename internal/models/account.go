package models

import "github.com/shopspring/decimal"

// Account is the per-user ledger row holding running totals. All fields are
// derived from income/expense/investment/savings writes, not authoritative.
type Account struct {
	Base
	UserID        uint            `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalBalance  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_balance"`
	TotalIncome   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_income"`
	TotalExpense  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_expense"`
	TotalSavings  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_savings"`
	TotalInvested decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_invested"`
}
