package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome     TransactionType = "income"
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeInvestment TransactionType = "investment"
)

// Transaction is the generic ledger-style record. It is independent of the
// typed income/expense/investment tables and is never derived from them.
type Transaction struct {
	Base
	UserID   uint            `gorm:"not null;index" json:"user_id"`
	Title    string          `gorm:"not null" json:"title"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Type     TransactionType `gorm:"not null" json:"type"`
	Date     time.Time       `gorm:"not null" json:"date"`
	Icon     string          `json:"icon"`
}
