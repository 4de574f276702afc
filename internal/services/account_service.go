package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
)

// accountService maintains the per-user ledger of running totals.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// GetLedger returns the user's ledger row. An all-zero view is returned when
// no row exists yet; the row itself is only materialized by writes.
func (s *accountService) GetLedger(userID uint) (*models.Account, error) {
	var ledger models.Account
	if err := s.db.Where("user_id = ?", userID).First(&ledger).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Account{UserID: userID}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &ledger, nil
}

// ApplyDelta adjusts the ledger totals inside the caller's transaction so a
// record write and its ledger delta commit or roll back together. The row is
// created lazily for users registered before the ledger existed.
func (s *accountService) ApplyDelta(tx *gorm.DB, userID uint, delta LedgerDelta) error {
	var ledger models.Account
	if err := tx.Where("user_id = ?", userID).First(&ledger).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		ledger = models.Account{UserID: userID}
		if err := tx.Create(&ledger).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	ledger.TotalIncome = ledger.TotalIncome.Add(delta.Income)
	ledger.TotalExpense = ledger.TotalExpense.Add(delta.Expense)
	ledger.TotalInvested = ledger.TotalInvested.Add(delta.Invested)
	ledger.TotalSavings = ledger.TotalSavings.Add(delta.Savings)
	ledger.TotalBalance = ledger.TotalBalance.
		Add(delta.Income).
		Sub(delta.Expense).
		Sub(delta.Invested)

	if err := tx.Save(&ledger).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
