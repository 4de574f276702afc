package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/pagination"
)

// transactionService handles the generic transaction family. These rows are
// independent of the typed income/expense/investment tables and never move
// the ledger.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// List returns a paginated list of the user's transactions, newest first.
func (s *transactionService) List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.Limit, totalItems)
	return &result, nil
}

// Create records a new generic transaction.
func (s *transactionService) Create(userID uint, in TransactionInput) (*models.Transaction, error) {
	if in.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	switch in.Type {
	case models.TransactionTypeIncome, models.TransactionTypeExpense, models.TransactionTypeInvestment:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income, expense or investment")
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:   userID,
		Title:    in.Title,
		Category: in.Category,
		Amount:   in.Amount,
		Type:     in.Type,
		Date:     in.Date,
		Icon:     in.Icon,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// Delete removes a transaction owned by the user.
func (s *transactionService) Delete(userID, transactionID uint) error {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
