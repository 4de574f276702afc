package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, accountService AccountServicer) ExpenseServicer {
	return &expenseService{db: db, accountService: accountService}
}

// List returns a paginated list of the user's expenses, newest first,
// optionally filtered by category.
func (s *expenseService) List(userID uint, category string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if category != "" {
		base = base.Where("category = ?", category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.Limit, totalItems)
	return &result, nil
}

// Create records a new expense and moves the ledger (total_expense up,
// total_balance down) in the same transaction.
func (s *expenseService) Create(userID uint, in ExpenseInput) (*models.Expense, error) {
	if in.Title == "" || in.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and category are required")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	expense := &models.Expense{
		UserID:        userID,
		Title:         in.Title,
		Category:      in.Category,
		Amount:        in.Amount,
		Date:          in.Date,
		PaymentMethod: in.PaymentMethod,
		Description:   in.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyDelta(tx, userID, LedgerDelta{Expense: in.Amount})
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// Update applies a partial patch. Amount patches do not move the ledger.
func (s *expenseService) Update(userID, expenseID uint, patch ExpensePatch) (*models.Expense, error) {
	expense, err := s.getByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *patch.Amount
	}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}
	if patch.PaymentMethod != nil {
		updates["payment_method"] = *patch.PaymentMethod
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return expense, nil
}

// Delete removes an expense and reverses its ledger delta in the same transaction.
func (s *expenseService) Delete(userID, expenseID uint) error {
	expense, err := s.getByID(userID, expenseID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyDelta(tx, userID, LedgerDelta{Expense: expense.Amount.Neg()})
	})
}

func (s *expenseService) getByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}
