package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/pagination"
)

// incomeService handles income-related business logic.
type incomeService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, accountService AccountServicer) IncomeServicer {
	return &incomeService{db: db, accountService: accountService}
}

// List returns a paginated list of the user's incomes, newest first,
// optionally filtered by source.
func (s *incomeService) List(userID uint, source string, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	base := s.db.Model(&models.Income{}).Where("user_id = ?", userID)
	if source != "" {
		base = base.Where("source = ?", source)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC").Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.Limit, totalItems)
	return &result, nil
}

// Create records a new income and moves the ledger (total_income and
// total_balance both increase by the amount) in the same transaction.
func (s *incomeService) Create(userID uint, in IncomeInput) (*models.Income, error) {
	if in.Title == "" || in.Source == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and source are required")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	if in.Frequency == "" {
		in.Frequency = "monthly"
	}

	income := &models.Income{
		UserID:      userID,
		Title:       in.Title,
		Source:      in.Source,
		Amount:      in.Amount,
		Date:        in.Date,
		Frequency:   in.Frequency,
		Description: in.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(income).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyDelta(tx, userID, LedgerDelta{Income: in.Amount})
	})
	if err != nil {
		return nil, err
	}

	return income, nil
}

// Update applies a partial patch. Amount patches do not move the ledger;
// only create and delete do.
func (s *incomeService) Update(userID, incomeID uint, patch IncomePatch) (*models.Income, error) {
	income, err := s.getByID(userID, incomeID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Source != nil {
		updates["source"] = *patch.Source
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
	if patch.Frequency != nil {
		updates["frequency"] = *patch.Frequency
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(income).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return income, nil
}

// Delete removes an income and reverses its ledger delta in the same transaction.
func (s *incomeService) Delete(userID, incomeID uint) error {
	income, err := s.getByID(userID, incomeID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(income).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyDelta(tx, userID, LedgerDelta{Income: income.Amount.Neg()})
	})
}

func (s *incomeService) getByID(userID, incomeID uint) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}
