package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/pagination"
)

// investmentService handles investment-related business logic.
type investmentService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB, accountService AccountServicer) InvestmentServicer {
	return &investmentService{db: db, accountService: accountService}
}

// List returns a paginated list of the user's investments, newest first,
// optionally filtered by area.
func (s *investmentService) List(userID uint, area string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()

	base := s.db.Model(&models.Investment{}).Where("user_id = ?", userID)
	if area != "" {
		base = base.Where("area = ?", area)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.Limit, totalItems)
	return &result, nil
}

// Create records a new investment and moves the ledger (total_invested up,
// total_balance down) in the same transaction. CurrentValue defaults to the
// invested amount when unspecified.
func (s *investmentService) Create(userID uint, in InvestmentInput) (*models.Investment, error) {
	if in.Title == "" || in.Area == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and area are required")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.CurrentValue.IsZero() {
		in.CurrentValue = in.Amount
	}
	if in.PurchasePrice.IsZero() {
		in.PurchasePrice = in.Amount
	}

	investment := &models.Investment{
		UserID:        userID,
		Title:         in.Title,
		Area:          in.Area,
		Amount:        in.Amount,
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
		CurrentValue:  in.CurrentValue,
		Date:          in.Date,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(investment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyDelta(tx, userID, LedgerDelta{Invested: in.Amount})
	})
	if err != nil {
		return nil, err
	}

	return investment, nil
}

// Update applies a partial patch. Amount patches do not move the ledger.
func (s *investmentService) Update(userID, investmentID uint, patch InvestmentPatch) (*models.Investment, error) {
	investment, err := s.getByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Area != nil {
		updates["area"] = *patch.Area
	}
	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *patch.Amount
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.PurchasePrice != nil {
		updates["purchase_price"] = *patch.PurchasePrice
	}
	if patch.CurrentValue != nil {
		updates["current_value"] = *patch.CurrentValue
	}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}

	if len(updates) > 0 {
		if err := s.db.Model(investment).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return investment, nil
}

// Delete removes an investment and reverses its ledger delta in the same transaction.
func (s *investmentService) Delete(userID, investmentID uint) error {
	investment, err := s.getByID(userID, investmentID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(investment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyDelta(tx, userID, LedgerDelta{Invested: investment.Amount.Neg()})
	})
}

func (s *investmentService) getByID(userID, investmentID uint) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Where("id = ? AND user_id = ?", investmentID, userID).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}
