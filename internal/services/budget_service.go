package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/pagination"
)

const (
	defaultBudgetColor     = "#6366f1"
	defaultAlertThreshold  = 80
	defaultBudgetFrequency = "monthly"
)

// budgetService handles budget-related business logic. Spent is a manually
// maintained counter, never derived from the expense table.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// List returns a paginated list of the user's budgets, newest first,
// optionally filtered by category.
func (s *budgetService) List(userID uint, category string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)
	if category != "" {
		base = base.Where("category = ?", category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.Limit, totalItems)
	return &result, nil
}

// Create stores a new budget, filling in color, frequency and alert
// threshold defaults when unspecified.
func (s *budgetService) Create(userID uint, in BudgetInput) (*models.Budget, error) {
	if in.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !in.LimitAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
	}
	if in.Color == "" {
		in.Color = defaultBudgetColor
	}
	if in.Frequency == "" {
		in.Frequency = defaultBudgetFrequency
	}
	if in.AlertThreshold == 0 {
		in.AlertThreshold = defaultAlertThreshold
	}

	budget := &models.Budget{
		UserID:         userID,
		Name:           in.Name,
		Category:       in.Category,
		Spent:          in.Spent,
		LimitAmount:    in.LimitAmount,
		Color:          in.Color,
		Icon:           in.Icon,
		Frequency:      in.Frequency,
		AlertThreshold: in.AlertThreshold,
		Followed:       in.Followed,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// Update applies a partial patch to a budget.
func (s *budgetService) Update(userID, budgetID uint, patch BudgetPatch) (*models.Budget, error) {
	budget, err := s.getByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Spent != nil {
		updates["spent"] = *patch.Spent
	}
	if patch.LimitAmount != nil {
		if !patch.LimitAmount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
		}
		updates["limit_amount"] = *patch.LimitAmount
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.Icon != nil {
		updates["icon"] = *patch.Icon
	}
	if patch.Frequency != nil {
		updates["frequency"] = *patch.Frequency
	}
	if patch.AlertThreshold != nil {
		updates["alert_threshold"] = *patch.AlertThreshold
	}
	if patch.Followed != nil {
		updates["followed"] = *patch.Followed
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// Delete removes a budget owned by the user.
func (s *budgetService) Delete(userID, budgetID uint) error {
	budget, err := s.getByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *budgetService) getByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}
