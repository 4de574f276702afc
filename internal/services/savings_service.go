package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/pagination"
)

// savingsService handles savings-goal business logic, including the
// contribute/withdraw operations and the status transition to completed.
type savingsService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewSavingsService creates a new SavingsGoalServicer.
func NewSavingsService(db *gorm.DB, accountService AccountServicer) SavingsGoalServicer {
	return &savingsService{db: db, accountService: accountService}
}

// List returns a paginated list of the user's goals, newest first,
// optionally filtered by status.
func (s *savingsService) List(userID uint, status string, page pagination.PageRequest) (*pagination.PageResponse[models.SavingsGoal], error) {
	page.Defaults()

	base := s.db.Model(&models.SavingsGoal{}).Where("user_id = ?", userID)
	if status != "" {
		base = base.Where("status = ?", status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.SavingsGoal
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.Limit, totalItems)
	return &result, nil
}

// Create stores a new savings goal. An initial current amount counts as a
// contribution, so the ledger's total_savings moves with it in the same
// transaction.
func (s *savingsService) Create(userID uint, in SavingsGoalInput) (*models.SavingsGoal, error) {
	if in.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if !in.TargetAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if in.CurrentAmount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current amount cannot be negative")
	}
	if in.Priority == "" {
		in.Priority = "medium"
	}

	status := models.GoalStatusActive
	if in.CurrentAmount.GreaterThanOrEqual(in.TargetAmount) {
		status = models.GoalStatusCompleted
	}

	goal := &models.SavingsGoal{
		UserID:        userID,
		Title:         in.Title,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      in.Deadline,
		Priority:      in.Priority,
		Status:        status,
		Category:      in.Category,
		Icon:          in.Icon,
		Description:   in.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if goal.CurrentAmount.IsPositive() {
			return s.accountService.ApplyDelta(tx, userID, LedgerDelta{Savings: goal.CurrentAmount})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Update applies a partial patch. CurrentAmount is only movable through
// Contribute and Withdraw.
func (s *savingsService) Update(userID, goalID uint, patch SavingsGoalPatch) (*models.SavingsGoal, error) {
	goal, err := s.getByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.TargetAmount != nil {
		if !patch.TargetAmount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		updates["target_amount"] = *patch.TargetAmount
	}
	if patch.Deadline != nil {
		updates["deadline"] = patch.Deadline
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Icon != nil {
		updates["icon"] = *patch.Icon
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return goal, nil
}

// Delete removes a goal owned by the user. Any amount still held by the goal
// is released from total_savings in the same transaction.
func (s *savingsService) Delete(userID, goalID uint) error {
	goal, err := s.getByID(userID, goalID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if goal.CurrentAmount.IsPositive() {
			return s.accountService.ApplyDelta(tx, userID, LedgerDelta{Savings: goal.CurrentAmount.Neg()})
		}
		return nil
	})
}

// Contribute adds to the goal's current amount, flipping status to completed
// once the target is reached. The ledger's total_savings moves by the same
// amount in the same transaction.
func (s *savingsService) Contribute(userID, goalID uint, amount decimal.Decimal) (*models.SavingsGoal, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	goal, err := s.getByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) && goal.TargetAmount.IsPositive() {
		goal.Status = models.GoalStatusCompleted
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyDelta(tx, userID, LedgerDelta{Savings: amount})
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Withdraw subtracts from the goal's current amount, floored at zero. A
// completed goal stays completed; withdrawals never reopen it.
func (s *savingsService) Withdraw(userID, goalID uint, amount decimal.Decimal) (*models.SavingsGoal, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	goal, err := s.getByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	// Only the amount actually held can leave the goal
	applied := amount
	if applied.GreaterThan(goal.CurrentAmount) {
		applied = goal.CurrentAmount
	}
	goal.CurrentAmount = goal.CurrentAmount.Sub(applied)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyDelta(tx, userID, LedgerDelta{Savings: applied.Neg()})
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *savingsService) getByID(userID, goalID uint) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}
