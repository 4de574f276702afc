package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finbook/internal/errors"
	"finbook/internal/pagination"
	"finbook/internal/services"
)

// SavingsHandler handles savings goal requests.
type SavingsHandler struct {
	savingsService services.SavingsGoalServicer
	auditService   services.AuditServicer
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsService services.SavingsGoalServicer, auditService services.AuditServicer) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a savings goal.
type CreateGoalRequest struct {
	Title         string          `json:"title" binding:"max=200"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline"`
	Priority      string          `json:"priority" binding:"omitempty,goal_priority"`
	Category      string          `json:"category" binding:"max=100"`
	Icon          string          `json:"icon" binding:"max=50"`
	Description   string          `json:"description" binding:"max=1000"`
}

// UpdateGoalRequest represents the request payload for updating a savings goal.
// current_amount is not patchable; it only moves through contribute/withdraw.
type UpdateGoalRequest struct {
	Title        *string          `json:"title" binding:"omitempty,max=200"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	Deadline     *time.Time       `json:"deadline"`
	Priority     *string          `json:"priority" binding:"omitempty,goal_priority"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	Icon         *string          `json:"icon" binding:"omitempty,max=50"`
	Description  *string          `json:"description" binding:"omitempty,max=1000"`
}

// AmountRequest represents a contribute/withdraw payload.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ListGoalsQuery is the list filter; status must be a known goal status
// when present.
type ListGoalsQuery struct {
	pagination.PageRequest
	Status string `form:"status" binding:"omitempty,goal_status"`
}

// GetGoals handles listing savings goals for the authenticated user.
// @Summary     Get savings goals
// @Description Get a paginated list of savings goals, newest first
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "Filter by status (active/completed)"
// @Param       page   query int    false "Page number (default 1)"
// @Param       limit  query int    false "Items per page (default 10)"
// @Success     200 {object} pagination.PageResponse[models.SavingsGoal] "Paginated goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings [get]
func (h *SavingsHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListGoalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.savingsService.List(userID, query.Status, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateGoal handles the creation of a new savings goal.
// @Summary     Create a savings goal
// @Description Create a savings goal; status starts completed if already funded
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.SavingsGoal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings [post]
func (h *SavingsHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.savingsService.Create(userID, services.SavingsGoalInput{
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
		Priority:      req.Priority,
		Category:      req.Category,
		Icon:          req.Icon,
		Description:   req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "savings_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"title": goal.Title, "target_amount": goal.TargetAmount})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// UpdateGoal handles updating an existing savings goal.
// @Summary     Update savings goal
// @Description Apply a partial patch to a savings goal
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Goal ID"
// @Param       request body UpdateGoalRequest true "Updated goal details"
// @Success     200 {object} models.SavingsGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/{id} [put]
func (h *SavingsHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.savingsService.Update(userID, goalID, services.SavingsGoalPatch{
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
		Priority:     req.Priority,
		Category:     req.Category,
		Icon:         req.Icon,
		Description:  req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL", "savings_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a savings goal.
// @Summary     Delete savings goal
// @Description Delete a savings goal by ID
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/{id} [delete]
func (h *SavingsHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingsService.Delete(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GOAL", "savings_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Goal deleted successfully"})
}

// Contribute handles adding funds to a savings goal.
// @Summary     Contribute to a goal
// @Description Add to a goal's current amount; completes the goal when the target is reached
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int           true "Goal ID"
// @Param       request body AmountRequest true "Contribution amount"
// @Success     200 {object} models.SavingsGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/{id}/contribute [post]
func (h *SavingsHandler) Contribute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.savingsService.Contribute(userID, goalID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CONTRIBUTE_GOAL", "savings_goal", goalID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Withdraw handles taking funds out of a savings goal.
// @Summary     Withdraw from a goal
// @Description Subtract from a goal's current amount, floored at zero
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int           true "Goal ID"
// @Param       request body AmountRequest true "Withdrawal amount"
// @Success     200 {object} models.SavingsGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/{id}/withdraw [post]
func (h *SavingsHandler) Withdraw(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.savingsService.Withdraw(userID, goalID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "WITHDRAW_GOAL", "savings_goal", goalID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}
