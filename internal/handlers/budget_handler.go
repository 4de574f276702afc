package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finbook/internal/errors"
	"finbook/internal/pagination"
	"finbook/internal/services"
)

// BudgetHandler handles budget requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Name           string          `json:"name" binding:"max=100"`
	Category       string          `json:"category" binding:"max=100"`
	Spent          decimal.Decimal `json:"spent"`
	Limit          decimal.Decimal `json:"limit"`
	Color          string          `json:"color" binding:"omitempty,hex_color"`
	Icon           string          `json:"icon" binding:"max=50"`
	Frequency      string          `json:"frequency" binding:"omitempty,frequency"`
	AlertThreshold int             `json:"alert_threshold" binding:"omitempty,min=1,max=100"`
	Followed       bool            `json:"followed"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=100"`
	Category       *string          `json:"category" binding:"omitempty,max=100"`
	Spent          *decimal.Decimal `json:"spent"`
	Limit          *decimal.Decimal `json:"limit"`
	Color          *string          `json:"color" binding:"omitempty,hex_color"`
	Icon           *string          `json:"icon" binding:"omitempty,max=50"`
	Frequency      *string          `json:"frequency" binding:"omitempty,frequency"`
	AlertThreshold *int             `json:"alert_threshold" binding:"omitempty,min=1,max=100"`
	Followed       *bool            `json:"followed"`
}

// GetBudgets handles listing budgets for the authenticated user.
// @Summary     Get budgets
// @Description Get a paginated list of budgets, newest first
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Filter by category"
// @Param       page     query int    false "Page number (default 1)"
// @Param       limit    query int    false "Items per page (default 10)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.List(userID, c.Query("category"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a budget with color, frequency and threshold defaults
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.Create(userID, services.BudgetInput{
		Name:           req.Name,
		Category:       req.Category,
		Spent:          req.Spent,
		LimitAmount:    req.Limit,
		Color:          req.Color,
		Icon:           req.Icon,
		Frequency:      req.Frequency,
		AlertThreshold: req.AlertThreshold,
		Followed:       req.Followed,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"name": budget.Name, "limit": budget.LimitAmount})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// UpdateBudget handles updating an existing budget.
// @Summary     Update budget
// @Description Apply a partial patch to a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Updated budget details"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.Update(userID, budgetID, services.BudgetPatch{
		Name:           req.Name,
		Category:       req.Category,
		Spent:          req.Spent,
		LimitAmount:    req.Limit,
		Color:          req.Color,
		Icon:           req.Icon,
		Frequency:      req.Frequency,
		AlertThreshold: req.AlertThreshold,
		Followed:       req.Followed,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Description Delete a budget by ID
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.Delete(userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Budget deleted successfully"})
}
