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

// ExpenseHandler handles expense record requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for creating an expense record.
type CreateExpenseRequest struct {
	Title         string          `json:"title" binding:"max=200"`
	Category      string          `json:"category" binding:"max=100"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"payment_method" binding:"max=50"`
	Description   string          `json:"description" binding:"max=1000"`
}

// UpdateExpenseRequest represents the request payload for updating an expense record.
type UpdateExpenseRequest struct {
	Title         *string          `json:"title" binding:"omitempty,max=200"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	Amount        *decimal.Decimal `json:"amount"`
	Date          *time.Time       `json:"date"`
	PaymentMethod *string          `json:"payment_method" binding:"omitempty,max=50"`
	Description   *string          `json:"description" binding:"omitempty,max=1000"`
}

// GetExpenses handles listing expense records for the authenticated user.
// @Summary     Get expenses
// @Description Get a paginated list of expense records, newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Filter by category"
// @Param       page     query int    false "Page number (default 1)"
// @Param       limit    query int    false "Items per page (default 10)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
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

	result, err := h.expenseService.List(userID, c.Query("category"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateExpense handles the creation of a new expense record.
// @Summary     Create an expense record
// @Description Record an expense and debit the ledger totals
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.Create(userID, services.ExpenseInput{
		Title:         req.Title,
		Category:      req.Category,
		Amount:        req.Amount,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_EXPENSE", "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"title": expense.Title, "amount": expense.Amount})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// UpdateExpense handles updating an existing expense record.
// @Summary     Update expense
// @Description Apply a partial patch to an expense record; the ledger is not recomputed
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Updated expense details"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.Update(userID, expenseID, services.ExpensePatch{
		Title:         req.Title,
		Category:      req.Category,
		Amount:        req.Amount,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense record.
// @Summary     Delete expense
// @Description Delete an expense record and reverse its ledger delta
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.Delete(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted successfully"})
}
