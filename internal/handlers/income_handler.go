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

// IncomeHandler handles income record requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// CreateIncomeRequest represents the request payload for creating an income record.
type CreateIncomeRequest struct {
	Title       string          `json:"title" binding:"max=200"`
	Source      string          `json:"source" binding:"max=100"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Frequency   string          `json:"frequency" binding:"omitempty,frequency"`
	Description string          `json:"description" binding:"max=1000"`
}

// UpdateIncomeRequest represents the request payload for updating an income record.
type UpdateIncomeRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=200"`
	Source      *string          `json:"source" binding:"omitempty,max=100"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	Frequency   *string          `json:"frequency" binding:"omitempty,frequency"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
}

// GetIncomes handles listing income records for the authenticated user.
// @Summary     Get incomes
// @Description Get a paginated list of income records, newest first
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       source query string false "Filter by source"
// @Param       page   query int    false "Page number (default 1)"
// @Param       limit  query int    false "Items per page (default 10)"
// @Success     200 {object} pagination.PageResponse[models.Income] "Paginated incomes"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes [get]
func (h *IncomeHandler) GetIncomes(c *gin.Context) {
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

	result, err := h.incomeService.List(userID, c.Query("source"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateIncome handles the creation of a new income record.
// @Summary     Create an income record
// @Description Record an income and credit the ledger totals
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeRequest true "Income details"
// @Success     201 {object} models.Income "Income created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.Create(userID, services.IncomeInput{
		Title:       req.Title,
		Source:      req.Source,
		Amount:      req.Amount,
		Date:        req.Date,
		Frequency:   req.Frequency,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INCOME", "income", income.ID, c.ClientIP(),
		map[string]interface{}{"title": income.Title, "amount": income.Amount})

	c.JSON(http.StatusCreated, gin.H{"income": income})
}

// UpdateIncome handles updating an existing income record.
// @Summary     Update income
// @Description Apply a partial patch to an income record; the ledger is not recomputed
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Income ID"
// @Param       request body UpdateIncomeRequest true "Updated income details"
// @Success     200 {object} models.Income "Updated income"
// @Failure     400 {object} ErrorResponse "Invalid input or income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.Update(userID, incomeID, services.IncomePatch{
		Title:       req.Title,
		Source:      req.Source,
		Amount:      req.Amount,
		Date:        req.Date,
		Frequency:   req.Frequency,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INCOME", "income", incomeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// DeleteIncome handles deleting an income record.
// @Summary     Delete income
// @Description Delete an income record and reverse its ledger delta
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income ID"
// @Success     200 {object} MessageResponse "Income deleted"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.Delete(userID, incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INCOME", "income", incomeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Income deleted successfully"})
}
