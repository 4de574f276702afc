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

// InvestmentHandler handles investment record requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// CreateInvestmentRequest represents the request payload for creating an investment.
type CreateInvestmentRequest struct {
	Title         string          `json:"title" binding:"max=200"`
	Area          string          `json:"area" binding:"max=100"`
	Amount        decimal.Decimal `json:"amount"`
	Quantity      float64         `json:"quantity" binding:"omitempty,gt=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	Date          time.Time       `json:"date"`
}

// UpdateInvestmentRequest represents the request payload for updating an investment.
type UpdateInvestmentRequest struct {
	Title         *string          `json:"title" binding:"omitempty,max=200"`
	Area          *string          `json:"area" binding:"omitempty,max=100"`
	Amount        *decimal.Decimal `json:"amount"`
	Quantity      *float64         `json:"quantity" binding:"omitempty,gt=0"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	CurrentValue  *decimal.Decimal `json:"current_value"`
	Date          *time.Time       `json:"date"`
}

// GetInvestments handles listing investments for the authenticated user.
// @Summary     Get investments
// @Description Get a paginated list of investments, newest first
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       area  query string false "Filter by area"
// @Param       page  query int    false "Page number (default 1)"
// @Param       limit query int    false "Items per page (default 10)"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
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

	result, err := h.investmentService.List(userID, c.Query("area"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateInvestment handles the creation of a new investment.
// @Summary     Create an investment
// @Description Record an investment and debit the ledger totals
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.Create(userID, services.InvestmentInput{
		Title:         req.Title,
		Area:          req.Area,
		Amount:        req.Amount,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentValue:  req.CurrentValue,
		Date:          req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVESTMENT", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{"title": investment.Title, "amount": investment.Amount})

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// UpdateInvestment handles updating an existing investment.
// @Summary     Update investment
// @Description Apply a partial patch to an investment; the ledger is not recomputed
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Updated investment details"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input or investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.Update(userID, investmentID, services.InvestmentPatch{
		Title:         req.Title,
		Area:          req.Area,
		Amount:        req.Amount,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentValue:  req.CurrentValue,
		Date:          req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// DeleteInvestment handles deleting an investment.
// @Summary     Delete investment
// @Description Delete an investment and reverse its ledger delta
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Success     200 {object} MessageResponse "Investment deleted"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.Delete(userID, investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Investment deleted successfully"})
}
