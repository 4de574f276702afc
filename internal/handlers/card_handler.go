package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finbook/internal/errors"
	"finbook/internal/pagination"
	"finbook/internal/services"
)

// CardHandler handles card record requests.
type CardHandler struct {
	cardService  services.CardServicer
	auditService services.AuditServicer
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService services.CardServicer, auditService services.AuditServicer) *CardHandler {
	return &CardHandler{cardService: cardService, auditService: auditService}
}

// GetCards handles listing cards for the authenticated user.
// @Summary     Get cards
// @Description Get a paginated list of cards, newest first
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       type  query string false "Filter by card type"
// @Param       page  query int    false "Page number (default 1)"
// @Param       limit query int    false "Items per page (default 10)"
// @Success     200 {object} pagination.PageResponse[models.Card] "Paginated cards"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards [get]
func (h *CardHandler) GetCards(c *gin.Context) {
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

	result, err := h.cardService.List(userID, c.Query("type"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateCard handles the creation of a new card, accepting either input
// shaping and normalizing at the boundary.
// @Summary     Create a card
// @Description Store card metadata; marking it default clears other defaults
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCardRequest true "Card details"
// @Success     201 {object} models.Card "Card created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in, err := req.Normalize()
	if err != nil {
		respondWithError(c, err)
		return
	}

	card, err := h.cardService.Create(userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CARD", "card", card.ID, c.ClientIP(),
		map[string]interface{}{"type": card.Type, "last4": card.LastFour})

	c.JSON(http.StatusCreated, gin.H{"card": card})
}

// UpdateCard handles updating an existing card.
// @Summary     Update card
// @Description Apply a partial patch to a card, in either input shaping
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Card ID"
// @Param       request body UpdateCardRequest true "Updated card details"
// @Success     200 {object} models.Card "Updated card"
// @Failure     400 {object} ErrorResponse "Invalid input or card ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards/{id} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch, err := req.NormalizePatch()
	if err != nil {
		respondWithError(c, err)
		return
	}

	card, err := h.cardService.Update(userID, cardID, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CARD", "card", cardID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// DeleteCard handles deleting a card.
// @Summary     Delete card
// @Description Delete a card by ID
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Card ID"
// @Success     200 {object} MessageResponse "Card deleted"
// @Failure     400 {object} ErrorResponse "Invalid card ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards/{id} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.cardService.Delete(userID, cardID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CARD", "card", cardID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Card deleted successfully"})
}
