package services

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/pagination"
)

var lastFourPattern = regexp.MustCompile(`^[0-9]{4}$`)

// cardService handles card-related business logic, including the single-default
// invariant: at most one card per user carries is_default.
type cardService struct {
	db *gorm.DB
}

// NewCardService creates a new CardServicer.
func NewCardService(db *gorm.DB) CardServicer {
	return &cardService{db: db}
}

// List returns a paginated list of the user's cards, newest first,
// optionally filtered by card type.
func (s *cardService) List(userID uint, cardType string, page pagination.PageRequest) (*pagination.PageResponse[models.Card], error) {
	page.Defaults()

	base := s.db.Model(&models.Card{}).Where("user_id = ?", userID)
	if cardType != "" {
		base = base.Where("type = ?", cardType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var cards []models.Card
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(cards, page.Page, page.Limit, totalItems)
	return &result, nil
}

// Create stores a new card. When the card is marked default, every other
// default for the user is cleared first, inside the same transaction.
func (s *cardService) Create(userID uint, in CardInput) (*models.Card, error) {
	if in.Type == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card type is required")
	}
	if !lastFourPattern.MatchString(in.LastFour) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "last4 must be exactly 4 digits")
	}
	if in.ExpiryMonth < 1 || in.ExpiryMonth > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expiry month must be between 1 and 12")
	}

	card := &models.Card{
		UserID:         userID,
		Type:           in.Type,
		Issuer:         in.Issuer,
		LastFour:       in.LastFour,
		CardholderName: in.CardholderName,
		ExpiryMonth:    in.ExpiryMonth,
		ExpiryYear:     in.ExpiryYear,
		CreditLimit:    in.CreditLimit,
		IsDefault:      in.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if in.IsDefault {
			if err := s.clearDefault(tx, userID); err != nil {
				return err
			}
		}
		if err := tx.Create(card).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return card, nil
}

// Update applies a partial patch, clearing other defaults first when the
// patch promotes this card to default.
func (s *cardService) Update(userID, cardID uint, patch CardPatch) (*models.Card, error) {
	card, err := s.getByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}
	if patch.Issuer != nil {
		updates["issuer"] = *patch.Issuer
	}
	if patch.LastFour != nil {
		if !lastFourPattern.MatchString(*patch.LastFour) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "last4 must be exactly 4 digits")
		}
		updates["last_four"] = *patch.LastFour
	}
	if patch.CardholderName != nil {
		updates["cardholder_name"] = *patch.CardholderName
	}
	if patch.ExpiryMonth != nil {
		if *patch.ExpiryMonth < 1 || *patch.ExpiryMonth > 12 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expiry month must be between 1 and 12")
		}
		updates["expiry_month"] = *patch.ExpiryMonth
	}
	if patch.ExpiryYear != nil {
		updates["expiry_year"] = *patch.ExpiryYear
	}
	if patch.CreditLimit != nil {
		updates["credit_limit"] = *patch.CreditLimit
	}
	if patch.IsDefault != nil {
		updates["is_default"] = *patch.IsDefault
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if patch.IsDefault != nil && *patch.IsDefault {
			if err := s.clearDefault(tx, userID); err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(card).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return card, nil
}

// Delete removes a card owned by the user.
func (s *cardService) Delete(userID, cardID uint) error {
	card, err := s.getByID(userID, cardID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(card).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// clearDefault unsets is_default on every card the user owns.
func (s *cardService) clearDefault(tx *gorm.DB, userID uint) error {
	err := tx.Model(&models.Card{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *cardService) getByID(userID, cardID uint) (*models.Card, error) {
	var card models.Card
	if err := s.db.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &card, nil
}
