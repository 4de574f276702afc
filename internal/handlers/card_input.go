package handlers

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "finbook/internal/errors"
	"finbook/internal/services"
)

// CreateCardRequest accepts both card input shapings: the canonical field
// names and the alternate names used by the mobile client (card_type,
// bank_name, card_number, holder_name, a combined "MM/YY" expiry, default).
// Normalization folds both into one services.CardInput.
type CreateCardRequest struct {
	Type           string          `json:"type"`
	CardType       string          `json:"card_type"`
	Issuer         string          `json:"issuer"`
	BankName       string          `json:"bank_name"`
	LastFour       string          `json:"last4" binding:"omitempty,last_four"`
	CardNumber     string          `json:"card_number"`
	CardholderName string          `json:"cardholder_name"`
	HolderName     string          `json:"holder_name"`
	ExpiryMonth    int             `json:"expiry_month"`
	ExpiryYear     int             `json:"expiry_year"`
	Expiry         string          `json:"expiry"`
	CreditLimit    decimal.Decimal `json:"limit"`
	CreditLimitAlt decimal.Decimal `json:"credit_limit"`
	IsDefault      bool            `json:"is_default"`
	DefaultAlt     bool            `json:"default"`
}

// UpdateCardRequest is the partial-patch counterpart; only present keys are
// applied, in either shaping.
type UpdateCardRequest struct {
	Type           *string          `json:"type"`
	CardType       *string          `json:"card_type"`
	Issuer         *string          `json:"issuer"`
	BankName       *string          `json:"bank_name"`
	LastFour       *string          `json:"last4" binding:"omitempty,last_four"`
	CardNumber     *string          `json:"card_number"`
	CardholderName *string          `json:"cardholder_name"`
	HolderName     *string          `json:"holder_name"`
	ExpiryMonth    *int             `json:"expiry_month"`
	ExpiryYear     *int             `json:"expiry_year"`
	Expiry         *string          `json:"expiry"`
	CreditLimit    *decimal.Decimal `json:"limit"`
	CreditLimitAlt *decimal.Decimal `json:"credit_limit"`
	IsDefault      *bool            `json:"is_default"`
	DefaultAlt     *bool            `json:"default"`
}

// Normalize folds the dual shaping into the canonical card input. Canonical
// fields win when both are present.
func (r CreateCardRequest) Normalize() (services.CardInput, error) {
	in := services.CardInput{
		Type:           firstNonEmpty(r.Type, r.CardType),
		Issuer:         firstNonEmpty(r.Issuer, r.BankName),
		CardholderName: firstNonEmpty(r.CardholderName, r.HolderName),
		IsDefault:      r.IsDefault || r.DefaultAlt,
	}

	in.LastFour = r.LastFour
	if in.LastFour == "" && r.CardNumber != "" {
		last4, err := lastFourOf(r.CardNumber)
		if err != nil {
			return services.CardInput{}, err
		}
		in.LastFour = last4
	}

	in.ExpiryMonth = r.ExpiryMonth
	in.ExpiryYear = normalizeExpiryYear(r.ExpiryYear)
	if r.Expiry != "" {
		month, year, err := parseExpiry(r.Expiry)
		if err != nil {
			return services.CardInput{}, err
		}
		if in.ExpiryMonth == 0 {
			in.ExpiryMonth = month
		}
		if r.ExpiryYear == 0 {
			in.ExpiryYear = year
		}
	}

	in.CreditLimit = r.CreditLimit
	if in.CreditLimit.IsZero() && !r.CreditLimitAlt.IsZero() {
		in.CreditLimit = r.CreditLimitAlt
	}

	return in, nil
}

// NormalizePatch folds the dual shaping into a canonical partial patch.
func (r UpdateCardRequest) NormalizePatch() (services.CardPatch, error) {
	patch := services.CardPatch{
		Type:           firstPtr(r.Type, r.CardType),
		Issuer:         firstPtr(r.Issuer, r.BankName),
		CardholderName: firstPtr(r.CardholderName, r.HolderName),
		CreditLimit:    firstDecimalPtr(r.CreditLimit, r.CreditLimitAlt),
		IsDefault:      firstBoolPtr(r.IsDefault, r.DefaultAlt),
	}

	patch.LastFour = r.LastFour
	if patch.LastFour == nil && r.CardNumber != nil {
		last4, err := lastFourOf(*r.CardNumber)
		if err != nil {
			return services.CardPatch{}, err
		}
		patch.LastFour = &last4
	}

	patch.ExpiryMonth = r.ExpiryMonth
	if r.ExpiryYear != nil {
		year := normalizeExpiryYear(*r.ExpiryYear)
		patch.ExpiryYear = &year
	}
	if r.Expiry != nil {
		month, year, err := parseExpiry(*r.Expiry)
		if err != nil {
			return services.CardPatch{}, err
		}
		if patch.ExpiryMonth == nil {
			patch.ExpiryMonth = &month
		}
		if patch.ExpiryYear == nil {
			patch.ExpiryYear = &year
		}
	}

	return patch, nil
}

// parseExpiry splits a combined "MM/YY" or "MM/YYYY" expiry string into
// month and year integers. Two-digit years are interpreted as 2000+YY.
func parseExpiry(expiry string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "expiry must be MM/YY or MM/YYYY")
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "expiry month must be between 1 and 12")
	}

	yearStr := strings.TrimSpace(parts[1])
	year, err := strconv.Atoi(yearStr)
	if err != nil || (len(yearStr) != 2 && len(yearStr) != 4) {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "expiry year must be YY or YYYY")
	}

	return month, normalizeExpiryYear(year), nil
}

// normalizeExpiryYear maps two-digit years onto the 2000s.
func normalizeExpiryYear(year int) int {
	if year > 0 && year < 100 {
		return 2000 + year
	}
	return year
}

// lastFourOf extracts the trailing four digits of a card number, ignoring
// spaces and dashes.
func lastFourOf(number string) (string, error) {
	digits := make([]rune, 0, len(number))
	for _, r := range number {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, r)
		case r == ' ' || r == '-':
		default:
			return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "card_number must contain only digits")
		}
	}
	if len(digits) < 4 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "card_number must have at least 4 digits")
	}
	return string(digits[len(digits)-4:]), nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstPtr(a, b *string) *string {
	if a != nil {
		return a
	}
	return b
}

func firstDecimalPtr(a, b *decimal.Decimal) *decimal.Decimal {
	if a != nil {
		return a
	}
	return b
}

func firstBoolPtr(a, b *bool) *bool {
	if a != nil {
		return a
	}
	return b
}
