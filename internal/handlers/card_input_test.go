package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateCardNormalize(t *testing.T) {
	t.Run("canonical_shape", func(t *testing.T) {
		req := CreateCardRequest{
			Type:           "credit",
			Issuer:         "Acme Bank",
			LastFour:       "1234",
			CardholderName: "A User",
			ExpiryMonth:    9,
			ExpiryYear:     2029,
			CreditLimit:    decimal.NewFromInt(5000),
			IsDefault:      true,
		}

		in, err := req.Normalize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Type != "credit" || in.Issuer != "Acme Bank" || in.LastFour != "1234" {
			t.Errorf("unexpected canonical fields: %+v", in)
		}
		if in.ExpiryMonth != 9 || in.ExpiryYear != 2029 {
			t.Errorf("expected 9/2029, got %d/%d", in.ExpiryMonth, in.ExpiryYear)
		}
		if !in.IsDefault {
			t.Error("expected default flag")
		}
	})

	t.Run("alternate_shape", func(t *testing.T) {
		req := CreateCardRequest{
			CardType:       "debit",
			BankName:       "Other Bank",
			CardNumber:     "4111 1111 1111 1111",
			HolderName:     "B User",
			Expiry:         "04/27",
			CreditLimitAlt: decimal.NewFromInt(2000),
			DefaultAlt:     true,
		}

		in, err := req.Normalize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Type != "debit" || in.Issuer != "Other Bank" || in.CardholderName != "B User" {
			t.Errorf("unexpected normalized fields: %+v", in)
		}
		if in.LastFour != "1111" {
			t.Errorf("expected last4 1111 from card number, got %s", in.LastFour)
		}
		if in.ExpiryMonth != 4 || in.ExpiryYear != 2027 {
			t.Errorf("expected 4/2027, got %d/%d", in.ExpiryMonth, in.ExpiryYear)
		}
		if !in.CreditLimit.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected limit 2000, got %s", in.CreditLimit)
		}
		if !in.IsDefault {
			t.Error("expected default flag from alternate name")
		}
	})

	t.Run("canonical_wins_over_alternate", func(t *testing.T) {
		req := CreateCardRequest{
			Type:     "credit",
			CardType: "debit",
			LastFour: "9999",
			Expiry:   "12/30",
		}

		in, err := req.Normalize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Type != "credit" {
			t.Errorf("expected canonical type to win, got %s", in.Type)
		}
		if in.LastFour != "9999" {
			t.Errorf("expected canonical last4 to win, got %s", in.LastFour)
		}
	})

	t.Run("four_digit_expiry_year", func(t *testing.T) {
		req := CreateCardRequest{Type: "credit", LastFour: "1234", Expiry: "11/2031"}

		in, err := req.Normalize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.ExpiryMonth != 11 || in.ExpiryYear != 2031 {
			t.Errorf("expected 11/2031, got %d/%d", in.ExpiryMonth, in.ExpiryYear)
		}
	})

	t.Run("two_digit_split_year", func(t *testing.T) {
		req := CreateCardRequest{Type: "credit", LastFour: "1234", ExpiryMonth: 6, ExpiryYear: 28}

		in, err := req.Normalize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.ExpiryYear != 2028 {
			t.Errorf("expected split two-digit year mapped to 2028, got %d", in.ExpiryYear)
		}
	})

	t.Run("invalid_expiry_strings", func(t *testing.T) {
		for _, expiry := range []string{"1327", "13/27", "0/27", "04/2", "04/20277", "4-27"} {
			req := CreateCardRequest{Type: "credit", LastFour: "1234", Expiry: expiry}
			if _, err := req.Normalize(); err == nil {
				t.Errorf("expiry %q: expected error", expiry)
			}
		}
	})

	t.Run("invalid_card_number", func(t *testing.T) {
		for _, number := range []string{"12x4", "12"} {
			req := CreateCardRequest{Type: "credit", CardNumber: number}
			if _, err := req.Normalize(); err == nil {
				t.Errorf("card number %q: expected error", number)
			}
		}
	})
}

func TestUpdateCardNormalizePatch(t *testing.T) {
	t.Run("combined_expiry_patch", func(t *testing.T) {
		expiry := "03/29"
		req := UpdateCardRequest{Expiry: &expiry}

		patch, err := req.NormalizePatch()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if patch.ExpiryMonth == nil || *patch.ExpiryMonth != 3 {
			t.Errorf("expected month 3, got %v", patch.ExpiryMonth)
		}
		if patch.ExpiryYear == nil || *patch.ExpiryYear != 2029 {
			t.Errorf("expected year 2029, got %v", patch.ExpiryYear)
		}
	})

	t.Run("absent_fields_stay_nil", func(t *testing.T) {
		req := UpdateCardRequest{}

		patch, err := req.NormalizePatch()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if patch.Type != nil || patch.LastFour != nil || patch.ExpiryMonth != nil || patch.IsDefault != nil {
			t.Errorf("expected empty patch, got %+v", patch)
		}
	})

	t.Run("alternate_names", func(t *testing.T) {
		bank := "Patch Bank"
		number := "5555-4444-3333-2222"
		isDefault := true
		req := UpdateCardRequest{BankName: &bank, CardNumber: &number, DefaultAlt: &isDefault}

		patch, err := req.NormalizePatch()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if patch.Issuer == nil || *patch.Issuer != "Patch Bank" {
			t.Errorf("expected issuer from bank_name, got %v", patch.Issuer)
		}
		if patch.LastFour == nil || *patch.LastFour != "2222" {
			t.Errorf("expected last4 2222, got %v", patch.LastFour)
		}
		if patch.IsDefault == nil || !*patch.IsDefault {
			t.Errorf("expected default flag, got %v", patch.IsDefault)
		}
	})
}
