package services

import (
	"testing"

	"finbook/internal/pagination"
	"finbook/internal/testutil"
)

func TestCreateInvestment(t *testing.T) {
	t.Run("current_value_defaults_to_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		investment, err := svc.Create(user.ID, InvestmentInput{Title: "ETF", Area: "stocks", Amount: dec("300")})
		testutil.AssertNoError(t, err)

		assertDecimal(t, investment.CurrentValue, "300", "current_value")
		if investment.Quantity != 1 {
			t.Errorf("expected default quantity 1, got %v", investment.Quantity)
		}
	})

	t.Run("explicit_current_value_kept", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		investment, err := svc.Create(user.ID, InvestmentInput{
			Title: "ETF", Area: "stocks", Amount: dec("300"), CurrentValue: dec("325.75"),
		})
		testutil.AssertNoError(t, err)
		assertDecimal(t, investment.CurrentValue, "325.75", "current_value")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, InvestmentInput{Area: "stocks", Amount: dec("10")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListInvestments(t *testing.T) {
	t.Run("filter_by_area", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		for _, area := range []string{"stocks", "crypto", "stocks"} {
			_, err := svc.Create(user.ID, InvestmentInput{Title: "x", Area: area, Amount: dec("10")})
			testutil.AssertNoError(t, err)
		}

		result, err := svc.List(user.ID, "stocks", pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 stock investments, got %d", result.TotalItems)
		}
	})
}

func TestDeleteInvestment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	accounts := NewAccountService(db)
	svc := NewInvestmentService(db, accounts)
	user := testutil.CreateTestUser(t, db)

	investment, err := svc.Create(user.ID, InvestmentInput{Title: "ETF", Area: "stocks", Amount: dec("99.99")})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.Delete(user.ID, investment.ID))

	ledger, err := accounts.GetLedger(user.ID)
	testutil.AssertNoError(t, err)
	assertDecimal(t, ledger.TotalInvested, "0", "total_invested")
	assertDecimal(t, ledger.TotalBalance, "0", "total_balance")
}
