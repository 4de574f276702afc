package services

import (
	"testing"
	"time"

	"finbook/internal/pagination"
	"finbook/internal/testutil"
)

func TestCreateExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.Create(user.ID, ExpenseInput{Title: "Rent", Category: "housing", Amount: dec("750")})
		testutil.AssertNoError(t, err)
		if expense.ID == 0 {
			t.Fatal("expected non-zero expense ID")
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, ExpenseInput{Category: "food", Amount: dec("10")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Create(user.ID, ExpenseInput{Title: "Lunch", Amount: dec("10")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListExpenses(t *testing.T) {
	t.Run("filter_by_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		now := time.Now()
		testutil.CreateTestExpense(t, db, user.ID, "food", dec("10"), now)
		testutil.CreateTestExpense(t, db, user.ID, "food", dec("20"), now)
		testutil.CreateTestExpense(t, db, user.ID, "transport", dec("5"), now)

		result, err := svc.List(user.ID, "food", pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 food expenses, got %d", result.TotalItems)
		}
	})
}

func TestDeleteExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	accounts := NewAccountService(db)
	svc := NewExpenseService(db, accounts)
	user := testutil.CreateTestUser(t, db)

	expense, err := svc.Create(user.ID, ExpenseInput{Title: "Rent", Category: "housing", Amount: dec("321.10")})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.Delete(user.ID, expense.ID))

	ledger, err := accounts.GetLedger(user.ID)
	testutil.AssertNoError(t, err)
	assertDecimal(t, ledger.TotalExpense, "0", "total_expense")
	assertDecimal(t, ledger.TotalBalance, "0", "total_balance")
}
