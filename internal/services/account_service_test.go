package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finbook/internal/models"
	"finbook/internal/testutil"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string, field string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: expected %s, got %s", field, want, got)
	}
}

func TestGetLedger(t *testing.T) {
	t.Run("absent_row_is_zero_view", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		ledger, err := svc.GetLedger(user.ID)
		testutil.AssertNoError(t, err)

		if !ledger.TotalBalance.IsZero() || !ledger.TotalIncome.IsZero() {
			t.Errorf("expected zero ledger, got balance=%s income=%s", ledger.TotalBalance, ledger.TotalIncome)
		}

		// No row should have been materialized by the read.
		var count int64
		db.Model(&models.Account{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected no ledger row, found %d", count)
		}
	})
}

func TestLedgerDeltas(t *testing.T) {
	t.Run("income_create", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		accounts := NewAccountService(db)
		incomes := NewIncomeService(db, accounts)
		user := testutil.CreateTestUser(t, db)

		_, err := incomes.Create(user.ID, IncomeInput{Title: "Salary", Source: "job", Amount: dec("1500.25")})
		testutil.AssertNoError(t, err)

		ledger, err := accounts.GetLedger(user.ID)
		testutil.AssertNoError(t, err)
		assertDecimal(t, ledger.TotalIncome, "1500.25", "total_income")
		assertDecimal(t, ledger.TotalBalance, "1500.25", "total_balance")
	})

	t.Run("expense_create", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		accounts := NewAccountService(db)
		expenses := NewExpenseService(db, accounts)
		user := testutil.CreateTestUser(t, db)

		_, err := expenses.Create(user.ID, ExpenseInput{Title: "Rent", Category: "housing", Amount: dec("800.00")})
		testutil.AssertNoError(t, err)

		ledger, err := accounts.GetLedger(user.ID)
		testutil.AssertNoError(t, err)
		assertDecimal(t, ledger.TotalExpense, "800", "total_expense")
		assertDecimal(t, ledger.TotalBalance, "-800", "total_balance")
	})

	t.Run("investment_create", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		accounts := NewAccountService(db)
		investments := NewInvestmentService(db, accounts)
		user := testutil.CreateTestUser(t, db)

		_, err := investments.Create(user.ID, InvestmentInput{Title: "ETF", Area: "stocks", Amount: dec("250.50")})
		testutil.AssertNoError(t, err)

		ledger, err := accounts.GetLedger(user.ID)
		testutil.AssertNoError(t, err)
		assertDecimal(t, ledger.TotalInvested, "250.5", "total_invested")
		assertDecimal(t, ledger.TotalBalance, "-250.5", "total_balance")
	})

	t.Run("round_trip_exactness", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		accounts := NewAccountService(db)
		incomes := NewIncomeService(db, accounts)
		expenses := NewExpenseService(db, accounts)
		investments := NewInvestmentService(db, accounts)
		user := testutil.CreateTestUser(t, db)

		income, err := incomes.Create(user.ID, IncomeInput{Title: "Salary", Source: "job", Amount: dec("1234.56"), Date: time.Now()})
		testutil.AssertNoError(t, err)
		expense, err := expenses.Create(user.ID, ExpenseInput{Title: "Food", Category: "groceries", Amount: dec("78.90")})
		testutil.AssertNoError(t, err)
		investment, err := investments.Create(user.ID, InvestmentInput{Title: "Bond", Area: "bonds", Amount: dec("0.01")})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, incomes.Delete(user.ID, income.ID))
		testutil.AssertNoError(t, expenses.Delete(user.ID, expense.ID))
		testutil.AssertNoError(t, investments.Delete(user.ID, investment.ID))

		ledger, err := accounts.GetLedger(user.ID)
		testutil.AssertNoError(t, err)
		assertDecimal(t, ledger.TotalBalance, "0", "total_balance")
		assertDecimal(t, ledger.TotalIncome, "0", "total_income")
		assertDecimal(t, ledger.TotalExpense, "0", "total_expense")
		assertDecimal(t, ledger.TotalInvested, "0", "total_invested")
	})

	t.Run("lazy_backfill_on_first_write", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		accounts := NewAccountService(db)
		incomes := NewIncomeService(db, accounts)
		// User created directly, without a ledger row.
		user := testutil.CreateTestUser(t, db)

		var count int64
		db.Model(&models.Account{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 0 {
			t.Fatal("precondition: expected no ledger row")
		}

		_, err := incomes.Create(user.ID, IncomeInput{Title: "Gift", Source: "family", Amount: dec("50")})
		testutil.AssertNoError(t, err)

		db.Model(&models.Account{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected ledger row to be backfilled, found %d", count)
		}
	})
}
