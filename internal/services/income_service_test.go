package services

import (
	"testing"
	"time"

	"finbook/internal/pagination"
	"finbook/internal/testutil"
)

func TestCreateIncome(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		income, err := svc.Create(user.ID, IncomeInput{Title: "Salary", Source: "job", Amount: dec("1000")})
		testutil.AssertNoError(t, err)

		if income.ID == 0 {
			t.Fatal("expected non-zero income ID")
		}
		if income.Frequency != "monthly" {
			t.Errorf("expected default frequency monthly, got %s", income.Frequency)
		}
		if income.Date.IsZero() {
			t.Error("expected date to default to now")
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, IncomeInput{Source: "job", Amount: dec("10")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Create(user.ID, IncomeInput{Title: "Salary", Amount: dec("10")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, IncomeInput{Title: "Zero", Source: "job", Amount: dec("0")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Create(user.ID, IncomeInput{Title: "Negative", Source: "job", Amount: dec("-5")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListIncomes(t *testing.T) {
	t.Run("filter_by_source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		for _, src := range []string{"job", "job", "freelance"} {
			_, err := svc.Create(user.ID, IncomeInput{Title: "x", Source: src, Amount: dec("10")})
			testutil.AssertNoError(t, err)
		}

		result, err := svc.List(user.ID, "job", pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 job incomes, got %d", result.TotalItems)
		}
	})

	t.Run("sorted_date_desc", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		now := time.Now()
		testutil.CreateTestIncome(t, db, user.ID, dec("1"), now.AddDate(0, 0, -2))
		testutil.CreateTestIncome(t, db, user.ID, dec("2"), now)
		testutil.CreateTestIncome(t, db, user.ID, dec("3"), now.AddDate(0, 0, -1))

		result, err := svc.List(user.ID, "", pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 3 {
			t.Fatalf("expected 3 incomes, got %d", len(result.Data))
		}
		for i := 1; i < len(result.Data); i++ {
			if result.Data[i].Date.After(result.Data[i-1].Date) {
				t.Errorf("expected date descending order at index %d", i)
			}
		}
	})

	t.Run("pagination_law", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		now := time.Now()
		for i := 0; i < 7; i++ {
			testutil.CreateTestIncome(t, db, user.ID, dec("10"), now.AddDate(0, 0, -i))
		}

		first, err := svc.List(user.ID, "", pagination.PageRequest{Page: 1, Limit: 3})
		testutil.AssertNoError(t, err)
		if len(first.Data) != 3 || first.TotalItems != 7 || first.TotalPages != 3 {
			t.Errorf("page 1: got len=%d total=%d pages=%d", len(first.Data), first.TotalItems, first.TotalPages)
		}

		last, err := svc.List(user.ID, "", pagination.PageRequest{Page: 3, Limit: 3})
		testutil.AssertNoError(t, err)
		if len(last.Data) != 1 {
			t.Errorf("page 3: expected 1 item, got %d", len(last.Data))
		}

		// Past the last page: empty list, totals unchanged.
		beyond, err := svc.List(user.ID, "", pagination.PageRequest{Page: 4, Limit: 3})
		testutil.AssertNoError(t, err)
		if len(beyond.Data) != 0 {
			t.Errorf("page 4: expected empty list, got %d items", len(beyond.Data))
		}
		if beyond.TotalItems != 7 || beyond.TotalPages != 3 {
			t.Errorf("page 4: got total=%d pages=%d", beyond.TotalItems, beyond.TotalPages)
		}

		// Defaults: page 1, limit 10.
		deflt, err := svc.List(user.ID, "", pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if deflt.Page != 1 || deflt.Limit != 10 || len(deflt.Data) != 7 {
			t.Errorf("defaults: got page=%d limit=%d len=%d", deflt.Page, deflt.Limit, len(deflt.Data))
		}
	})

	t.Run("ownership_isolation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestIncome(t, db, user1.ID, dec("10"), time.Now())
		testutil.CreateTestIncome(t, db, user2.ID, dec("20"), time.Now())

		result, err := svc.List(user1.ID, "", pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 income for user1, got %d", result.TotalItems)
		}
	})
}

func TestUpdateIncome(t *testing.T) {
	t.Run("partial_patch_does_not_move_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		accounts := NewAccountService(db)
		svc := NewIncomeService(db, accounts)
		user := testutil.CreateTestUser(t, db)

		income, err := svc.Create(user.ID, IncomeInput{Title: "Salary", Source: "job", Amount: dec("100")})
		testutil.AssertNoError(t, err)

		amount := dec("999")
		_, err = svc.Update(user.ID, income.ID, IncomePatch{Amount: &amount})
		testutil.AssertNoError(t, err)

		ledger, err := accounts.GetLedger(user.ID)
		testutil.AssertNoError(t, err)
		assertDecimal(t, ledger.TotalIncome, "100", "total_income")
	})

	t.Run("not_owned_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)

		income := testutil.CreateTestIncome(t, db, owner.ID, dec("10"), time.Now())

		title := "hijacked"
		_, err := svc.Update(intruder.ID, income.ID, IncomePatch{Title: &title})
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})
}

func TestDeleteIncome(t *testing.T) {
	t.Run("reverses_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		accounts := NewAccountService(db)
		svc := NewIncomeService(db, accounts)
		user := testutil.CreateTestUser(t, db)

		income, err := svc.Create(user.ID, IncomeInput{Title: "Salary", Source: "job", Amount: dec("42.42")})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Delete(user.ID, income.ID))

		ledger, err := accounts.GetLedger(user.ID)
		testutil.AssertNoError(t, err)
		assertDecimal(t, ledger.TotalIncome, "0", "total_income")
		assertDecimal(t, ledger.TotalBalance, "0", "total_balance")
	})

	t.Run("not_owned_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)

		income := testutil.CreateTestIncome(t, db, owner.ID, dec("10"), time.Now())

		err := svc.Delete(intruder.ID, income.ID)
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})
}
