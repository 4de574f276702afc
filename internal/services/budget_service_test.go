package services

import (
	"testing"

	"finbook/internal/pagination"
	"finbook/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("applies_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.Create(user.ID, BudgetInput{Name: "Groceries", LimitAmount: dec("400")})
		testutil.AssertNoError(t, err)

		if budget.Color != "#6366f1" {
			t.Errorf("expected default color #6366f1, got %s", budget.Color)
		}
		if budget.Frequency != "monthly" {
			t.Errorf("expected default frequency monthly, got %s", budget.Frequency)
		}
		if budget.AlertThreshold != 80 {
			t.Errorf("expected default alert threshold 80, got %d", budget.AlertThreshold)
		}
	})

	t.Run("explicit_values_kept", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.Create(user.ID, BudgetInput{
			Name: "Travel", LimitAmount: dec("1200"), Color: "#ff0000",
			Frequency: "yearly", AlertThreshold: 50,
		})
		testutil.AssertNoError(t, err)

		if budget.Color != "#ff0000" || budget.Frequency != "yearly" || budget.AlertThreshold != 50 {
			t.Errorf("expected explicit values kept, got %s/%s/%d", budget.Color, budget.Frequency, budget.AlertThreshold)
		}
	})

	t.Run("invalid_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, BudgetInput{Name: "Broken", LimitAmount: dec("0")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, BudgetInput{LimitAmount: dec("100")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("spent_is_manually_settable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.Create(user.ID, BudgetInput{Name: "Groceries", LimitAmount: dec("400")})
		testutil.AssertNoError(t, err)

		spent := dec("123.45")
		updated, err := svc.Update(user.ID, budget.ID, BudgetPatch{Spent: &spent})
		testutil.AssertNoError(t, err)
		assertDecimal(t, updated.Spent, "123.45", "spent")
	})

	t.Run("limit_must_stay_positive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.Create(user.ID, BudgetInput{Name: "Groceries", LimitAmount: dec("400")})
		testutil.AssertNoError(t, err)

		zero := dec("0")
		_, err = svc.Update(user.ID, budget.ID, BudgetPatch{LimitAmount: &zero})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.Create(user.ID, BudgetInput{Name: "Food", Category: "food", LimitAmount: dec("300")})
	testutil.AssertNoError(t, err)
	_, err = svc.Create(user.ID, BudgetInput{Name: "Fun", Category: "leisure", LimitAmount: dec("150")})
	testutil.AssertNoError(t, err)

	result, err := svc.List(user.ID, "food", pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Errorf("expected 1 food budget, got %d", result.TotalItems)
	}
}
