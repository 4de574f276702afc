package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"finbook/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     fmt.Sprintf("Test User %d", nextID()),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestLedger creates an all-zero ledger row for the user.
func CreateTestLedger(t *testing.T, db *gorm.DB, userID uint) *models.Account {
	t.Helper()

	ledger := &models.Account{UserID: userID}
	if err := db.Create(ledger).Error; err != nil {
		t.Fatalf("failed to create test ledger: %v", err)
	}
	return ledger
}

// CreateTestIncome creates an income record with the given amount and date.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID uint, amount decimal.Decimal, date time.Time) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID:    userID,
		Title:     fmt.Sprintf("Test Income %d", nextID()),
		Source:    "salary",
		Amount:    amount,
		Date:      date,
		Frequency: "monthly",
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestExpense creates an expense record with the given category, amount and date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, category string, amount decimal.Decimal, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:   userID,
		Title:    fmt.Sprintf("Test Expense %d", nextID()),
		Category: category,
		Amount:   amount,
		Date:     date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestInvestment creates an investment record with the given amount and date.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID uint, amount decimal.Decimal, date time.Time) *models.Investment {
	t.Helper()

	investment := &models.Investment{
		UserID:        userID,
		Title:         fmt.Sprintf("Test Investment %d", nextID()),
		Area:          "stocks",
		Amount:        amount,
		Quantity:      1,
		PurchasePrice: amount,
		CurrentValue:  amount,
		Date:          date,
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return investment
}

// CreateTestCard creates a card record.
func CreateTestCard(t *testing.T, db *gorm.DB, userID uint, isDefault bool) *models.Card {
	t.Helper()

	card := &models.Card{
		UserID:         userID,
		Type:           "credit",
		Issuer:         "Test Bank",
		LastFour:       "4242",
		CardholderName: "Test User",
		ExpiryMonth:    12,
		ExpiryYear:     2030,
		CreditLimit:    decimal.NewFromInt(5000),
		IsDefault:      isDefault,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateTestGoal creates a savings goal with the given amounts.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, target, current decimal.Decimal) *models.SavingsGoal {
	t.Helper()

	status := models.GoalStatusActive
	if current.GreaterThanOrEqual(target) && target.IsPositive() {
		status = models.GoalStatusCompleted
	}

	goal := &models.SavingsGoal{
		UserID:        userID,
		Title:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  target,
		CurrentAmount: current,
		Priority:      "medium",
		Status:        status,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
