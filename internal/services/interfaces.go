package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finbook/internal/models"
	"finbook/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateProfile(userID uint, patch ProfilePatch) (*models.User, error)
}

// ProfilePatch holds optional profile fields; only non-nil fields are applied.
type ProfilePatch struct {
	Name   *string
	Avatar *string
}

// LedgerDelta describes a signed adjustment to the per-user ledger row.
// TotalBalance moves by Income - Expense - Invested; Savings moves
// total_savings only.
type LedgerDelta struct {
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Invested decimal.Decimal
	Savings  decimal.Decimal
}

// AccountServicer defines the contract for the ledger of running totals.
type AccountServicer interface {
	GetLedger(userID uint) (*models.Account, error)
	ApplyDelta(tx *gorm.DB, userID uint, delta LedgerDelta) error
}

// IncomeInput holds the fields for creating an income record.
type IncomeInput struct {
	Title       string
	Source      string
	Amount      decimal.Decimal
	Date        time.Time
	Frequency   string
	Description string
}

// IncomePatch holds optional income fields; only non-nil fields are applied.
type IncomePatch struct {
	Title       *string
	Source      *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Frequency   *string
	Description *string
}

// IncomeServicer defines the contract for the income record family.
type IncomeServicer interface {
	List(userID uint, source string, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	Create(userID uint, in IncomeInput) (*models.Income, error)
	Update(userID, incomeID uint, patch IncomePatch) (*models.Income, error)
	Delete(userID, incomeID uint) error
}

// ExpenseInput holds the fields for creating an expense record.
type ExpenseInput struct {
	Title         string
	Category      string
	Amount        decimal.Decimal
	Date          time.Time
	PaymentMethod string
	Description   string
}

// ExpensePatch holds optional expense fields; only non-nil fields are applied.
type ExpensePatch struct {
	Title         *string
	Category      *string
	Amount        *decimal.Decimal
	Date          *time.Time
	PaymentMethod *string
	Description   *string
}

// ExpenseServicer defines the contract for the expense record family.
type ExpenseServicer interface {
	List(userID uint, category string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	Create(userID uint, in ExpenseInput) (*models.Expense, error)
	Update(userID, expenseID uint, patch ExpensePatch) (*models.Expense, error)
	Delete(userID, expenseID uint) error
}

// InvestmentInput holds the fields for creating an investment record.
type InvestmentInput struct {
	Title         string
	Area          string
	Amount        decimal.Decimal
	Quantity      float64
	PurchasePrice decimal.Decimal
	CurrentValue  decimal.Decimal
	Date          time.Time
}

// InvestmentPatch holds optional investment fields; only non-nil fields are applied.
type InvestmentPatch struct {
	Title         *string
	Area          *string
	Amount        *decimal.Decimal
	Quantity      *float64
	PurchasePrice *decimal.Decimal
	CurrentValue  *decimal.Decimal
	Date          *time.Time
}

// InvestmentServicer defines the contract for the investment record family.
type InvestmentServicer interface {
	List(userID uint, area string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	Create(userID uint, in InvestmentInput) (*models.Investment, error)
	Update(userID, investmentID uint, patch InvestmentPatch) (*models.Investment, error)
	Delete(userID, investmentID uint) error
}

// TransactionInput holds the fields for creating a generic transaction record.
type TransactionInput struct {
	Title    string
	Category string
	Amount   decimal.Decimal
	Type     models.TransactionType
	Date     time.Time
	Icon     string
}

// TransactionServicer defines the contract for the generic transaction family.
type TransactionServicer interface {
	List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	Create(userID uint, in TransactionInput) (*models.Transaction, error)
	Delete(userID, transactionID uint) error
}

// CardInput is the canonical card representation produced by boundary
// normalization, regardless of which input shaping the caller used.
type CardInput struct {
	Type           string
	Issuer         string
	LastFour       string
	CardholderName string
	ExpiryMonth    int
	ExpiryYear     int
	CreditLimit    decimal.Decimal
	IsDefault      bool
}

// CardPatch holds optional card fields; only non-nil fields are applied.
type CardPatch struct {
	Type           *string
	Issuer         *string
	LastFour       *string
	CardholderName *string
	ExpiryMonth    *int
	ExpiryYear     *int
	CreditLimit    *decimal.Decimal
	IsDefault      *bool
}

// CardServicer defines the contract for the card record family.
type CardServicer interface {
	List(userID uint, cardType string, page pagination.PageRequest) (*pagination.PageResponse[models.Card], error)
	Create(userID uint, in CardInput) (*models.Card, error)
	Update(userID, cardID uint, patch CardPatch) (*models.Card, error)
	Delete(userID, cardID uint) error
}

// BudgetInput holds the fields for creating a budget.
type BudgetInput struct {
	Name           string
	Category       string
	Spent          decimal.Decimal
	LimitAmount    decimal.Decimal
	Color          string
	Icon           string
	Frequency      string
	AlertThreshold int
	Followed       bool
}

// BudgetPatch holds optional budget fields; only non-nil fields are applied.
type BudgetPatch struct {
	Name           *string
	Category       *string
	Spent          *decimal.Decimal
	LimitAmount    *decimal.Decimal
	Color          *string
	Icon           *string
	Frequency      *string
	AlertThreshold *int
	Followed       *bool
}

// BudgetServicer defines the contract for the budget record family.
type BudgetServicer interface {
	List(userID uint, category string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	Create(userID uint, in BudgetInput) (*models.Budget, error)
	Update(userID, budgetID uint, patch BudgetPatch) (*models.Budget, error)
	Delete(userID, budgetID uint) error
}

// SavingsGoalInput holds the fields for creating a savings goal.
type SavingsGoalInput struct {
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
	Priority      string
	Category      string
	Icon          string
	Description   string
}

// SavingsGoalPatch holds optional goal fields; only non-nil fields are applied.
type SavingsGoalPatch struct {
	Title        *string
	TargetAmount *decimal.Decimal
	Deadline     *time.Time
	Priority     *string
	Category     *string
	Icon         *string
	Description  *string
}

// SavingsGoalServicer defines the contract for the savings goal family.
type SavingsGoalServicer interface {
	List(userID uint, status string, page pagination.PageRequest) (*pagination.PageResponse[models.SavingsGoal], error)
	Create(userID uint, in SavingsGoalInput) (*models.SavingsGoal, error)
	Update(userID, goalID uint, patch SavingsGoalPatch) (*models.SavingsGoal, error)
	Delete(userID, goalID uint) error
	Contribute(userID, goalID uint, amount decimal.Decimal) (*models.SavingsGoal, error)
	Withdraw(userID, goalID uint, amount decimal.Decimal) (*models.SavingsGoal, error)
}

// DashboardServicer defines the contract for the dashboard assembler.
type DashboardServicer interface {
	Assemble(ctx context.Context, userID uint) (*DashboardView, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
