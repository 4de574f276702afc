package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
)

// Display icons for the unified transaction feed.
const (
	iconIncome     = "📥"
	iconExpense    = "📤"
	iconInvestment = "📈"
)

const recentFeedSize = 10

// FeedItem is one entry in the unified transaction feed, merged from the
// typed income/expense/investment tables and tagged with its origin.
type FeedItem struct {
	ID       uint                   `json:"id"`
	Title    string                 `json:"title"`
	Category string                 `json:"category"`
	Amount   decimal.Decimal        `json:"amount"`
	Type     models.TransactionType `json:"type"`
	Date     time.Time              `json:"date"`
	Icon     string                 `json:"icon"`
}

// DailyNet is one day in the trailing weekly series.
type DailyNet struct {
	Day    string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryAmount is one slice of the expense category breakdown.
type CategoryAmount struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// GoalProgress is one savings goal with its computed completion percentage.
type GoalProgress struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	CurrentAmount decimal.Decimal   `json:"current_amount"`
	TargetAmount  decimal.Decimal   `json:"target_amount"`
	Progress      float64           `json:"progress"`
	Deadline      *time.Time        `json:"deadline,omitempty"`
	Priority      string            `json:"priority"`
	Status        models.GoalStatus `json:"status"`
	Icon          string            `json:"icon"`
}

// DashboardView is the aggregated read-model for a single user.
type DashboardView struct {
	TotalBalance  decimal.Decimal `json:"total_balance"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
	TotalSavings  decimal.Decimal `json:"total_savings"`
	TotalInvested decimal.Decimal `json:"total_invested"`

	Cards              []models.Card       `json:"cards"`
	RecentTransactions []FeedItem          `json:"recent_transactions"`
	AllTransactions    []FeedItem          `json:"all_transactions"`
	Budgets            []models.Budget     `json:"budgets"`
	Expenses           []models.Expense    `json:"expenses"`
	Investments        []models.Investment `json:"investments"`

	TotalIncomeSum     decimal.Decimal `json:"total_income_sum"`
	TotalExpenseSum    decimal.Decimal `json:"total_expense_sum"`
	TotalInvestmentSum decimal.Decimal `json:"total_investment_sum"`
	BalanceLeft        decimal.Decimal `json:"balance_left"`
	RecommendedSavings decimal.Decimal `json:"recommended_savings"`

	WeeklySeries      []DailyNet       `json:"weekly_series"`
	CategoryBreakdown []CategoryAmount `json:"category_breakdown"`

	Goals             []GoalProgress  `json:"goals"`
	GoalsCurrentTotal decimal.Decimal `json:"goals_current_total"`
	GoalsTargetTotal  decimal.Decimal `json:"goals_target_total"`
}

// dashboardService assembles the dashboard view from full scans of the
// user's collections. No caching: every call recomputes.
type dashboardService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, accountService AccountServicer) DashboardServicer {
	return &dashboardService{db: db, accountService: accountService}
}

// Assemble fans out independent reads across the user's collections, then
// folds the results into the unified view.
func (s *dashboardService) Assemble(ctx context.Context, userID uint) (*DashboardView, error) {
	var (
		ledger      *models.Account
		incomes     []models.Income
		expenses    []models.Expense
		investments []models.Investment
		budgets     []models.Budget
		cards       []models.Card
		goals       []models.SavingsGoal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ledger, err = s.accountService.GetLedger(userID)
		return err
	})
	g.Go(func() error {
		return s.fetch(gctx, userID, &incomes, "date DESC")
	})
	g.Go(func() error {
		return s.fetch(gctx, userID, &expenses, "date DESC")
	})
	g.Go(func() error {
		return s.fetch(gctx, userID, &investments, "date DESC")
	})
	g.Go(func() error {
		return s.fetch(gctx, userID, &budgets, "created_at DESC")
	})
	g.Go(func() error {
		return s.fetch(gctx, userID, &cards, "created_at DESC")
	})
	g.Go(func() error {
		err := s.db.WithContext(gctx).
			Where("user_id = ? AND status = ?", userID, models.GoalStatusActive).
			Order("created_at DESC").
			Find(&goals).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	feed := mergeFeed(incomes, expenses, investments)

	incomeSum := decimal.Zero
	for _, in := range incomes {
		incomeSum = incomeSum.Add(in.Amount)
	}
	expenseSum := decimal.Zero
	for _, ex := range expenses {
		expenseSum = expenseSum.Add(ex.Amount)
	}
	investmentSum := decimal.Zero
	for _, inv := range investments {
		investmentSum = investmentSum.Add(inv.Amount)
	}

	balanceLeft := incomeSum.Sub(expenseSum).Sub(investmentSum)
	recommended := balanceLeft.Mul(decimal.NewFromFloat(0.10)).Round(2)
	if recommended.IsNegative() {
		recommended = decimal.Zero.Round(2)
	}

	goalList := make([]GoalProgress, 0, len(goals))
	goalsCurrent := decimal.Zero
	goalsTarget := decimal.Zero
	for i := range goals {
		g := &goals[i]
		goalList = append(goalList, GoalProgress{
			ID:            g.ID,
			Title:         g.Title,
			CurrentAmount: g.CurrentAmount,
			TargetAmount:  g.TargetAmount,
			Progress:      g.Progress(),
			Deadline:      g.Deadline,
			Priority:      g.Priority,
			Status:        g.Status,
			Icon:          g.Icon,
		})
		goalsCurrent = goalsCurrent.Add(g.CurrentAmount)
		goalsTarget = goalsTarget.Add(g.TargetAmount)
	}

	recent := feed
	if len(recent) > recentFeedSize {
		recent = recent[:recentFeedSize]
	}

	return &DashboardView{
		TotalBalance:       ledger.TotalBalance,
		TotalIncome:        ledger.TotalIncome,
		TotalExpense:       ledger.TotalExpense,
		TotalSavings:       ledger.TotalSavings,
		TotalInvested:      ledger.TotalInvested,
		Cards:              cards,
		RecentTransactions: recent,
		AllTransactions:    feed,
		Budgets:            budgets,
		Expenses:           expenses,
		Investments:        investments,
		TotalIncomeSum:     incomeSum,
		TotalExpenseSum:    expenseSum,
		TotalInvestmentSum: investmentSum,
		BalanceLeft:        balanceLeft,
		RecommendedSavings: recommended,
		WeeklySeries:       weeklyNetSeries(incomes, expenses, time.Now()),
		CategoryBreakdown:  expenseBreakdown(expenses, time.Now()),
		Goals:              goalList,
		GoalsCurrentTotal:  goalsCurrent,
		GoalsTargetTotal:   goalsTarget,
	}, nil
}

// fetch loads the user's full collection of dest's element type.
func (s *dashboardService) fetch(ctx context.Context, userID uint, dest interface{}, order string) error {
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order(order).Find(dest).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// mergeFeed combines the three typed collections into one feed sorted by
// date descending, each entry tagged with its origin type and icon.
func mergeFeed(incomes []models.Income, expenses []models.Expense, investments []models.Investment) []FeedItem {
	feed := make([]FeedItem, 0, len(incomes)+len(expenses)+len(investments))

	for _, in := range incomes {
		feed = append(feed, FeedItem{
			ID:       in.ID,
			Title:    in.Title,
			Category: in.Source,
			Amount:   in.Amount,
			Type:     models.TransactionTypeIncome,
			Date:     in.Date,
			Icon:     iconIncome,
		})
	}
	for _, ex := range expenses {
		feed = append(feed, FeedItem{
			ID:       ex.ID,
			Title:    ex.Title,
			Category: ex.Category,
			Amount:   ex.Amount,
			Type:     models.TransactionTypeExpense,
			Date:     ex.Date,
			Icon:     iconExpense,
		})
	}
	for _, inv := range investments {
		feed = append(feed, FeedItem{
			ID:       inv.ID,
			Title:    inv.Title,
			Category: inv.Area,
			Amount:   inv.Amount,
			Type:     models.TransactionTypeInvestment,
			Date:     inv.Date,
			Icon:     iconInvestment,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	return feed
}

// weeklyNetSeries computes the trailing 7-day daily series: for each of the
// last 7 local calendar days ending today (oldest first), the day's income
// minus expense, floored at zero, labeled with the weekday abbreviation.
func weeklyNetSeries(incomes []models.Income, expenses []models.Expense, now time.Time) []DailyNet {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	series := make([]DailyNet, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)

		net := decimal.Zero
		for _, in := range incomes {
			if sameDay(in.Date.In(loc), day) {
				net = net.Add(in.Amount)
			}
		}
		for _, ex := range expenses {
			if sameDay(ex.Date.In(loc), day) {
				net = net.Sub(ex.Amount)
			}
		}
		if net.IsNegative() {
			net = decimal.Zero
		}

		series = append(series, DailyNet{Day: day.Format("Mon"), Amount: net})
	}
	return series
}

// sameDay reports whether two instants fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// expenseBreakdown groups the last 30 days of expenses by category, sums per
// category, and keeps the top 5 by amount.
func expenseBreakdown(expenses []models.Expense, now time.Time) []CategoryAmount {
	cutoff := now.AddDate(0, 0, -30)

	totals := make(map[string]decimal.Decimal)
	for _, ex := range expenses {
		if ex.Date.Before(cutoff) {
			continue
		}
		totals[ex.Category] = totals[ex.Category].Add(ex.Amount)
	}

	breakdown := make([]CategoryAmount, 0, len(totals))
	for name, value := range totals {
		breakdown = append(breakdown, CategoryAmount{Name: name, Value: value})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		if !breakdown[i].Value.Equal(breakdown[j].Value) {
			return breakdown[i].Value.GreaterThan(breakdown[j].Value)
		}
		return breakdown[i].Name < breakdown[j].Name
	})

	if len(breakdown) > 5 {
		breakdown = breakdown[:5]
	}
	return breakdown
}
