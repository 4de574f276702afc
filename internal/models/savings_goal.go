package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus represents the lifecycle status of a savings goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
)

// SavingsGoal represents a savings target. Status flips to completed when a
// contribution brings CurrentAmount up to TargetAmount; withdrawals never
// revert it.
type SavingsGoal struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Title         string          `gorm:"not null" json:"title"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Priority      string          `gorm:"default:'medium'" json:"priority"`
	Status        GoalStatus      `gorm:"default:'active'" json:"status"`
	Category      string          `json:"category"`
	Icon          string          `json:"icon"`
	Description   string          `json:"description"`
}

// Progress returns the completion percentage, 0 when the target is zero.
func (g *SavingsGoal) Progress() float64 {
	if g.TargetAmount.IsZero() {
		return 0
	}
	pct, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}
