package models

// User represents the user model in the database
type User struct {
	Base
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`

	// Relationships; all children cascade on user delete
	Incomes      []Income      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"incomes,omitempty"`
	Expenses     []Expense     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
	Investments  []Investment  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"investments,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
	Cards        []Card        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"budgets,omitempty"`
	SavingsGoals []SavingsGoal `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"savings_goals,omitempty"`
}
