package models

// CategoryBudget is a user-configured monthly spending cap for one category.
type CategoryBudget struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	CategoryID    string  `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	MonthlyBudget float64 `json:"monthly_budget"`
}

// CategoryProgress compares period spend against one configured budget.
type CategoryProgress struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Budget       float64 `json:"budget"`
	Spent        float64 `json:"spent"`
	PercentUsed  float64 `json:"percent_used"`
	OverBudget   bool    `json:"over_budget"`
}

// BudgetProgress is the Budget Tracker output. No budgets configured is a
// normal state, not an error.
type BudgetProgress struct {
	HasBudgets bool               `json:"has_budgets"`
	Categories []CategoryProgress `json:"categories"`
}
