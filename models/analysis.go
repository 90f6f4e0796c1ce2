package models

// AnalysisRequest is the single inbound contract of the engine.
type AnalysisRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Period string `json:"period,omitempty"` // "month" (default) or "year"
	Type   string `json:"type,omitempty"`   // "suggestions" short-circuits the pipeline
}

// Risk indicator levels
const (
	RiskCritical = "critical"
	RiskWarning  = "warning"
	RiskGood     = "good"
)

// RiskIndicator is a single traffic-light message about the user's finances.
type RiskIndicator struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// TopCategory is one of the top-5 expense categories of the period.
type TopCategory struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Percentage   float64 `json:"percentage"`
}

// PeriodProjection extrapolates the daily run-rate over the full period.
type PeriodProjection struct {
	ProjectedIncome   float64 `json:"projected_income"`
	ProjectedExpenses float64 `json:"projected_expenses"`
	ProjectedBalance  float64 `json:"projected_balance"`
}

// CashFlowPoint is one day of the dailyCashFlow series (last 14 days).
type CashFlowPoint struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// SafeToSpend tells the user what is left to spend without going negative.
type SafeToSpend struct {
	Total    float64 `json:"total"`
	Daily    float64 `json:"daily"`
	DaysLeft int     `json:"days_left"`
}

// UpcomingTransaction is one illustrative scheduled entry derived from the
// user's recurring transactions.
type UpcomingTransaction struct {
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"due_date"`
}

// UpcomingSummary pairs historical monthly averages with a short schedule.
type UpcomingSummary struct {
	AvgMonthlyIncome   float64               `json:"avg_monthly_income"`
	AvgMonthlyExpenses float64               `json:"avg_monthly_expenses"`
	Schedule           []UpcomingTransaction `json:"schedule"`
}

// TopAction is one ranked savings suggestion.
type TopAction struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	PotentialSavings float64 `json:"potential_savings"`
	Priority         int     `json:"priority"`
}

// ScoreBreakdown reports the current and previous composite score with the
// per-group components used for radar and trend displays.
type ScoreBreakdown struct {
	Score         int             `json:"score"`
	PreviousScore int             `json:"previous_score"`
	Components    ScoreComponents `json:"components"`
	Explanation   string          `json:"explanation"`
}

// NetWorthPoint is one month of the simulated net-worth history.
type NetWorthPoint struct {
	MonthKey string  `json:"month"`
	Value    float64 `json:"value"`
}

// NetWorth is current assets plus a 12-month simulated trajectory.
type NetWorth struct {
	Current float64         `json:"current"`
	Liquid  float64         `json:"liquid"`
	History []NetWorthPoint `json:"history"`
}

// Forecast bundles the 120-point projection with the goal estimate.
type Forecast struct {
	Points   []ForecastPoint    `json:"points"`
	Averages HistoricalAverages `json:"averages"`
	Goal     GoalForecast       `json:"goal"`
}

// Subscription is a recurring expense grouped by category.
type Subscription struct {
	CategoryName string  `json:"category_name"`
	MonthlyCost  float64 `json:"monthly_cost"`
	Count        int     `json:"count"`
}

// DebtPlan is emitted from the injected debt snapshot. hasDebt stays false
// until a debt ledger exists in the surrounding system.
type DebtPlan struct {
	HasDebt         bool    `json:"has_debt"`
	TotalDebt       float64 `json:"total_debt"`
	MonthlyPayments float64 `json:"monthly_payments"`
	MonthsToClear   float64 `json:"months_to_clear"`
}

// AnalysisResponse is the full analysis payload. The deterministic fields
// are always populated; analysis/riskIndicators/topActions may come from the
// narrative collaborator or from local fallbacks.
type AnalysisResponse struct {
	Analysis             string           `json:"analysis"`
	Metrics              FinancialMetrics `json:"metrics"`
	TopCategories        []TopCategory    `json:"topCategories"`
	RiskIndicators       []RiskIndicator  `json:"riskIndicators"`
	Projections          PeriodProjection `json:"projections"`
	DailyCashFlow        []CashFlowPoint  `json:"dailyCashFlow"`
	SafeToSpend          SafeToSpend      `json:"safeToSpend"`
	UpcomingTransactions UpcomingSummary  `json:"upcomingTransactions"`
	TopActions           []TopAction      `json:"topActions"`
	ScoreBreakdown       ScoreBreakdown   `json:"scoreBreakdown"`
	NetWorth             NetWorth         `json:"netWorth"`
	Forecast             Forecast         `json:"forecast"`
	BudgetProgress       BudgetProgress   `json:"budgetProgress"`
	DebtPlan             DebtPlan         `json:"debtPlan"`
	Subscriptions        []Subscription   `json:"subscriptions"`
}

// SuggestionsResponse is the lightweight type="suggestions" payload.
type SuggestionsResponse struct {
	Suggestions     []TopAction `json:"suggestions"`
	LifetimeIncome  float64     `json:"lifetime_income"`
	LifetimeExpense float64     `json:"lifetime_expense"`
	GoalCount       int         `json:"goal_count"`
}
